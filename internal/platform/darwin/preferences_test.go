package darwin

import (
	"errors"
	"testing"

	"github.com/mj1618/dock-cli/internal/platform"
)

const dockPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>autohide</key>
	<false/>
	<key>persistent-apps</key>
	<array>
		<dict>
			<key>tile-data</key>
			<dict>
				<key>bundle-identifier</key>
				<string>com.apple.Safari</string>
				<key>file-label</key>
				<string>Safari</string>
			</dict>
			<key>tile-type</key>
			<string>file-tile</string>
		</dict>
	</array>
	<key>tilesize</key>
	<integer>48</integer>
</dict>
</plist>`

func TestDecodeDomain(t *testing.T) {
	domain, err := decodeDomain([]byte(dockPlist))
	if err != nil {
		t.Fatalf("decodeDomain: %v", err)
	}
	apps, ok := domain["persistent-apps"].([]interface{})
	if !ok || len(apps) != 1 {
		t.Fatalf("persistent-apps = %#v", domain["persistent-apps"])
	}
	tile, ok := apps[0].(map[string]interface{})
	if !ok {
		t.Fatalf("tile = %#v", apps[0])
	}
	data, ok := tile["tile-data"].(map[string]interface{})
	if !ok {
		t.Fatalf("tile-data = %#v", tile["tile-data"])
	}
	if data["bundle-identifier"] != "com.apple.Safari" || data["file-label"] != "Safari" {
		t.Errorf("tile-data = %#v", data)
	}
}

func TestPreferences_Export(t *testing.T) {
	r := &scriptedRunner{out: []byte(dockPlist)}
	domain, err := NewPreferences(r.run).PersistentDomain("com.apple.dock")
	if err != nil {
		t.Fatalf("PersistentDomain: %v", err)
	}
	if _, ok := domain["persistent-apps"]; !ok {
		t.Error("missing persistent-apps")
	}
	if got, want := r.lastCommand(), "defaults export com.apple.dock -"; got != want {
		t.Errorf("command = %q, want %q", got, want)
	}
}

func TestPreferences_MissingDomain(t *testing.T) {
	r := &scriptedRunner{err: errors.New("defaults: exit status 1: Domain com.example.none does not exist")}
	_, err := NewPreferences(r.run).PersistentDomain("com.example.none")
	if !errors.Is(err, platform.ErrDomainNotFound) {
		t.Errorf("err = %v, want ErrDomainNotFound", err)
	}

	empty := &scriptedRunner{out: []byte(`<?xml version="1.0" encoding="UTF-8"?><plist version="1.0"><dict/></plist>`)}
	_, err = NewPreferences(empty.run).PersistentDomain("com.example.none")
	if !errors.Is(err, platform.ErrDomainNotFound) {
		t.Errorf("empty domain err = %v, want ErrDomainNotFound", err)
	}
}

func TestPreferences_Garbage(t *testing.T) {
	r := &scriptedRunner{out: []byte("garbage")}
	_, err := NewPreferences(r.run).PersistentDomain("com.apple.dock")
	if err == nil || errors.Is(err, platform.ErrDomainNotFound) {
		t.Errorf("err = %v, want decode error", err)
	}
}
