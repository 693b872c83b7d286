package darwin

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mj1618/dock-cli/internal/model"
	"github.com/mj1618/dock-cli/internal/platform"
)

func TestIcons_ApplicationPath(t *testing.T) {
	r := &scriptedRunner{out: []byte("/Applications/Safari.app\n")}
	icons := NewIcons(r.run)

	path, ok := icons.ApplicationPath("com.apple.Safari")
	if !ok || path != "/Applications/Safari.app" {
		t.Errorf("ApplicationPath = %q, %v", path, ok)
	}
	if !strings.Contains(r.lastCommand(), `"com.apple.Safari"`) {
		t.Errorf("bundle id not quoted into script: %s", r.lastCommand())
	}

	if _, ok := icons.ApplicationPath(""); ok {
		t.Error("empty bundle id should not resolve")
	}
}

func TestIcons_ApplicationPathMissing(t *testing.T) {
	if _, ok := NewIcons((&scriptedRunner{out: []byte("\n")}).run).ApplicationPath("com.example.none"); ok {
		t.Error("empty script output should not resolve")
	}
	if _, ok := NewIcons((&scriptedRunner{err: errors.New("boom")}).run).ApplicationPath("com.example.none"); ok {
		t.Error("runner error should not resolve")
	}
}

func TestIcons_IconForFile(t *testing.T) {
	dir := t.TempDir()
	icons := NewIcons((&scriptedRunner{}).run)

	icon, ok := icons.IconForFile(dir)
	if !ok || icon != (model.Icon{Path: dir}) {
		t.Errorf("IconForFile(%q) = %+v, %v", dir, icon, ok)
	}
	if _, ok := icons.IconForFile(filepath.Join(dir, "missing")); ok {
		t.Error("missing file should not resolve")
	}
	if _, ok := icons.IconForFile(""); ok {
		t.Error("empty path should not resolve")
	}
}

func TestIcons_GenericIcon(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{platform.IconGenericFolder, platform.IconTrash} {
		if err := os.WriteFile(filepath.Join(dir, name+".icns"), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	icons := NewIcons((&scriptedRunner{}).run)
	icons.resourcesDir = dir

	icon, ok := icons.GenericIcon("directory-tile")
	if !ok || icon.Kind != platform.IconGenericFolder {
		t.Errorf("GenericIcon(directory-tile) = %+v, %v", icon, ok)
	}
	icon, ok = icons.GenericIcon("TrashIcon")
	if !ok || icon.Path != filepath.Join(dir, "TrashIcon.icns") {
		t.Errorf("GenericIcon(TrashIcon) = %+v, %v", icon, ok)
	}
	if _, ok := icons.GenericIcon("file-tile"); ok {
		t.Error("document icon is absent from the fixture directory")
	}
}
