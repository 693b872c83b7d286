package darwin

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mj1618/dock-cli/internal/model"
	"github.com/mj1618/dock-cli/internal/platform"
)

// CoreTypesResources holds the system's generic icons.
const CoreTypesResources = "/System/Library/CoreServices/CoreTypes.bundle/Contents/Resources"

// Icons resolves icon handles. A handle is the path of the file whose icon
// the OS would draw.
type Icons struct {
	run          Runner
	stat         func(string) (os.FileInfo, error)
	resourcesDir string
}

// NewIcons returns an icon resolver. A nil runner selects ExecRunner.
func NewIcons(run Runner) *Icons {
	if run == nil {
		run = ExecRunner
	}
	return &Icons{run: run, stat: os.Stat, resourcesDir: CoreTypesResources}
}

// ApplicationPath asks LaunchServices where the bundle is installed.
func (i *Icons) ApplicationPath(bundleID string) (string, bool) {
	if bundleID == "" {
		return "", false
	}
	script := `ObjC.import('AppKit');
var url = $.NSWorkspace.sharedWorkspace.URLForApplicationWithBundleIdentifier(` + jsString(bundleID) + `);
url.isNil() ? "" : ObjC.unwrap(url.path);`
	ctx, cancel := withTimeout()
	defer cancel()
	out, err := runJXA(ctx, i.run, script)
	if err != nil {
		return "", false
	}
	path := strings.TrimSpace(string(out))
	return path, path != ""
}

// IconForFile returns the file's own icon when the file exists.
func (i *Icons) IconForFile(path string) (model.Icon, bool) {
	if path == "" {
		return model.Icon{}, false
	}
	if _, err := i.stat(path); err != nil {
		return model.Icon{}, false
	}
	return model.Icon{Path: path}, true
}

// GenericIcon returns the system icon for a tile kind.
func (i *Icons) GenericIcon(kind string) (model.Icon, bool) {
	name := platform.GenericIconName(kind)
	path := filepath.Join(i.resourcesDir, name+".icns")
	if _, err := i.stat(path); err != nil {
		return model.Icon{}, false
	}
	return model.Icon{Path: path, Kind: name}, true
}
