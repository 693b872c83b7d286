package dock

import (
	"github.com/mj1618/dock-cli/internal/model"
	"github.com/mj1618/dock-cli/internal/platform"
)

// ResolveIcon finds an icon for a dock entry. It tries the application
// bundle, then path, then a generic icon for kind, and finally returns the
// empty placeholder. It never fails.
func ResolveIcon(r platform.IconResolver, bundleID, path, kind string) model.Icon {
	if r == nil {
		return model.Icon{}
	}
	if bundleID != "" {
		if appPath, ok := r.ApplicationPath(bundleID); ok {
			if icon, ok := r.IconForFile(appPath); ok {
				return icon
			}
		}
	}
	if path != "" {
		if icon, ok := r.IconForFile(path); ok {
			return icon
		}
	}
	if icon, ok := r.GenericIcon(kind); ok {
		return icon
	}
	return model.Icon{}
}
