package dock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mj1618/dock-cli/internal/model"
)

type stubIcons struct {
	apps    map[string]string
	files   map[string]bool
	generic bool
}

func (s stubIcons) ApplicationPath(bundleID string) (string, bool) {
	p, ok := s.apps[bundleID]
	return p, ok
}

func (s stubIcons) IconForFile(path string) (model.Icon, bool) {
	if !s.files[path] {
		return model.Icon{}, false
	}
	return model.Icon{Path: path}, true
}

func (s stubIcons) GenericIcon(kind string) (model.Icon, bool) {
	if !s.generic {
		return model.Icon{}, false
	}
	return model.Icon{Kind: kind}, true
}

func TestResolveIcon_Chain(t *testing.T) {
	r := stubIcons{
		apps:    map[string]string{"com.apple.Safari": "/Applications/Safari.app"},
		files:   map[string]bool{"/Applications/Safari.app": true, "/Users/me/Downloads": true},
		generic: true,
	}

	assert.Equal(t, model.Icon{Path: "/Applications/Safari.app"},
		ResolveIcon(r, "com.apple.Safari", "", "file-tile"))
	assert.Equal(t, model.Icon{Path: "/Users/me/Downloads"},
		ResolveIcon(r, "", "/Users/me/Downloads", "directory-tile"))
	assert.Equal(t, model.Icon{Kind: "directory-tile"},
		ResolveIcon(r, "", "/missing", "directory-tile"))
	assert.Equal(t, model.Icon{Kind: "file-tile"},
		ResolveIcon(r, "com.example.unknown", "", "file-tile"), "unknown bundle falls through to generic")
}

func TestResolveIcon_Placeholder(t *testing.T) {
	assert.True(t, ResolveIcon(stubIcons{}, "com.example", "/x", "file-tile").IsZero())
	assert.True(t, ResolveIcon(nil, "com.example", "", "").IsZero())
}
