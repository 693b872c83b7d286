package model

import "strings"

// FileScheme prefixes identities of file and folder tiles.
const FileScheme = "file://"

// Identity is the merge key of a dock entry: a bundle identifier for
// applications, or a file URL for files and folders.
type Identity string

// FileIdentity returns the identity of a file or folder tile.
func FileIdentity(path string) Identity {
	if strings.HasPrefix(path, FileScheme) {
		return Identity(path)
	}
	return Identity(FileScheme + path)
}

// IsFile reports whether the identity refers to a file or folder.
func (id Identity) IsFile() bool {
	return strings.HasPrefix(string(id), FileScheme)
}

// Path returns the filesystem path of a file identity, or "" for applications.
func (id Identity) Path() string {
	if !id.IsFile() {
		return ""
	}
	return strings.TrimPrefix(string(id), FileScheme)
}

func (id Identity) String() string { return string(id) }

// Kind classifies a dock entry.
type Kind string

const (
	KindApp       Kind = "app"
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
	KindTrash     Kind = "trash"
)

// Icon is an opaque image handle. The engine never decodes it.
type Icon struct {
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty"`
}

// IsZero reports whether the icon is the empty placeholder.
func (i Icon) IsZero() bool { return i.Path == "" && i.Kind == "" }

// DockItem is a live dock entry owned by an ItemStore. Holders of a
// *DockItem observe in-place updates across reconciliation passes.
type DockItem struct {
	identity Identity
	seq      int

	Order      int
	Persistent bool
	Kind       Kind
	Name       string
	Icon       Icon
	Path       string
	PID        int
	Launching  bool
	Badge      *int
}

// Identity returns the item's merge key. It never changes for the lifetime
// of the record.
func (d *DockItem) Identity() Identity { return d.identity }

// IsRunning reports whether a matching process is currently known.
func (d *DockItem) IsRunning() bool { return d.PID != 0 }

// HasBadge reports whether the item carries a non-zero badge.
func (d *DockItem) HasBadge() bool { return d.Badge != nil && *d.Badge != 0 }

// ClearProcess drops the running-state fields.
func (d *DockItem) ClearProcess() {
	d.PID = 0
	d.Launching = false
}

// View returns an immutable copy of the item.
func (d *DockItem) View() ItemView {
	v := ItemView{
		Identity:   d.identity,
		Order:      d.Order,
		Persistent: d.Persistent,
		Kind:       d.Kind,
		Name:       d.Name,
		Icon:       d.Icon,
		Path:       d.Path,
		PID:        d.PID,
		Launching:  d.Launching,
	}
	if d.Badge != nil {
		b := *d.Badge
		v.Badge = &b
	}
	return v
}

// ItemView is a value snapshot of a DockItem handed to delegates and printers.
type ItemView struct {
	Identity   Identity `yaml:"identity"             json:"identity"`
	Order      int      `yaml:"order"                json:"order"`
	Persistent bool     `yaml:"persistent,omitempty" json:"persistent,omitempty"`
	Kind       Kind     `yaml:"kind"                 json:"kind"`
	Name       string   `yaml:"name"                 json:"name"`
	Icon       Icon     `yaml:"icon,omitempty"       json:"icon,omitempty"`
	Path       string   `yaml:"path,omitempty"       json:"path,omitempty"`
	PID        int      `yaml:"pid,omitempty"        json:"pid,omitempty"`
	Launching  bool     `yaml:"launching,omitempty"  json:"launching,omitempty"`
	Badge      *int     `yaml:"badge,omitempty"      json:"badge,omitempty"`
}

// HasBadge reports whether the snapshot carries a non-zero badge.
func (v ItemView) HasBadge() bool { return v.Badge != nil && *v.Badge != 0 }

// IsRunning reports whether the snapshot has a process attached.
func (v ItemView) IsRunning() bool { return v.PID != 0 }
