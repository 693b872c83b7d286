package dock

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mj1618/dock-cli/internal/model"
	"github.com/mj1618/dock-cli/internal/platform"
)

// Keys of the dock preferences domain.
const (
	KeyPersistentApps   = "persistent-apps"
	KeyPersistentOthers = "persistent-others"
	KeyTileData         = "tile-data"
	KeyTileType         = "tile-type"
	KeyFileLabel        = "file-label"
	KeyBundleIdentifier = "bundle-identifier"
	KeyFileData         = "file-data"
	KeyURLString        = "_CFURLString"
)

// Tile types found in the dock preferences.
const (
	TileTypeFile      = "file-tile"
	TileTypeDirectory = "directory-tile"
	TileTypeSpacer    = "spacer-tile"
	TileTypeSmallGap  = "small-spacer-tile"
	TileTypeFlexGap   = "flex-spacer-tile"
)

var (
	// ErrDomainNotFound is returned when the preferences domain is missing.
	ErrDomainNotFound = platform.ErrDomainNotFound
	// ErrNoPersistentApps is returned when the domain has no persistent-apps list.
	ErrNoPersistentApps = errors.New("persistent-apps list not found")
)

// PersistentEntry is one pinned dock tile.
type PersistentEntry struct {
	Index    int
	Identity model.Identity
	Label    string
	Kind     model.Kind
	TileType string
	Path     string
}

// EntryError describes a skipped persistent record.
type EntryError struct {
	List   string
	Index  int
	Reason string
}

func (e EntryError) Error() string {
	return fmt.Sprintf("%s[%d]: %s", e.List, e.Index, e.Reason)
}

// IsSpacer reports whether the record was a layout spacer rather than a
// malformed entry.
func (e EntryError) IsSpacer() bool {
	return e.Reason == reasonSpacer
}

const (
	reasonSpacer        = "spacer tile"
	reasonNotRecord     = "record is not a dictionary"
	reasonNoTileData    = "missing tile-data"
	reasonNoLabel       = "missing file-label"
	reasonNoBundleID    = "missing bundle-identifier"
	reasonNoURL         = "missing file-data URL"
	reasonBadURL        = "invalid file-data URL"
	reasonUnsupportedTy = "unsupported tile type"
)

// PersistentSnapshot is the parsed pinned item list.
type PersistentSnapshot struct {
	Entries []PersistentEntry
	Skipped []EntryError
}

// Identities returns the set of pinned identities.
func (s *PersistentSnapshot) Identities() map[model.Identity]struct{} {
	ids := make(map[model.Identity]struct{}, len(s.Entries))
	for _, e := range s.Entries {
		ids[e.Identity] = struct{}{}
	}
	return ids
}

// ParsePersistentDomain extracts pinned entries from a dock preferences
// domain. Malformed records are reported in Skipped and do not fail the
// parse. With includeOthers the persistent-others list is appended, its
// indexes continuing after the last application record.
func ParsePersistentDomain(domain map[string]any, includeOthers bool) (*PersistentSnapshot, error) {
	if domain == nil {
		return nil, ErrDomainNotFound
	}
	apps, ok := asList(domain[KeyPersistentApps])
	if !ok {
		return nil, ErrNoPersistentApps
	}

	snap := &PersistentSnapshot{}
	seen := make(map[model.Identity]bool)
	add := func(e PersistentEntry) {
		// First occurrence wins so identities stay unique.
		if seen[e.Identity] {
			return
		}
		seen[e.Identity] = true
		snap.Entries = append(snap.Entries, e)
	}

	for i, raw := range apps {
		entry, reason := parseAppTile(raw)
		if reason != "" {
			snap.Skipped = append(snap.Skipped, EntryError{List: KeyPersistentApps, Index: i, Reason: reason})
			continue
		}
		entry.Index = i
		add(entry)
	}

	if includeOthers {
		others, _ := asList(domain[KeyPersistentOthers])
		for j, raw := range others {
			entry, reason := parseOtherTile(raw)
			if reason != "" {
				snap.Skipped = append(snap.Skipped, EntryError{List: KeyPersistentOthers, Index: j, Reason: reason})
				continue
			}
			entry.Index = len(apps) + j
			add(entry)
		}
	}
	return snap, nil
}

func parseAppTile(raw any) (PersistentEntry, string) {
	tile, ok := asMap(raw)
	if !ok {
		return PersistentEntry{}, reasonNotRecord
	}
	tileType, _ := tile[KeyTileType].(string)
	if isSpacer(tileType) {
		return PersistentEntry{}, reasonSpacer
	}
	data, ok := asMap(tile[KeyTileData])
	if !ok {
		return PersistentEntry{}, reasonNoTileData
	}
	label, ok := data[KeyFileLabel].(string)
	if !ok {
		return PersistentEntry{}, reasonNoLabel
	}
	bundleID, ok := data[KeyBundleIdentifier].(string)
	if !ok || bundleID == "" {
		return PersistentEntry{}, reasonNoBundleID
	}
	if tileType == "" {
		tileType = TileTypeFile
	}
	return PersistentEntry{
		Identity: model.Identity(bundleID),
		Label:    label,
		Kind:     model.KindApp,
		TileType: tileType,
	}, ""
}

func parseOtherTile(raw any) (PersistentEntry, string) {
	tile, ok := asMap(raw)
	if !ok {
		return PersistentEntry{}, reasonNotRecord
	}
	tileType, _ := tile[KeyTileType].(string)
	if isSpacer(tileType) {
		return PersistentEntry{}, reasonSpacer
	}
	var kind model.Kind
	switch tileType {
	case TileTypeDirectory:
		kind = model.KindDirectory
	case TileTypeFile, "":
		kind = model.KindFile
		tileType = TileTypeFile
	default:
		return PersistentEntry{}, reasonUnsupportedTy
	}
	data, ok := asMap(tile[KeyTileData])
	if !ok {
		return PersistentEntry{}, reasonNoTileData
	}
	label, ok := data[KeyFileLabel].(string)
	if !ok {
		return PersistentEntry{}, reasonNoLabel
	}
	fileData, ok := asMap(data[KeyFileData])
	if !ok {
		return PersistentEntry{}, reasonNoURL
	}
	rawURL, ok := fileData[KeyURLString].(string)
	if !ok || rawURL == "" {
		return PersistentEntry{}, reasonNoURL
	}
	path, err := fileURLPath(rawURL)
	if err != nil {
		return PersistentEntry{}, reasonBadURL
	}
	return PersistentEntry{
		Identity: model.FileIdentity(path),
		Label:    label,
		Kind:     kind,
		TileType: tileType,
		Path:     path,
	}, ""
}

// fileURLPath turns "file:///Users/me/Downloads/" into "/Users/me/Downloads".
func fileURLPath(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "" && u.Scheme != "file" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Path == "" {
		return "", fmt.Errorf("empty path")
	}
	path := u.Path
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path, nil
}

func isSpacer(tileType string) bool {
	switch tileType {
	case TileTypeSpacer, TileTypeSmallGap, TileTypeFlexGap:
		return true
	}
	return false
}

func asList(v any) ([]any, bool) {
	switch list := v.(type) {
	case []any:
		return list, true
	case []map[string]any:
		out := make([]any, len(list))
		for i, m := range list {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
