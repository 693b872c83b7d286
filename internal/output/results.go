package output

import (
	"github.com/mj1618/dock-cli/internal/model"
)

// ListResult is the output of the `list` command.
type ListResult struct {
	Domain string           `yaml:"domain"             json:"domain"`
	TS     int64            `yaml:"ts"                 json:"ts"`
	Items  []model.ItemView `yaml:"items"              json:"items"`
	Errors []string         `yaml:"errors,omitempty"   json:"errors,omitempty"`
}

// BadgeEntry is one badged dock item.
type BadgeEntry struct {
	Identity model.Identity `yaml:"id"    json:"id"`
	Name     string         `yaml:"name"  json:"name"`
	Badge    int            `yaml:"badge" json:"badge"`
}

// BadgesResult is the output of the `badges` command.
type BadgesResult struct {
	TS    int64        `yaml:"ts"    json:"ts"`
	Items []BadgeEntry `yaml:"items" json:"items"`
}

// LaunchResult is the output of the `launch` command.
type LaunchResult struct {
	OK       bool           `yaml:"ok"              json:"ok"`
	Action   string         `yaml:"action"          json:"action"`
	Identity model.Identity `yaml:"id"              json:"id"`
	Error    string         `yaml:"error,omitempty" json:"error,omitempty"`
}

// WatchEvent is one line of the `watch` stream.
type WatchEvent struct {
	Type    string             `json:"type"`
	TS      int64              `json:"ts"`
	Items   []model.ItemView   `json:"items,omitempty"`
	Changes []model.ItemChange `json:"changes,omitempty"`
	Badges  []BadgeEntry       `json:"badges,omitempty"`
	Count   int                `json:"count,omitempty"`
}

// Watch event types.
const (
	WatchSnapshot = "snapshot"
	WatchChanges  = "changes"
	WatchBadges   = "badges"
	WatchDone     = "done"
)

// BadgeEntries converts badged views into entries. Views without a
// non-zero badge are dropped.
func BadgeEntries(items []model.ItemView) []BadgeEntry {
	entries := make([]BadgeEntry, 0, len(items))
	for _, item := range items {
		if !item.HasBadge() {
			continue
		}
		entries = append(entries, BadgeEntry{
			Identity: item.Identity,
			Name:     item.Name,
			Badge:    *item.Badge,
		})
	}
	return entries
}

// LaunchAction names what launching id does: "open" for files, "launch"
// for applications.
func LaunchAction(id model.Identity) string {
	if id.IsFile() {
		return "open"
	}
	return "launch"
}

// DiffResult is the output of the `diff` command.
type DiffResult struct {
	Domain   string             `yaml:"domain"             json:"domain"`
	TS       int64              `yaml:"ts"                 json:"ts"`
	Since    int64              `yaml:"since,omitempty"    json:"since,omitempty"`
	Baseline bool               `yaml:"baseline,omitempty" json:"baseline,omitempty"`
	Changes  []model.ItemChange `yaml:"changes"            json:"changes"`
	Errors   []string           `yaml:"errors,omitempty"   json:"errors,omitempty"`
}
