package model

import "strings"

// ItemFilter selects dock items. Zero fields match everything.
type ItemFilter struct {
	Running    bool
	Persistent bool
	Badged     bool
	Kinds      []Kind
	Text       string
}

// IsZero reports whether the filter matches every item.
func (f ItemFilter) IsZero() bool {
	return !f.Running && !f.Persistent && !f.Badged && len(f.Kinds) == 0 && f.Text == ""
}

// Match reports whether item passes every set criterion.
func (f ItemFilter) Match(item ItemView) bool {
	if f.Running && !item.IsRunning() {
		return false
	}
	if f.Persistent && !item.Persistent {
		return false
	}
	if f.Badged && !item.HasBadge() {
		return false
	}
	if len(f.Kinds) > 0 && !containsKind(f.Kinds, item.Kind) {
		return false
	}
	if f.Text != "" && !textMatchesItem(item, strings.ToLower(f.Text)) {
		return false
	}
	return true
}

// FilterItems returns the items matching f, preserving order.
func FilterItems(items []ItemView, f ItemFilter) []ItemView {
	if f.IsZero() {
		return items
	}
	result := make([]ItemView, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			result = append(result, item)
		}
	}
	return result
}

// ParseKinds parses a comma-separated kind list such as "app,directory".
func ParseKinds(s string) []Kind {
	var kinds []Kind
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(strings.ToLower(part)); part != "" {
			kinds = append(kinds, Kind(part))
		}
	}
	return kinds
}

func containsKind(kinds []Kind, k Kind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

func textMatchesItem(item ItemView, textLower string) bool {
	return strings.Contains(strings.ToLower(item.Name), textLower) ||
		strings.Contains(strings.ToLower(string(item.Identity)), textLower)
}
