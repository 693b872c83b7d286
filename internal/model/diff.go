package model

import (
	"fmt"
	"time"
)

// ChangeType represents the kind of dock change detected.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
)

// ItemChange represents a single change between two snapshots.
type ItemChange struct {
	Type     ChangeType           `yaml:"type"              json:"type"`
	TS       int64                `yaml:"ts"                json:"ts"`
	Identity Identity             `yaml:"id"                json:"id"`
	Item     *ItemView            `yaml:"item,omitempty"    json:"item,omitempty"`    // For added: the full item
	Name     string               `yaml:"name,omitempty"    json:"name,omitempty"`    // For removed: last known name
	Changes  map[string][2]string `yaml:"changes,omitempty" json:"changes,omitempty"` // For changed: field diffs
}

// DiffItems compares two snapshots and returns the changes. Items are
// matched by identity; output follows the order of curr, then removals in
// the order of prev.
func DiffItems(prev, curr []ItemView) []ItemChange {
	prevMap := make(map[Identity]ItemView, len(prev))
	for _, it := range prev {
		prevMap[it.Identity] = it
	}
	currMap := make(map[Identity]struct{}, len(curr))
	for _, it := range curr {
		currMap[it.Identity] = struct{}{}
	}

	var changes []ItemChange
	now := time.Now().Unix()

	for _, it := range curr {
		prevIt, existed := prevMap[it.Identity]
		if !existed {
			itCopy := it
			changes = append(changes, ItemChange{
				Type:     ChangeAdded,
				TS:       now,
				Identity: it.Identity,
				Item:     &itCopy,
			})
			continue
		}
		if diffs := diffProperties(prevIt, it); len(diffs) > 0 {
			changes = append(changes, ItemChange{
				Type:     ChangeChanged,
				TS:       now,
				Identity: it.Identity,
				Changes:  diffs,
			})
		}
	}

	for _, it := range prev {
		if _, exists := currMap[it.Identity]; !exists {
			changes = append(changes, ItemChange{
				Type:     ChangeRemoved,
				TS:       now,
				Identity: it.Identity,
				Name:     it.Name,
			})
		}
	}

	return changes
}

// diffProperties compares two snapshots of the same item and returns changed fields.
func diffProperties(prev, curr ItemView) map[string][2]string {
	diffs := make(map[string][2]string)

	if prev.Name != curr.Name {
		diffs["name"] = [2]string{prev.Name, curr.Name}
	}
	if prev.Order != curr.Order {
		diffs["order"] = [2]string{fmt.Sprint(prev.Order), fmt.Sprint(curr.Order)}
	}
	if prev.Persistent != curr.Persistent {
		diffs["persistent"] = [2]string{fmt.Sprint(prev.Persistent), fmt.Sprint(curr.Persistent)}
	}
	if prev.PID != curr.PID {
		diffs["pid"] = [2]string{fmt.Sprint(prev.PID), fmt.Sprint(curr.PID)}
	}
	if prev.Launching != curr.Launching {
		diffs["launching"] = [2]string{fmt.Sprint(prev.Launching), fmt.Sprint(curr.Launching)}
	}
	if prev.Icon != curr.Icon {
		diffs["icon"] = [2]string{prev.Icon.Path, curr.Icon.Path}
	}
	if pb, cb := badgeString(prev.Badge), badgeString(curr.Badge); pb != cb {
		diffs["badge"] = [2]string{pb, cb}
	}

	if len(diffs) == 0 {
		return nil
	}
	return diffs
}

func badgeString(b *int) string {
	if b == nil {
		return ""
	}
	return fmt.Sprint(*b)
}
