package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// snapshotPrefix is the filename prefix for saved dock snapshots.
const snapshotPrefix = "dock-cli-snapshot-"

// Snapshot is a saved copy of the dock item list, used to report changes
// between separate invocations.
type Snapshot struct {
	Domain string     `json:"domain"`
	TS     int64      `json:"ts"`
	Items  []ItemView `json:"items"`
}

// SnapshotPath returns the snapshot file for domain inside dir. An empty
// dir selects os.TempDir().
func SnapshotPath(dir, domain string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	safe := strings.ReplaceAll(domain, "/", "_")
	safe = strings.ReplaceAll(safe, " ", "_")
	return filepath.Join(dir, snapshotPrefix+safe+".json")
}

// SaveSnapshot writes snap to path, replacing any previous file.
func SaveSnapshot(path string, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot saved by SaveSnapshot. A missing file
// yields an empty snapshot and ok == false.
func LoadSnapshot(path string) (snap Snapshot, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, true, nil
}

// IsStale reports whether the snapshot is older than maxAge. A
// non-positive maxAge never expires.
func (s Snapshot) IsStale(now time.Time, maxAge time.Duration) bool {
	if maxAge <= 0 {
		return false
	}
	return now.Sub(time.Unix(s.TS, 0)) > maxAge
}
