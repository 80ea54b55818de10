// Package state persists the outcome of the most recent fleet action so the
// dashboard and `camfleet last` can show it without re-running anything.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"camfleet/src/fleet"
)

const lastRunFile = "last_run.json"

// LastRun is the persisted record of the most recent fleet action.
type LastRun struct {
	Timestamp time.Time    `json:"ts"`
	Report    fleet.Report `json:"report"`
}

// Store reads and writes run state under a directory.
type Store struct {
	Dir string
}

// Write persists the report as the last run, creating the state directory
// if needed. The file is written atomically via a rename.
func (s Store) Write(rep fleet.Report) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(LastRun{Timestamp: time.Now(), Report: rep}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp := filepath.Join(s.Dir, lastRunFile+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.Dir, lastRunFile)); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// Read returns the last persisted run. A missing or unreadable state file
// yields (nil, nil): the hub may simply never have run an action yet.
func (s Store) Read() (*LastRun, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, lastRunFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	var lr LastRun
	if err := json.Unmarshal(data, &lr); err != nil {
		// Corrupt state is not worth failing an update over.
		return nil, nil
	}
	return &lr, nil
}
