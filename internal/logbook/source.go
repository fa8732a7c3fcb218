package logbook

import (
	"context"

	"github.com/routinely/routinely/internal/pattern"
)

// FileSource serves a fixed pair of export files as an analysis input
// source. Files are re-read on every call so the serve loop picks up
// refreshed exports without a restart.
type FileSource struct {
	EntriesPath string
	StatesPath  string
}

// Entries loads the logbook export.
func (f FileSource) Entries(_ context.Context) ([]pattern.LogEntry, error) {
	return ReadEntries(f.EntriesPath)
}

// AutomationStates loads the automation snapshot, or nothing when no
// snapshot file is configured.
func (f FileSource) AutomationStates(_ context.Context) ([]pattern.AutomationState, error) {
	if f.StatesPath == "" {
		return nil, nil
	}
	return ReadAutomationStates(f.StatesPath)
}
