// Package logbook reads logbook exports and automation state
// snapshots from disk. The core analysis stays free of I/O; this is
// the ingestion side the CLI and the serve loop feed it from.
package logbook

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/routinely/routinely/internal/logger"
	"github.com/routinely/routinely/internal/pattern"
)

// ReadEntries loads log entries from a JSON array or JSON-Lines file.
// Malformed individual lines are skipped with a warning; the analysis
// is expected to run over years of occasionally corrupt history.
func ReadEntries(path string) ([]pattern.LogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries file: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var entries []pattern.LogEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse entries file %s: %w", path, err)
		}
		return entries, nil
	}

	var entries []pattern.LogEntry
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var entry pattern.LogEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			logger.Warn().
				Str("path", path).
				Int("line", line).
				Err(err).
				Msg("Skipping malformed logbook line")
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan entries file %s: %w", path, err)
	}
	return entries, nil
}

// automationRecord accepts both the flat snapshot form and the
// platform export form with a nested attributes object.
type automationRecord struct {
	EntityID      string         `json:"entity_id"`
	State         string         `json:"state"`
	FriendlyName  string         `json:"friendly_name"`
	LastTriggered any            `json:"last_triggered"`
	Attributes    map[string]any `json:"attributes"`
}

func (r automationRecord) toState() pattern.AutomationState {
	s := pattern.AutomationState{
		EntityID:      r.EntityID,
		State:         r.State,
		FriendlyName:  r.FriendlyName,
		LastTriggered: r.LastTriggered,
	}
	if r.Attributes != nil {
		if s.FriendlyName == "" {
			if name, ok := r.Attributes["friendly_name"].(string); ok {
				s.FriendlyName = name
			}
		}
		if s.LastTriggered == nil {
			s.LastTriggered = r.Attributes["last_triggered"]
		}
	}
	return s
}

// ReadAutomationStates loads automation snapshots from a JSON array
// file. Non-automation entities are dropped.
func ReadAutomationStates(path string) ([]pattern.AutomationState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read states file: %w", err)
	}

	var records []automationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse states file %s: %w", path, err)
	}

	states := make([]pattern.AutomationState, 0, len(records))
	for _, r := range records {
		state := r.toState()
		if !strings.HasPrefix(state.EntityID, "automation.") {
			continue
		}
		states = append(states, state)
	}
	return states, nil
}
