// Package pattern mines timestamped device state-change records for
// recurring manual routines. It classifies which changes were
// human-initiated, detects consistent daily timing patterns in them,
// and builds ranked automation suggestions plus a separate report of
// automations that have gone dormant.
//
// Every function in this package is a pure, synchronous transformation
// of its inputs. Malformed input degrades to documented fallback
// values; nothing here panics or performs I/O.
package pattern

import (
	"strings"
	"time"
)

// Tunable defaults for the suggestion pipeline.
const (
	DefaultWindowMinutes        = 30
	DefaultMinOccurrences       = 3
	DefaultConsistencyThreshold = 0.70
)

// TrackedDomains returns the default set of device categories that are
// mined for manual routines.
func TrackedDomains() []string {
	return []string{
		"light",
		"switch",
		"cover",
		"climate",
		"scene",
		"script",
		"input_number",
		"input_boolean",
		"input_select",
		"input_datetime",
		"input_button",
	}
}

// LogEntry is a single state-change record from a logbook export.
// State and When stay loosely typed because historical exports mix
// strings, numbers, booleans and nulls; absent fields decode to their
// zero value and every consumer treats the zero value as "not set".
type LogEntry struct {
	EntityID         string `json:"entity_id"`
	State            any    `json:"state"`
	When             any    `json:"when"`
	ContextUserID    string `json:"context_user_id"`
	ContextEventType string `json:"context_event_type"`
	ContextDomain    string `json:"context_domain"`
	Source           string `json:"source"`
}

// Domain returns the category prefix of the entity id, the part before
// the first ".", or "" for ids without one.
func (e LogEntry) Domain() string {
	if i := strings.Index(e.EntityID, "."); i >= 0 {
		return e.EntityID[:i]
	}
	return ""
}

// Pattern describes the timing behaviour of one (entity, action)
// group with at least two dated occurrences. WindowCount never exceeds
// TotalCount.
type Pattern struct {
	EntityID    string
	Action      string
	TotalCount  int
	Window      string // dominant "HH:MM" bucket label
	WindowCount int    // occurrences inside the dominant bucket
	Hours       []int  // hour of day of every occurrence
	TimeRange   string
	LastSeen    time.Time // most recent occurrence
	InWindow    []time.Time
}

// Candidate is a pattern that passed the occurrence and consistency
// thresholds and is eligible to become a Suggestion.
type Candidate struct {
	EntityID         string
	Action           string
	TotalOccurrences int
	Window           string
	WindowCount      int
	TimeRange        string
	Consistency      float64 // WindowCount / TotalOccurrences, in [0, 1]
	LastSeen         time.Time
}

// AutomationState is a snapshot of one automation entity, taken by the
// caller from the platform's current states. A State of "off" means
// the automation is disabled. LastTriggered is loosely typed for the
// same reason as LogEntry.When; null means never triggered.
type AutomationState struct {
	EntityID      string `json:"entity_id"`
	FriendlyName  string `json:"friendly_name"`
	State         string `json:"state"`
	LastTriggered any    `json:"last_triggered"`
}

// StaleAutomation reports an automation that has not fired within the
// configured threshold. LastTriggered is empty when the automation has
// never fired, in which case DaysSinceTriggered holds the
// NeverTriggeredDays sentinel.
type StaleAutomation struct {
	AutomationID       string `json:"automation_id"`
	FriendlyName       string `json:"friendly_name"`
	LastTriggered      string `json:"last_triggered"`
	DaysSinceTriggered int    `json:"days_since_triggered"`
	IsDisabled         bool   `json:"is_disabled"`
}
