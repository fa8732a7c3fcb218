package pattern

import "testing"

func manualEntry() LogEntry {
	return LogEntry{
		EntityID:      "light.kitchen",
		State:         "on",
		ContextUserID: "user-abc",
	}
}

func TestIsManualActionExclusions(t *testing.T) {
	tests := []struct {
		name  string
		entry LogEntry
		want  bool
	}{
		{"resolved user is manual", manualEntry(), true},
		{
			"automation_triggered never manual",
			LogEntry{EntityID: "light.kitchen", ContextUserID: "user-abc", ContextEventType: "automation_triggered"},
			false,
		},
		{
			"automation context domain",
			LogEntry{EntityID: "light.kitchen", ContextUserID: "user-abc", ContextDomain: "automation"},
			false,
		},
		{
			"script context domain",
			LogEntry{EntityID: "light.kitchen", ContextUserID: "user-abc", ContextDomain: "script"},
			false,
		},
		{
			"time pattern source",
			LogEntry{EntityID: "light.kitchen", ContextUserID: "user-abc", Source: "triggered by time pattern"},
			false,
		},
		{
			"state-of source",
			LogEntry{EntityID: "light.kitchen", ContextUserID: "user-abc", Source: "triggered by state of sun.sun"},
			false,
		},
		{
			"time change source",
			LogEntry{EntityID: "light.kitchen", ContextUserID: "user-abc", Source: "time change"},
			false,
		},
		{
			"template source",
			LogEntry{EntityID: "light.kitchen", ContextUserID: "user-abc", Source: "turned on via template"},
			false,
		},
		{
			"startup source",
			LogEntry{EntityID: "light.kitchen", ContextUserID: "user-abc", Source: "Home Assistant starting"},
			false,
		},
		{
			"unrelated source kept",
			LogEntry{EntityID: "light.kitchen", ContextUserID: "user-abc", Source: "turned on by the wall switch"},
			true,
		},
		{
			"no user id is not manual",
			LogEntry{EntityID: "light.kitchen", State: "on"},
			false,
		},
		{
			"unknown placeholder user is not manual",
			LogEntry{EntityID: "light.kitchen", ContextUserID: "unknown"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsManualAction(tt.entry, Filters{}); got != tt.want {
				t.Errorf("IsManualAction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsManualActionUserFilters(t *testing.T) {
	excluded := Filters{ExcludedUsers: NewFilterSet([]string{"user-abc"})}
	included := Filters{IncludedUsers: NewFilterSet([]string{"user-abc"})}

	tests := []struct {
		name    string
		entry   LogEntry
		filters Filters
		want    bool
	}{
		{"excluded member rejected", manualEntry(), excluded, false},
		{
			"excluded non-member kept",
			LogEntry{EntityID: "light.kitchen", ContextUserID: "user-xyz"},
			excluded,
			true,
		},
		{
			"exclude mode without user falls through to fallback",
			LogEntry{EntityID: "light.kitchen"},
			excluded,
			false,
		},
		{"included member kept", manualEntry(), included, true},
		{
			"included non-member rejected",
			LogEntry{EntityID: "light.kitchen", ContextUserID: "user-xyz"},
			included,
			false,
		},
		{
			"include mode without user rejected",
			LogEntry{EntityID: "light.kitchen"},
			included,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsManualAction(tt.entry, tt.filters); got != tt.want {
				t.Errorf("IsManualAction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsManualActionDomainFilters(t *testing.T) {
	entry := manualEntry()
	entry.ContextDomain = "mobile_app"

	excluded := Filters{ExcludedDomains: NewFilterSet([]string{"mobile_app"})}
	if IsManualAction(entry, excluded) {
		t.Error("excluded context domain should be rejected")
	}

	included := Filters{IncludedDomains: NewFilterSet([]string{"mobile_app"})}
	if !IsManualAction(entry, included) {
		t.Error("included context domain should be kept")
	}

	noDomain := manualEntry()
	if IsManualAction(noDomain, included) {
		t.Error("include mode without a context domain should be rejected")
	}
	if !IsManualAction(noDomain, excluded) {
		t.Error("exclude mode without a context domain should be kept")
	}
}

func TestIsManualActionExclusionPrecedence(t *testing.T) {
	// Automation markers win even when every filter would accept the
	// entry.
	entry := manualEntry()
	entry.ContextEventType = "automation_triggered"
	filters := Filters{IncludedUsers: NewFilterSet([]string{"user-abc"})}

	if IsManualAction(entry, filters) {
		t.Error("automation_triggered must short-circuit before filters")
	}
}

func TestNewFilterSet(t *testing.T) {
	if NewFilterSet(nil) != nil {
		t.Error("empty list should produce a nil set")
	}
	set := NewFilterSet([]string{"a", "b"})
	if !set["a"] || !set["b"] || set["c"] {
		t.Errorf("unexpected set contents: %v", set)
	}
}
