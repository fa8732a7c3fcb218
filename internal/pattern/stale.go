package pattern

import (
	"path"
	"strings"
	"time"
)

// NeverTriggeredDays is the sentinel reported for automations that
// have never fired.
const NeverTriggeredDays = 999

// DefaultStaleThresholdDays is the default idle period after which an
// automation is reported stale.
const DefaultStaleThresholdDays = 30

// DetectStale flags automations whose last trigger is at least
// thresholdDays before now. Ignore patterns are shell globs matched
// against the entity id suffix after "automation.". Disabled
// automations are still evaluated and reported with IsDisabled set;
// automations that never fired are reported with the
// NeverTriggeredDays sentinel rather than dropped.
func DetectStale(snapshots []AutomationState, thresholdDays int, ignorePatterns []string, now time.Time) []StaleAutomation {
	var stale []StaleAutomation
	for _, snap := range snapshots {
		suffix := strings.TrimPrefix(snap.EntityID, "automation.")
		if matchesAny(ignorePatterns, suffix) {
			continue
		}

		days := NeverTriggeredDays
		lastTriggered := ""
		if t, ok := ParseTimestamp(snap.LastTriggered); ok {
			days = int(now.Sub(t).Hours() / 24)
			lastTriggered = t.Format(time.RFC3339)
		}
		if days < thresholdDays {
			continue
		}

		name := snap.FriendlyName
		if name == "" {
			name = snap.EntityID
		}

		stale = append(stale, StaleAutomation{
			AutomationID:       snap.EntityID,
			FriendlyName:       name,
			LastTriggered:      lastTriggered,
			DaysSinceTriggered: days,
			IsDisabled:         snap.State == "off",
		})
	}
	return stale
}

// matchesAny reports whether name matches any of the glob patterns.
// Invalid patterns never match.
func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := path.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
