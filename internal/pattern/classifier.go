package pattern

import "strings"

// Filters narrows which acting users and trigger domains count as
// manual. A nil or empty set disables that filter; include sets demand
// a present, matching value while exclude sets only reject present
// members.
type Filters struct {
	ExcludedUsers   map[string]bool
	IncludedUsers   map[string]bool
	ExcludedDomains map[string]bool
	IncludedDomains map[string]bool
}

// automationSources are trigger-source phrases that mark an entry as
// automation-driven regardless of any other field.
var automationSources = []string{
	"time pattern",
	"state of ",
	"time change",
	"via template",
	"Home Assistant starting",
}

// exclusionRule proves an entry automated. Rules run in declaration
// order and short-circuit before any user or domain filtering.
type exclusionRule struct {
	name    string
	applies func(e LogEntry) bool
}

var exclusionRules = []exclusionRule{
	{
		name: "automation-triggered-event",
		applies: func(e LogEntry) bool {
			return e.ContextEventType == "automation_triggered"
		},
	},
	{
		name: "automation-or-script-domain",
		applies: func(e LogEntry) bool {
			return e.ContextDomain == "automation" || e.ContextDomain == "script"
		},
	},
	{
		name: "automation-source-phrase",
		applies: func(e LogEntry) bool {
			if e.Source == "" {
				return false
			}
			for _, phrase := range automationSources {
				if strings.Contains(e.Source, phrase) {
					return true
				}
			}
			return false
		},
	},
}

// IsManualAction reports whether an entry represents a direct human
// action. The logic is exclusion-based: an action counts as manual
// unless it can be proven automated. Exclusion rules run first, then
// the user and domain filters, and finally an entry without a resolved
// acting user (absent or the "unknown" placeholder) is rejected so
// unattributed integration events cannot slip through.
func IsManualAction(e LogEntry, f Filters) bool {
	for _, rule := range exclusionRules {
		if rule.applies(e) {
			return false
		}
	}

	userID := e.ContextUserID
	if len(f.ExcludedUsers) > 0 && userID != "" && f.ExcludedUsers[userID] {
		return false
	}
	if len(f.IncludedUsers) > 0 && (userID == "" || !f.IncludedUsers[userID]) {
		return false
	}

	domain := e.ContextDomain
	if len(f.ExcludedDomains) > 0 && domain != "" && f.ExcludedDomains[domain] {
		return false
	}
	if len(f.IncludedDomains) > 0 && (domain == "" || !f.IncludedDomains[domain]) {
		return false
	}

	return userID != "" && userID != "unknown"
}

// NewFilterSet builds a membership set from a list of ids, or nil for
// an empty list so the corresponding filter stays disabled.
func NewFilterSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
