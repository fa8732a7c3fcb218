package pattern

import "time"

// ActionGroup holds the ordered occurrence instants for one
// (entity, action) pair. A nil element records an occurrence whose
// timestamp failed to parse; the analyzer drops those later so the
// raw occurrence count stays visible until then.
type ActionGroup struct {
	EntityID string
	Action   string
	Times    []*time.Time
}

// ActionGroups is an insertion-ordered two-level grouping of
// entity -> action -> occurrence instants. Iteration follows first
// insertion, which keeps every downstream tie-break deterministic for
// identical input order.
type ActionGroups struct {
	index  map[string]int
	groups []*ActionGroup
}

// NewActionGroups returns an empty grouping.
func NewActionGroups() *ActionGroups {
	return &ActionGroups{index: make(map[string]int)}
}

// Add appends an occurrence to the (entity, action) group, creating
// the group on first use. ts is nil for occurrences without a
// parseable timestamp.
func (g *ActionGroups) Add(entityID, action string, ts *time.Time) {
	key := entityID + "\x00" + action
	i, ok := g.index[key]
	if !ok {
		i = len(g.groups)
		g.index[key] = i
		g.groups = append(g.groups, &ActionGroup{EntityID: entityID, Action: action})
	}
	g.groups[i].Times = append(g.groups[i].Times, ts)
}

// Groups returns the groups in first-insertion order. The returned
// slice is shared with the receiver and must not be mutated.
func (g *ActionGroups) Groups() []*ActionGroup {
	return g.groups
}

// Len returns the number of distinct (entity, action) groups.
func (g *ActionGroups) Len() int {
	return len(g.groups)
}

// CollectManualActions classifies raw log entries and groups the
// manual ones by (entity, action). Entries outside trackedDomains are
// dropped before classification.
func CollectManualActions(entries []LogEntry, trackedDomains []string, filters Filters) *ActionGroups {
	tracked := NewFilterSet(trackedDomains)

	groups := NewActionGroups()
	for _, e := range entries {
		if !tracked[e.Domain()] {
			continue
		}
		if !IsManualAction(e, filters) {
			continue
		}

		action := ExtractAction(e)
		if t, ok := ParseTimestamp(e.When); ok {
			groups.Add(e.EntityID, action, &t)
		} else {
			groups.Add(e.EntityID, action, nil)
		}
	}
	return groups
}
