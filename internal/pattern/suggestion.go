package pattern

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Suggestion is the user-facing automation proposal built from a
// candidate. The ID is a pure function of (entity id, action, dominant
// window) and is the only identity that survives across analysis
// runs; the caller uses it to track dismissal state.
type Suggestion struct {
	ID               string  `json:"id"`
	EntityID         string  `json:"entity_id"`
	Action           string  `json:"action"`
	SuggestedTime    string  `json:"suggested_time"`
	TimeWindowStart  string  `json:"time_window_start"`
	TimeWindowEnd    string  `json:"time_window_end"`
	ConsistencyScore float64 `json:"consistency_score"`
	OccurrenceCount  int     `json:"occurrence_count"`
	LastOccurrence   string  `json:"last_occurrence"`
	FriendlyName     string  `json:"friendly_name,omitempty"`
}

// SuggestionID derives the stable dedup identifier for an
// (entity id, action, window) triple: the three parts joined with "_"
// and every "." and ":" replaced by "_". Distinct triples yield
// distinct identifiers.
func SuggestionID(entityID, action, window string) string {
	id := entityID + "_" + action + "_" + window
	id = strings.ReplaceAll(id, ".", "_")
	return strings.ReplaceAll(id, ":", "_")
}

// BuildSuggestion turns one ranked candidate into a suggestion record.
func BuildSuggestion(c Candidate, windowMinutes int) Suggestion {
	start, end := WindowBounds(c.Window, windowMinutes)

	lastOccurrence := ""
	if !c.LastSeen.IsZero() {
		lastOccurrence = c.LastSeen.Format(time.RFC3339)
	}

	return Suggestion{
		ID:               SuggestionID(c.EntityID, c.Action, c.Window),
		EntityID:         c.EntityID,
		Action:           c.Action,
		SuggestedTime:    SuggestedTime(c.Window),
		TimeWindowStart:  start,
		TimeWindowEnd:    end,
		ConsistencyScore: c.Consistency,
		OccurrenceCount:  c.TotalOccurrences,
		LastOccurrence:   lastOccurrence,
	}
}

// BuildSuggestions converts an ordered candidate list, preserving its
// ranking.
func BuildSuggestions(candidates []Candidate, windowMinutes int) []Suggestion {
	suggestions := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		suggestions = append(suggestions, BuildSuggestion(c, windowMinutes))
	}
	return suggestions
}

// actionDisplay maps canonical action labels to display phrases.
var actionDisplay = map[string]string{
	"turn_on":   "Turn on",
	"turn_off":  "Turn off",
	"activated": "Activate",
	"executed":  "Execute",
	"pressed":   "Press",
	"changed":   "Change",
}

// FormatAction renders an action label as a human phrase. "set_X"
// renders as "Set to X"; unknown labels get underscores replaced and
// the first letter capitalized.
func FormatAction(action string) string {
	if display, ok := actionDisplay[action]; ok {
		return display
	}
	if v, ok := strings.CutPrefix(action, "set_"); ok {
		return "Set to " + v
	}

	words := strings.ReplaceAll(action, "_", " ")
	if words == "" {
		return words
	}
	return strings.ToUpper(words[:1]) + strings.ToLower(words[1:])
}

// DisplayName returns the friendly name when known, else the entity
// id.
func (s Suggestion) DisplayName() string {
	if s.FriendlyName != "" {
		return s.FriendlyName
	}
	return s.EntityID
}

// Description renders the one-line human summary of the suggestion.
func (s Suggestion) Description() string {
	return fmt.Sprintf("%s %s around %s (%d%% consistent, seen %d times)",
		FormatAction(s.Action),
		s.DisplayName(),
		s.SuggestedTime,
		int(s.ConsistencyScore*100),
		s.OccurrenceCount,
	)
}

// MarshalJSON includes the derived description alongside the stored
// fields. Unmarshalling ignores it, so a marshal/unmarshal round trip
// reproduces the original value.
func (s Suggestion) MarshalJSON() ([]byte, error) {
	type plain Suggestion
	return json.Marshal(struct {
		plain
		Description string `json:"description"`
	}{plain(s), s.Description()})
}
