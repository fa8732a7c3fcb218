package pattern

import (
	"fmt"
	"strconv"
)

// ExtractAction maps an entry's device category and raw state value to
// a canonical action label. It never returns an absent value; entries
// that carry no usable information map to "unknown".
func ExtractAction(e LogEntry) string {
	state := stateString(e.State)

	switch e.Domain() {
	case "scene":
		return "activated"
	case "script":
		if state == "on" {
			return "executed"
		}
		return state
	case "light", "switch", "cover", "input_boolean":
		switch state {
		case "on":
			return "turn_on"
		case "off":
			return "turn_off"
		default:
			return state
		}
	case "climate":
		if state == "" {
			return "changed"
		}
		return "set_" + state
	case "input_button":
		return "pressed"
	case "input_number", "input_select", "input_datetime":
		return "changed"
	default:
		if state == "" {
			return "unknown"
		}
		return state
	}
}

// stateString renders a raw state value for action mapping. Falsy
// values (null, "", false, 0) are treated as absent; everything else
// is stringified.
func stateString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		if !s {
			return ""
		}
		return "true"
	case float64:
		// JSON numbers decode as float64.
		if s == 0 {
			return ""
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		if s == 0 {
			return ""
		}
		return strconv.Itoa(s)
	default:
		return fmt.Sprint(v)
	}
}
