package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// suggestedTimeStep is the rounding granularity for suggested trigger
// times within a window.
const suggestedTimeStep = 15

// TimeWindow floors an instant to its "HH:MM" bucket label. The minute
// component is floored to the nearest multiple of windowMinutes; the
// instant's own timezone is used as-is.
func TimeWindow(t time.Time, windowMinutes int) string {
	if windowMinutes <= 0 {
		windowMinutes = DefaultWindowMinutes
	}
	bucket := (t.Minute() / windowMinutes) * windowMinutes
	return fmt.Sprintf("%02d:%02d", t.Hour(), bucket)
}

// FormatTimeRange renders the hour spread of a group of occurrences.
// A single hour renders as "HH:00", a spread as "minHH:00-maxHH:59",
// and an empty list as "unknown".
func FormatTimeRange(hours []int) string {
	if len(hours) == 0 {
		return "unknown"
	}

	minHour, maxHour := hours[0], hours[0]
	for _, h := range hours[1:] {
		if h < minHour {
			minHour = h
		}
		if h > maxHour {
			maxHour = h
		}
	}

	if minHour == maxHour {
		return fmt.Sprintf("%02d:00", minHour)
	}
	return fmt.Sprintf("%02d:00-%02d:59", minHour, maxHour)
}

// WindowBounds computes the inclusive "HH:MM" start and end of a
// window label. The end is start + windowMinutes - 1 minute, wrapping
// the hour forward on minute overflow and modulo 24 at midnight. A
// malformed label degrades to "00:00"/"00:29".
func WindowBounds(window string, windowMinutes int) (string, string) {
	hour, minute, ok := parseClock(window)
	if !ok {
		return "00:00", "00:29"
	}

	endMinute := minute + windowMinutes - 1
	endHour := hour
	if endMinute >= 60 {
		endMinute -= 60
		endHour = (hour + 1) % 24
	}

	start := fmt.Sprintf("%02d:%02d", hour, minute)
	end := fmt.Sprintf("%02d:%02d", endHour, endMinute)
	return start, end
}

// SuggestedTime picks the trigger time for a window label by flooring
// its minute component to the nearest 15-minute boundary. A malformed
// label degrades to "00:00".
func SuggestedTime(window string) string {
	hour, minute, ok := parseClock(window)
	if !ok {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", hour, (minute/suggestedTimeStep)*suggestedTimeStep)
}

func parseClock(s string) (hour, minute int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return hour, minute, true
}
