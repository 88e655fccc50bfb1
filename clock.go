package busevents

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// clockPattern is the surface shape a timetable time string must have to
// pass validation. The parser itself is slightly more lenient ("7:5"
// parses but is flagged), so dirty feeds get reported without losing the
// trips they can still drive.
var clockPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// ParseClock converts an "H:MM" or "HH:MM" wall-clock string to seconds
// since midnight. Hours run 0-23, minutes 0-59.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("clock %q: want H:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("clock %q: bad hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("clock %q: bad minute", s)
	}
	if h < 0 || h > 23 {
		return 0, fmt.Errorf("clock %q: hour out of range", s)
	}
	if m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q: minute out of range", s)
	}
	return h*3600 + m*60, nil
}

// FormatClock renders seconds since midnight as HH:MM:SS wall clock.
// Values at or past 24h keep their within-day clock and gain a "+{n}d"
// suffix; negatives clamp to "00:00:00".
func FormatClock(seconds int) string {
	if seconds < 0 {
		return "00:00:00"
	}
	days := seconds / 86400
	rem := seconds % 86400
	out := fmt.Sprintf("%02d:%02d:%02d", rem/3600, (rem%3600)/60, rem%60)
	if days > 0 {
		out += fmt.Sprintf("+%dd", days)
	}
	return out
}

func iso8601Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
