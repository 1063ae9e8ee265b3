package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseISODuration converts a player duration in PTxHxMxS form (each
// component optional) into H:MM:SS, or M:SS when no hours are present.
// An empty input normalizes to the empty string.
func ParseISODuration(iso string) string {
	if iso == "" {
		return ""
	}

	rest := strings.TrimPrefix(iso, "PT")
	hours, minutes, seconds := 0, 0, 0

	if i := strings.Index(rest, "H"); i >= 0 {
		hours, _ = strconv.Atoi(rest[:i])
		rest = rest[i+1:]
	}
	if i := strings.Index(rest, "M"); i >= 0 {
		minutes, _ = strconv.Atoi(rest[:i])
		rest = rest[i+1:]
	}
	if i := strings.Index(rest, "S"); i >= 0 {
		seconds, _ = strconv.Atoi(rest[:i])
	}

	return FormatDuration(hours*3600 + minutes*60 + seconds)
}

// FormatDuration renders a second count as H:MM:SS, or M:SS when under
// an hour.
func FormatDuration(totalSeconds int) string {
	hours := totalSeconds / 3600
	minutes := totalSeconds % 3600 / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// DurationSeconds parses an H:MM:SS or M:SS clock string back into
// seconds. Returns false for the empty string or anything unparsable, so
// callers can treat the length class as unknown.
func DurationSeconds(clock string) (int, bool) {
	if clock == "" {
		return 0, false
	}

	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + n
	}
	return total, true
}
