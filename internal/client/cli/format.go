package cli

import (
	"fmt"
	"time"
)

// FormatSize renders a byte count the way the dashboard does: 1024-based
// units with one decimal from KB up.
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

// FormatDate renders an upload timestamp relative to now: "Today",
// "Yesterday", "N days ago" within a week, otherwise the calendar date.
// Unparseable input is shown as-is.
func FormatDate(value string, now time.Time) string {
	t := parseDate(value)
	if t.IsZero() {
		return value
	}

	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("Jan 2, 2006")
	}
}

func parseDate(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
