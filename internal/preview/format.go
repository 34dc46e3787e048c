package preview

import (
	"strconv"
	"strings"
	"time"
)

// PresentLabel is shown instead of an end date for ongoing positions.
const PresentLabel = "Present"

// FormatDate turns a "YYYY-MM" month into a short label such as "Mar 2023".
// An empty string yields an empty label; input that is not a year-month is returned as is.
func FormatDate(date string) string {
	if date == "" {
		return ""
	}
	parts := strings.SplitN(date, "-", 3)
	if len(parts) < 2 {
		return date
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return date
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return date
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// DateRange formats "start - end". When current is set the end label is "Present"
// whatever end holds.
func DateRange(start, end string, current bool) string {
	endLabel := FormatDate(end)
	if current {
		endLabel = PresentLabel
	}
	return FormatDate(start) + " - " + endLabel
}
