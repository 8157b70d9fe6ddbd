package domain

import "time"

// TimeLayout is the fixed-width millisecond layout the original data set
// uses for every timestamp field. Fixed width keeps lexicographic order
// equal to chronological order, which the store's string ordering depends
// on.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders t as a UTC timestamp string in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
