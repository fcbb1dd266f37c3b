package utils

import "time"

const dateLayout = "2006-01-02"

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// DaysBetween returns the whole number of days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
