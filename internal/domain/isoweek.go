package domain

import "time"

// WeekOf returns the ISO-8601 (year, week) of t: weeks run Monday-Sunday
// and week 1 is the week containing the year's first Thursday. The input
// is normalized to UTC midnight first so two independently computed week
// numbers for the same instant always agree, regardless of the zone the
// instant was carried in. Callers must keep the (year, week) pair
// together: late December can fall into week 1 of the next ISO year and
// early January into week 52/53 of the previous one.
func WeekOf(t time.Time) (year, week int) {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).ISOWeek()
}
