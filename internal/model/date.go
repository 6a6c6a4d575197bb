package model

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with no time component (YYYY-MM-DD).
type Date string

func NewDate(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", err
	}
	return Date(s), nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(string(d)))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (d Date) Valid() bool {
	_, ok := d.Time()
	return ok
}

// DaysFrom returns the whole days between today's calendar date and d (negative when past).
func (d Date) DaysFrom(today time.Time) (int, bool) {
	t, ok := d.Time()
	if !ok {
		return 0, false
	}
	y, m, dd := today.Date()
	base := time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(base).Hours() / 24), true
}

func (d Date) String() string { return string(d) }
