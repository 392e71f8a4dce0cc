package core

import (
	"errors"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar day normalized to UTC midnight. Transactions carry no
// time-of-day component; every comparison in the engine is day-granular.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary timestamp to its UTC calendar day.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), int(u.Month()), u.Day())
}

// ParseDate reads the YYYY-MM-DD wire form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Format returns the YYYY-MM-DD wire form.
func (d Date) Format() string { return d.Time.Format(dateLayout) }

// Dates round-trip as YYYY-MM-DD in JSON as well as CSV.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Year() int  { return d.Time.Year() }
func (d Date) Month() int { return int(d.Time.Month()) }
func (d Date) Day() int   { return d.Time.Day() }

// In reports both endpoints of a range are inclusive.
func (d Date) In(start, end Date) bool {
	return !d.Time.Before(start.Time) && !d.Time.After(end.Time)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// MonthsCovered counts elapsed calendar months from start to end inclusive
// of both partial months, never less than 1. January..March is 3.
func MonthsCovered(start, end Date) int {
	if end.Time.Before(start.Time) {
		return 1
	}
	n := (end.Year()-start.Year())*12 + end.Month() - start.Month() + 1
	if n < 1 {
		return 1
	}
	return n
}

// MonthStart returns the first day of the date's month.
func (d Date) MonthStart() Date { return NewDate(d.Year(), d.Month(), 1) }

// MonthEnd returns the last day of the date's month.
func (d Date) MonthEnd() Date {
	return Date{Time: NewDate(d.Year(), d.Month()+1, 1).AddDate(0, 0, -1)}
}
