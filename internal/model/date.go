package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the wire format for day-precision dates.
const DateFormat = "2006-01-02"

// Date is a day-precision timestamp. The time component is always midnight
// UTC so that two Dates for the same calendar day compare equal.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a date string in the DateFormat layout.
func ParseDate(str string) (Date, error) {
	t, err := time.Parse(DateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want format %q: %w", str, DateFormat, err)
	}
	return Date{t.UTC()}, nil
}

// AddDays returns the Date n days after d.
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// String formats the date in its standard wire format.
func (d Date) String() string {
	return d.Time.Format(DateFormat)
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(DateFormat))
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string. An empty string decodes to
// the zero Date, which callers treat as absent rather than as an error.
func (d *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}
	d.Time = parsed.Time
	return nil
}
