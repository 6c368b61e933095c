package model

import (
	"fmt"
	"time"
)

// dateLayout is the wire format for dates (day granularity)
const dateLayout = "2006-01-02"

// Date is a calendar date with day granularity.
// It marshals to/from ISO "YYYY-MM-DD" strings, which is how dates
// appear in the persisted players and games records.
type Date struct {
	t time.Time
}

// NewDate creates a Date for the given year, month, and day
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses an ISO "YYYY-MM-DD" string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

// String returns the ISO "YYYY-MM-DD" representation
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// Time returns the date as a time.Time at midnight UTC
func (d Date) Time() time.Time {
	return d.t
}

// IsZero reports whether the date is the zero value
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before reports whether d is earlier than other
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is later than other
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal reports whether d and other are the same calendar date
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidDate, s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
