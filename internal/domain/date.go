package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

const DateLayout = "2006-01-02"

// Date is a time-zone-naive calendar date.
//
// JSON decoding accepts both "2024-05-10" and full timestamps such as
// "2024-05-10T00:00:00.000Z"; any time-of-day part is dropped.
type Date struct {
	civil.Date
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{civil.Date{Year: year, Month: month, Day: day}}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	return Date{civil.DateOf(t)}
}

func ParseDate(s string) (Date, error) {
	if len(s) < len(DateLayout) {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	d, err := civil.ParseDate(s[:len(DateLayout)])
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	if !d.IsValid() {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return Date{d}, nil
}

func (d Date) IsZero() bool {
	return d.Date == civil.Date{}
}

func (d Date) Before(o Date) bool { return d.Date.Before(o.Date) }

func (d Date) After(o Date) bool { return d.Date.After(o.Date) }

func (d Date) AddDays(n int) Date { return Date{d.Date.AddDays(n)} }

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time { return d.In(time.UTC) }

func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
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
