// Package date implements calendar days without time of day.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

const readFormat = "2006-1-2" // Permissive read format (allows single-digit month/day).

// Format is the ISO-8601 layout used to write dates.
const Format = "2006-01-02"

// Date is a calendar day in UTC.
//
// The zero value is a valid "no date" marker, see IsZero.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month and day.
//
// Out of range values are normalized the way time.Date does: New(2025, 1, 32) is February 1st.
func New(year int, month time.Month, day int) Date {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{y, m, d}
}

// Of returns the UTC calendar day of t.
func Of(t time.Time) Date { return New(t.UTC().Date()) }

// Today returns the current UTC calendar day.
func Today() Date { return Of(time.Now()) }

// Clock returns the current day. Stores take a Clock so tests can pin "today".
type Clock func() Date

// Fixed returns a Clock that always returns d.
func Fixed(d Date) Clock { return func() Date { return d } }

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) Year() int          { return d.y }
func (d Date) Month() time.Month  { return d.m }
func (d Date) Day() int           { return d.d }
func (d Date) IsZero() bool       { return d == Date{} }
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }
func (d Date) After(x Date) bool  { return d.time().After(x.time()) }

// Add returns the date days later (earlier if negative).
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

// String formats the date as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(Format)
}

// Parse parses a YYYY-MM-DD date. It is lenient and accepts "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON reads a date from a JSON string. The empty string decodes to the zero Date.
func (d *Date) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	if str == "" {
		*d = Date{}
		return nil
	}
	on, err := Parse(str)
	if err != nil {
		return err
	}
	*d = on
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

var _ json.Marshaler = Date{}
var _ json.Unmarshaler = (*Date)(nil)
