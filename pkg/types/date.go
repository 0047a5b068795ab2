package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the on-disk and command-line format of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar day in UTC. It marshals as "YYYY-MM-DD" and unmarshals
// from that layout or from a full RFC 3339 timestamp, which is how older
// documents stored transaction dates. The zero Date marshals as "".
//
// Older documents also hold dates as free text such as "20250321". Such a
// Date is zero as a time but keeps its text, which String and MarshalJSON
// return unchanged.
type Date struct {
	time.Time
	text string // unparsed stored text; empty for parsed dates
}

// NewDate returns the Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses s as YYYY-MM-DD or RFC 3339. An empty string yields the
// zero Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w %q (want %s)", ErrInvalidDate, s, DateLayout)
	}
	return DateOf(t.UTC()), nil
}

// DateFromText parses s like ParseDate, but keeps text it cannot parse
// instead of failing. Use it for stored dates, never for user input.
func DateFromText(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		return Date{text: s}
	}
	return d
}

// Unparsed returns the stored text of a date that could not be parsed, or
// "" for a parsed or zero Date.
func (d Date) Unparsed() string {
	return d.text
}

// String formats the date as YYYY-MM-DD, returns unparsed text as stored,
// or "" for the zero Date.
func (d Date) String() string {
	if d.text != "" {
		return d.text
	}
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler. null and "" decode to the
// zero Date; a string that is not a date is kept as unparsed text.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, data)
	}
	*d = DateFromText(s)
	return nil
}
