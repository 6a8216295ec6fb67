// Package date holds the calendar-date wire type used by every HR payload.
package date

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Layout is the only accepted wire format.
const Layout = "2006-01-02"

// Date is a calendar day serialized as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// ParseError reports a date string that does not match Layout.
type ParseError struct {
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", e.Value)
}

func Parse(s string) (Date, error) {
	t, err := time.ParseInLocation(Layout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return Date{}, &ParseError{Value: s}
	}
	return Date{Time: t}, nil
}

// Of truncates t to its calendar day in UTC.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// FromPtr converts a nullable column value.
func FromPtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := Of(*t)
	return &d
}

// Ptr returns the underlying time for storage, nil for a nil date.
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func (d Date) String() string {
	return d.Format(Layout)
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &ParseError{Value: string(b)}
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
