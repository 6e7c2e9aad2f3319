package dto

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// LocalDate is a calendar date serialised as "2006-01-02".
type LocalDate time.Time

func NewLocalDate(t time.Time) LocalDate { return LocalDate(t) }

func (d LocalDate) Time() time.Time { return time.Time(d) }

func (d LocalDate) String() string { return time.Time(d).Format(DateLayout) }

func (d LocalDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *LocalDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	*d = LocalDate(t)
	return nil
}

// LocalDateTime is a zone-less timestamp serialised as "2006-01-02T15:04:05".
// Incoming values without an offset are read as UTC.
type LocalDateTime time.Time

var dateTimeInputLayouts = []string{time.RFC3339Nano, DateTimeLayout, "2006-01-02T15:04"}

func NewLocalDateTime(t time.Time) LocalDateTime { return LocalDateTime(t) }

func (d LocalDateTime) Time() time.Time { return time.Time(d) }

func (d LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).UTC().Format(DateTimeLayout) + `"`), nil
}

func (d *LocalDateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range dateTimeInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*d = LocalDateTime(t.UTC())
			return nil
		}
	}
	return fmt.Errorf("invalid date-time %q, expected YYYY-MM-DDTHH:MM:SS", s)
}
