// Package timefmt renders article timestamps for display.
package timefmt

import (
	"fmt"
	"slices"
	"time"

	"github.com/goodsign/monday"
)

const (
	inputLayout  = "2006-01-02T15:04:05Z"
	outputLayout = "02 Jan 2006 - 15:04"

	// NoDate is shown in place of a missing or unparseable timestamp.
	NoDate = "no date"

	DefaultLocale = monday.LocaleEnUS
)

// Formatter turns API timestamps into "day month year - HH:MM" using a locale's month names.
type Formatter struct {
	locale   monday.Locale
	location *time.Location
}

// New builds a Formatter. An empty locale means en_US and a nil location means UTC.
func New(locale string, location *time.Location) (*Formatter, error) {
	l := monday.Locale(locale)
	if l == "" {
		l = DefaultLocale
	}
	if !slices.Contains(monday.ListLocales(), l) {
		return nil, fmt.Errorf("unsupported locale %q", locale)
	}
	if location == nil {
		location = time.UTC
	}
	return &Formatter{locale: l, location: location}, nil
}

var defaultFormatter = &Formatter{locale: DefaultLocale, location: time.UTC}

// FormatTimestamp formats with the default locale in UTC.
func FormatTimestamp(ts *string) string {
	return defaultFormatter.Format(ts)
}

// Format never fails: nil or malformed input yields NoDate.
func (f *Formatter) Format(ts *string) string {
	if ts == nil || len(*ts) != len(inputLayout) {
		return NoDate
	}

	t, err := time.ParseInLocation(inputLayout, *ts, time.UTC)
	if err != nil {
		return NoDate
	}
	return monday.Format(t.In(f.location), outputLayout, f.locale)
}
