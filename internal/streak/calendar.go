package streak

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var offsetPattern = regexp.MustCompile(`^(?:UTC|GMT)?([+-])(\d{1,2})(?::?(\d{2}))?$`)

// Calendar fixes the day boundary used for streak and daily-claim decisions
type Calendar struct {
	loc *time.Location
}

// NewCalendar returns a calendar anchored to loc. A nil loc means UTC.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc}
}

// ParseCalendar accepts an IANA zone ("America/New_York") or a fixed
// offset ("UTC+05:30", "-08:00", "GMT+2"). Empty means UTC.
func ParseCalendar(spec string) (Calendar, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, "UTC") {
		return NewCalendar(time.UTC), nil
	}

	if m := offsetPattern.FindStringSubmatch(strings.ToUpper(spec)); m != nil {
		hours, _ := strconv.Atoi(m[2])
		minutes := 0
		if m[3] != "" {
			minutes, _ = strconv.Atoi(m[3])
		}
		if hours > 14 || minutes >= 60 {
			return Calendar{}, fmt.Errorf(ErrMsgInvalidDayBoundary, spec)
		}
		offset := hours*3600 + minutes*60
		if m[1] == "-" {
			offset = -offset
		}
		return NewCalendar(time.FixedZone(spec, offset)), nil
	}

	loc, err := time.LoadLocation(spec)
	if err != nil {
		return Calendar{}, fmt.Errorf(ErrMsgInvalidDayBoundary+": %w", spec, err)
	}
	return NewCalendar(loc), nil
}

// Location returns the anchoring zone
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// StartOfDay returns midnight of t's day in the calendar zone
func (c Calendar) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(c.Location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.Location())
}

// SameDay reports whether a and b fall on the same calendar day
func (c Calendar) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(c.Location()).Date()
	by, bm, bd := b.In(c.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// IsYesterday reports whether then falls on the day before now
func (c Calendar) IsYesterday(then, now time.Time) bool {
	y, m, d := now.In(c.Location()).Date()
	prev := time.Date(y, m, d-1, 12, 0, 0, 0, c.Location())
	return c.SameDay(then, prev)
}

// Weekday returns t's weekday in the calendar zone
func (c Calendar) Weekday(t time.Time) time.Weekday {
	return t.In(c.Location()).Weekday()
}
