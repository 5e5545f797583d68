// Package calendar holds the date-range arithmetic used by every lifecycle.
//
// Ranges are half-open, [start, end): a check-out on day X and a check-in on day X are adjacent.
package calendar

import (
	"time"

	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
)

const Day = 24 * time.Hour

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share at least one instant.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Nights returns the number of started days between start and end.
// Wall-clock values are compared, so a daylight-saving switch never adds or removes a night.
func Nights(start, end time.Time) (int, error) {
	if !start.Before(end) {
		return 0, apperr.New(apperr.InvalidRange, "end %s must be after start %s",
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}

	d := wall(end).Sub(wall(start))

	n := int(d / Day)
	if d%Day != 0 {
		n++
	}

	return n, nil
}

// ValidateRange fails with InvalidRange when end <= start.
func ValidateRange(start, end time.Time) error {
	_, err := Nights(start, end)
	return err
}

func wall(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Clock is the source of "now".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the wall clock.
func System() Clock { return systemClock{} }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// Fixed returns a clock frozen at t.
func Fixed(t time.Time) Clock { return fixedClock{t: t} }

// Calendar binds a clock to the hotel's time zone.
type Calendar struct {
	clock Clock
	loc   *time.Location
}

func New(clock Clock, loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}

	return &Calendar{clock: clock, loc: loc}
}

// Now returns the current instant in the hotel's time zone.
func (c *Calendar) Now() time.Time {
	return c.clock.Now().In(c.loc)
}

// Today returns the start of the current day in the hotel's time zone.
func (c *Calendar) Today() time.Time {
	return c.Date(c.Now())
}

// Date truncates t to midnight of its own calendar day, expressed in the hotel's time zone.
func (c *Calendar) Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// IsPast reports whether date lies before the start of today.
func (c *Calendar) IsPast(date time.Time) bool {
	return date.Before(c.Today())
}

// Location returns the hotel's time zone.
func (c *Calendar) Location() *time.Location {
	return c.loc
}
