package timezone

import (
	"errors"
	"strings"
	"time"
)

const DefaultTimezone = "Europe/Bucharest"

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var ErrInvalidClock = errors.New("invalid clock time")

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func ParseDate(date string, loc *time.Location) (time.Time, error) {
	// accepts "2025-06-02" and "2025-06-02T..." like the booking forms send
	if i := strings.IndexByte(date, 'T'); i > 0 {
		date = date[:i]
	}
	return time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
}

func ParseDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return At(day, clock)
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into an offset from midnight.
func ParseClock(clock string) (time.Duration, error) {
	clock = strings.TrimSpace(clock)

	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, clock); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}

	// "24:00" closes a window at midnight
	if clock == "24:00" || clock == "24:00:00" {
		return 24 * time.Hour, nil
	}

	return 0, ErrInvalidClock
}

// At places a clock time on day's calendar date, in day's location.
func At(day time.Time, clock string) (time.Time, error) {
	offset, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	// wall-clock construction keeps DST days right; 24:00 rolls to the next day
	h := int(offset / time.Hour)
	m := int(offset % time.Hour / time.Minute)
	sec := int(offset % time.Minute / time.Second)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, sec, 0, day.Location()), nil
}
