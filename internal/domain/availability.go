package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the wire format of booking dates.
const DateLayout = "2006-01-02"

type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var weekdays = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

func (d Weekday) Valid() bool {
	for _, w := range weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// WeekdayOf resolves a calendar date on the proleptic Gregorian calendar.
func WeekdayOf(date time.Time) Weekday {
	return weekdays[date.Weekday()]
}

var clockPattern = regexp.MustCompile(`^(0[0-9]|1[0-9]|2[0-3]):[0-5][0-9]$`)

// IsClock reports whether s is a zero-padded 24h "HH:MM" time.
func IsClock(s string) bool {
	return clockPattern.MatchString(s)
}

// ParseDate parses a "YYYY-MM-DD" date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type DayAvailability struct {
	Day   Weekday    `json:"day"`
	Slots []TimeSlot `json:"slots"`
}

// Availability is a tutor's recurring weekly schedule.
type Availability []DayAvailability

var (
	ErrNoAvailability = errors.New("at least one availability slot is required")
	ErrNoSlots        = errors.New("each availability day needs at least one slot")
)

func (a Availability) Validate() error {
	if len(a) == 0 {
		return ErrNoAvailability
	}

	seen := make(map[Weekday]bool, len(a))
	for _, day := range a {
		if !day.Day.Valid() {
			return fmt.Errorf("invalid weekday %q", day.Day)
		}
		if seen[day.Day] {
			return fmt.Errorf("weekday %s listed more than once", day.Day)
		}
		seen[day.Day] = true

		if len(day.Slots) == 0 {
			return fmt.Errorf("%s: %w", day.Day, ErrNoSlots)
		}
		for _, s := range day.Slots {
			if !IsClock(s.StartTime) || !IsClock(s.EndTime) {
				return fmt.Errorf("%s: slot %s-%s must use HH:MM", day.Day, s.StartTime, s.EndTime)
			}
			// zero-padded HH:MM orders correctly as strings
			if s.StartTime >= s.EndTime {
				return fmt.Errorf("%s: slot %s-%s ends before it starts", day.Day, s.StartTime, s.EndTime)
			}
		}
		for i := range day.Slots {
			for j := i + 1; j < len(day.Slots); j++ {
				a, b := day.Slots[i], day.Slots[j]
				if a.StartTime < b.EndTime && b.StartTime < a.EndTime {
					return fmt.Errorf("%s: slots %s-%s and %s-%s overlap", day.Day, a.StartTime, a.EndTime, b.StartTime, b.EndTime)
				}
			}
		}
	}
	return nil
}

// Day returns the entry for a weekday.
func (a Availability) Day(d Weekday) (DayAvailability, bool) {
	for _, day := range a {
		if day.Day == d {
			return day, true
		}
	}
	return DayAvailability{}, false
}

// HasSlot reports an exact match on both bounds. A window inside a declared
// slot does not match.
func (d DayAvailability) HasSlot(startTime, endTime string) bool {
	for _, s := range d.Slots {
		if s.StartTime == startTime && s.EndTime == endTime {
			return true
		}
	}
	return false
}
