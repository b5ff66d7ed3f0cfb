// Package schedule parses and formats the human-readable session time strings
// produced by the external scheduling system, e.g.
//
//	Wednesday, Jan 21, 2026 at 9:30 PM - 10:20 PM (GMT-06:00)
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// ReferenceOffsetMinutes is the offset all windows are normalized into (IST).
	ReferenceOffsetMinutes = 330

	// SessionLength is the end-time fallback when a string carries only a start time.
	SessionLength = 50 * time.Minute
)

var windowPattern = regexp.MustCompile(
	`^\s*([A-Za-z]+),\s*([A-Za-z]+)\.?\s+(\d{1,2}),\s*(\d{4})\s+at\s+` +
		`(\d{1,2}):(\d{2})\s*([AaPp][Mm])` +
		`(?:\s*[-–]\s*(\d{1,2}):(\d{2})\s*([AaPp][Mm]))?` +
		`\s*\(\s*GMT\s*([+-])(\d{1,2}):(\d{2})\s*\)\s*$`,
)

var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// Window is a parsed session time range.
type Window struct {
	Start time.Time
	End   time.Time
	// SourceOffsetMinutes is the signed offset east of UTC embedded in the source text.
	SourceOffsetMinutes int
}

// ParseError reports a time string that cannot be turned into a Window.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse booking window %q: %s", e.Input, e.Reason)
}

// Contains reports whether now falls inside [Start, End], both ends inclusive.
func (w Window) Contains(now time.Time) bool {
	return !now.Before(w.Start) && !now.After(w.End)
}

// Ended reports whether now is strictly after the end of the window.
func (w Window) Ended(now time.Time) bool {
	return now.After(w.End)
}

// ParseIST parses text into a window expressed in the reference offset.
func ParseIST(text string) (Window, error) {
	return Parse(text, ReferenceOffsetMinutes)
}

// Parse reads a session time string and returns the window with Start and End
// expressed in the zone referenceOffsetMinutes east of UTC.
func Parse(text string, referenceOffsetMinutes int) (Window, error) {
	m := windowPattern.FindStringSubmatch(text)
	if m == nil {
		return Window{}, &ParseError{Input: text, Reason: "does not match expected format"}
	}

	month, ok := months[strings.ToLower(m[2])]
	if !ok {
		return Window{}, &ParseError{Input: text, Reason: fmt.Sprintf("unknown month %q", m[2])}
	}
	day, _ := strconv.Atoi(m[3])
	year, _ := strconv.Atoi(m[4])

	startHour, startMinute, err := clock24(m[5], m[6], m[7])
	if err != nil {
		return Window{}, &ParseError{Input: text, Reason: "start time: " + err.Error()}
	}

	offset := offsetMinutes(m[11], m[12], m[13])
	source := time.FixedZone(zoneName(offset), offset*60)

	start := time.Date(year, month, day, startHour, startMinute, 0, 0, source)
	if start.Day() != day || start.Month() != month {
		return Window{}, &ParseError{Input: text, Reason: fmt.Sprintf("day %d out of range for %s %d", day, month, year)}
	}

	end := start.Add(SessionLength)
	if m[8] != "" {
		endHour, endMinute, err := clock24(m[8], m[9], m[10])
		if err != nil {
			return Window{}, &ParseError{Input: text, Reason: "end time: " + err.Error()}
		}
		end = time.Date(year, month, day, endHour, endMinute, 0, 0, source)
		if end.Equal(start) {
			return Window{}, &ParseError{Input: text, Reason: "end time equals start time"}
		}
		// A range such as 11:30 PM - 12:20 AM finishes on the following day.
		if end.Before(start) {
			end = end.AddDate(0, 0, 1)
		}
	}

	reference := time.FixedZone(zoneName(referenceOffsetMinutes), referenceOffsetMinutes*60)
	return Window{
		Start:               start.In(reference),
		End:                 end.In(reference),
		SourceOffsetMinutes: offset,
	}, nil
}

// clock24 converts an h:mm AM/PM triple to a 24-hour hour and minute.
func clock24(hourText, minuteText, meridiem string) (int, int, error) {
	hour, _ := strconv.Atoi(hourText)
	minute, _ := strconv.Atoi(minuteText)
	if hour < 1 || hour > 12 {
		return 0, 0, fmt.Errorf("hour %d out of range", hour)
	}
	if minute > 59 {
		return 0, 0, fmt.Errorf("minute %d out of range", minute)
	}

	switch strings.ToUpper(meridiem) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	return hour, minute, nil
}

func offsetMinutes(sign, hours, minutes string) int {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	total := h*60 + m
	if sign == "-" {
		return -total
	}
	return total
}
