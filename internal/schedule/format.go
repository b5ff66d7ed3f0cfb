package schedule

import (
	"fmt"
	"time"
)

var monthAbbrev = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Format renders w in its source offset using the same convention Parse reads,
// including the trailing (GMT±hh:mm) clause.
func Format(w Window) string {
	return FormatIn(w, w.SourceOffsetMinutes) + " (" + zoneName(w.SourceOffsetMinutes) + ")"
}

// FormatIn renders w as wall-clock time in the zone offsetMinutes east of UTC,
// without an offset clause. The date shown is the start date in that zone.
func FormatIn(w Window, offsetMinutes int) string {
	zone := time.FixedZone(zoneName(offsetMinutes), offsetMinutes*60)
	start := w.Start.In(zone)
	end := w.End.In(zone)
	return fmt.Sprintf("%s, %s %d, %d at %s - %s",
		start.Weekday(),
		monthAbbrev[start.Month()-1],
		start.Day(),
		start.Year(),
		clock12(start),
		clock12(end),
	)
}

// clock12 renders h:mm AM/PM; both noon and midnight render as 12.
func clock12(t time.Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "AM"
	if t.Hour() >= 12 {
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), meridiem)
}

func zoneName(offsetMinutes int) string {
	sign := '+'
	if offsetMinutes < 0 {
		sign = '-'
		offsetMinutes = -offsetMinutes
	}
	return fmt.Sprintf("GMT%c%02d:%02d", sign, offsetMinutes/60, offsetMinutes%60)
}
