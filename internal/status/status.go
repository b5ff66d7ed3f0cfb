// Package status derives a booking's lifecycle status from its stored status,
// its session window and whether session notes exist.
package status

import (
	"strings"
	"time"

	"sessiondesk/internal/schedule"
)

// Status is a derived booking lifecycle status. It is never persisted.
type Status string

const (
	Scheduled    Status = "scheduled"
	Live         Status = "live"
	Completed    Status = "completed"
	PendingNotes Status = "pending_notes"
	Cancelled    Status = "cancelled"
	NoShow       Status = "no_show"
)

// All lists every status in display order.
var All = []Status{Scheduled, Live, Completed, PendingNotes, Cancelled, NoShow}

// Derive computes the status of a booking at now. The first matching rule wins:
// cancelled, no-show, live window, notes present, window ended, scheduled.
// A nil window means the time text could not be parsed; rules that need it are skipped.
func Derive(rawStatus string, window *schedule.Window, hasNotes bool, now time.Time) Status {
	switch normalize(rawStatus) {
	case "cancelled", "canceled":
		return Cancelled
	case "no_show", "no show":
		return NoShow
	}
	if IsLive(window, now) {
		return Live
	}
	if hasNotes {
		return Completed
	}
	if window != nil && window.Ended(now) {
		return PendingNotes
	}
	return Scheduled
}

// IsLive reports whether now falls inside the window, ends inclusive.
func IsLive(window *schedule.Window, now time.Time) bool {
	return window != nil && window.Contains(now)
}

// Voided reports whether a stored status marks the booking as not taking place.
func Voided(rawStatus string) bool {
	switch normalize(rawStatus) {
	case "cancelled", "canceled", "no_show", "no show":
		return true
	}
	return false
}

func normalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

// Session is the minimal booking shape needed to count live sessions.
type Session struct {
	RawStatus   string
	SessionType string
	Window      *schedule.Window
	HasNotes    bool
}

// ExcludeFunc reports whether a session type is left out of live counts.
type ExcludeFunc func(sessionType string) bool

// ExcludeTypes returns an ExcludeFunc matching session types that contain any
// of the given labels, case-insensitively. Empty labels are ignored.
func ExcludeTypes(labels ...string) ExcludeFunc {
	var needles []string
	for _, label := range labels {
		if l := strings.ToLower(strings.TrimSpace(label)); l != "" {
			needles = append(needles, l)
		}
	}
	return func(sessionType string) bool {
		st := strings.ToLower(sessionType)
		for _, n := range needles {
			if strings.Contains(st, n) {
				return true
			}
		}
		return false
	}
}

// CountLive counts sessions whose derived status is Live at now, skipping any
// session the exclude predicate matches. A nil exclude counts everything.
func CountLive(sessions []Session, exclude ExcludeFunc, now time.Time) int {
	count := 0
	for _, s := range sessions {
		if exclude != nil && exclude(s.SessionType) {
			continue
		}
		if Derive(s.RawStatus, s.Window, s.HasNotes, now) == Live {
			count++
		}
	}
	return count
}

// Summarize counts statuses. Every known status is present in the result.
func Summarize(statuses []Status) map[Status]int {
	counts := make(map[Status]int, len(All))
	for _, s := range All {
		counts[s] = 0
	}
	for _, s := range statuses {
		counts[s]++
	}
	return counts
}
