package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessiondesk/internal/schedule"
)

func mustWindow(t *testing.T, text string) *schedule.Window {
	t.Helper()
	w, err := schedule.ParseIST(text)
	require.NoError(t, err)
	return &w
}

func TestDerive(t *testing.T) {
	w := mustWindow(t, "Monday, Jan 5, 2026 at 1:00 PM - 1:50 PM (GMT+05:30)")
	before := w.Start.Add(-time.Hour)
	during := w.Start.Add(10 * time.Minute)
	after := w.End.Add(time.Hour)

	cases := []struct {
		name     string
		raw      string
		window   *schedule.Window
		hasNotes bool
		now      time.Time
		want     Status
	}{
		{name: "cancelled beats live", raw: "cancelled", window: w, now: during, want: Cancelled},
		{name: "american spelling", raw: "  Canceled ", window: w, now: during, want: Cancelled},
		{name: "no show underscore", raw: "NO_SHOW", window: w, now: after, want: NoShow},
		{name: "no show space", raw: "No  Show", window: w, hasNotes: true, now: after, want: NoShow},
		{name: "live", raw: "confirmed", window: w, now: during, want: Live},
		{name: "live beats notes", raw: "confirmed", window: w, hasNotes: true, now: during, want: Live},
		{name: "notes after end", raw: "confirmed", window: w, hasNotes: true, now: after, want: Completed},
		{name: "notes before start", raw: "confirmed", window: w, hasNotes: true, now: before, want: Completed},
		{name: "ended without notes", raw: "confirmed", window: w, now: after, want: PendingNotes},
		{name: "upcoming", raw: "confirmed", window: w, now: before, want: Scheduled},
		{name: "unknown window", raw: "confirmed", window: nil, now: during, want: Scheduled},
		{name: "unknown window with notes", raw: "confirmed", window: nil, hasNotes: true, now: during, want: Completed},
		{name: "unknown window cancelled", raw: "Cancelled", window: nil, now: during, want: Cancelled},
		{name: "empty raw status", raw: "", window: w, now: after, want: PendingNotes},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Derive(tc.raw, tc.window, tc.hasNotes, tc.now))
		})
	}
}

func TestDerive_EndBoundary(t *testing.T) {
	w := mustWindow(t, "Monday, Jan 5, 2026 at 1:00 PM - 1:50 PM (GMT+05:30)")

	assert.Equal(t, Live, Derive("confirmed", w, false, w.Start))
	assert.Equal(t, Live, Derive("confirmed", w, false, w.End))
	assert.Equal(t, PendingNotes, Derive("confirmed", w, false, w.End.Add(time.Second)))
	assert.Equal(t, Completed, Derive("confirmed", w, true, w.End.Add(time.Second)))
}

func TestCountLive_ExcludesByPredicate(t *testing.T) {
	w := mustWindow(t, "Monday, Jan 5, 2026 at 1:00 PM - 1:50 PM (GMT+05:30)")
	other := mustWindow(t, "Monday, Jan 5, 2026 at 3:00 PM - 3:50 PM (GMT+05:30)")
	now := w.Start.Add(5 * time.Minute)

	sessions := []Session{
		{RawStatus: "confirmed", SessionType: "Individual Therapy", Window: w},
		{RawStatus: "confirmed", SessionType: "Free Trial Session", Window: w},
		{RawStatus: "cancelled", SessionType: "Couples Therapy", Window: w},
		{RawStatus: "confirmed", SessionType: "Individual Therapy", Window: other},
		{RawStatus: "confirmed", SessionType: "Individual Therapy", Window: nil},
		{RawStatus: "confirmed", SessionType: "Couples Therapy", Window: w, HasNotes: true},
	}

	assert.Equal(t, 3, CountLive(sessions, nil, now))
	assert.Equal(t, 2, CountLive(sessions, ExcludeTypes("free"), now))
	assert.Equal(t, 1, CountLive(sessions, ExcludeTypes("FREE", " couples ", ""), now))
}

func TestExcludeTypes_NoLabelsMatchesNothing(t *testing.T) {
	exclude := ExcludeTypes("", "  ")
	assert.False(t, exclude("Free Trial"))
	assert.False(t, exclude(""))
}

func TestSummarize(t *testing.T) {
	counts := Summarize([]Status{Live, Live, Cancelled, Scheduled})

	assert.Len(t, counts, len(All))
	assert.Equal(t, 2, counts[Live])
	assert.Equal(t, 1, counts[Cancelled])
	assert.Equal(t, 1, counts[Scheduled])
	assert.Equal(t, 0, counts[NoShow])
}

func TestVoided(t *testing.T) {
	for _, raw := range []string{"cancelled", "Canceled", " NO_SHOW", "no show"} {
		assert.True(t, Voided(raw), raw)
	}
	for _, raw := range []string{"", "confirmed", "pending", "no-show-ish"} {
		assert.False(t, Voided(raw), raw)
	}
}
