package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sessiondesk/internal/database"
)

func TestBookingRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := database.New(ctx, "sqlite3", ":memory:", zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	seed := []string{
		`INSERT INTO therapists (id, name, created_at) VALUES ('th-1', 'Ananya Rao', '2026-01-01 00:00:00')`,
		`INSERT INTO therapists (id, name, created_at) VALUES ('th-2', 'Rahul Mehta', '2026-01-02 00:00:00')`,
		`INSERT INTO bookings (id, invitee_name, invitee_email, invitee_phone, booking_status, booking_invitee_time, session_type, therapist_name, created_at)
		 VALUES ('bk-1', 'Jane Doe', 'jane@example.com', NULL, 'confirmed', 'Monday, Jan 5, 2026 at 1:00 PM - 1:50 PM (GMT+05:30)', 'Individual', 'Ananya', '2026-01-03 00:00:00')`,
		`INSERT INTO bookings (id, invitee_name, invitee_email, invitee_phone, booking_status, booking_invitee_time, session_type, therapist_name, created_at)
		 VALUES ('bk-2', 'John Roe', NULL, '9876543210', 'cancelled', '', 'Free Trial', 'Rahul', '2026-01-04 00:00:00')`,
		`INSERT INTO session_notes (id, booking_id, body) VALUES ('n-1', 'bk-1', 'went well')`,
		`INSERT INTO booking_requests (id, invitee_name, invitee_email, invitee_phone) VALUES ('rq-1', 'J. Doe', 'JANE@example.com', NULL)`,
	}
	for _, stmt := range seed {
		_, err := db.Conn.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}

	repo := NewBookingRepository(db.Conn, zap.NewNop())

	sessions, err := repo.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "bk-2", sessions[0].ID)
	assert.False(t, sessions[0].HasNotes)
	assert.Equal(t, "bk-1", sessions[1].ID)
	assert.True(t, sessions[1].HasNotes)

	contacts, err := repo.ListContactRows(ctx)
	require.NoError(t, err)
	assert.Len(t, contacts, 3)

	names, err := repo.ListTherapists(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ananya Rao", "Rahul Mehta"}, names)
}
