package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"sessiondesk/internal/models"
)

// BookingRepository reads booking, request and therapist rows
type BookingRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *sql.DB, logger *zap.Logger) *BookingRepository {
	return &BookingRepository{db: db, logger: logger}
}

const listSessionsQuery = `
SELECT b.id, b.invitee_name, b.invitee_email, b.invitee_phone, b.booking_status,
       b.booking_invitee_time, b.session_type, b.therapist_name,
       EXISTS (SELECT 1 FROM session_notes n WHERE n.booking_id = b.id) AS has_notes
FROM bookings b
ORDER BY b.created_at DESC, b.id`

// ListSessions returns every booking with a flag for attached session notes
func (r *BookingRepository) ListSessions(ctx context.Context) ([]models.SessionRow, error) {
	rows, err := r.db.QueryContext(ctx, listSessionsQuery)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.SessionRow
	for rows.Next() {
		var s models.SessionRow
		var email, phone sql.NullString
		if err := rows.Scan(&s.ID, &s.InviteeName, &email, &phone, &s.BookingStatus,
			&s.InviteeTime, &s.SessionType, &s.TherapistName, &s.HasNotes); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.InviteeEmail = nullableString(email)
		s.InviteePhone = nullableString(phone)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	r.logger.Debug("listed sessions", zap.Int("count", len(sessions)))
	return sessions, nil
}

const listContactsQuery = `
SELECT id, invitee_name, invitee_email, invitee_phone, booking_status, therapist_name, 'booking' AS source
FROM bookings
UNION ALL
SELECT id, invitee_name, invitee_email, invitee_phone, status, therapist_name, 'request' AS source
FROM booking_requests`

// ListContactRows returns the contact fields of bookings and pending booking requests
func (r *BookingRepository) ListContactRows(ctx context.Context) ([]models.ContactRow, error) {
	rows, err := r.db.QueryContext(ctx, listContactsQuery)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.ContactRow
	for rows.Next() {
		var c models.ContactRow
		var email, phone sql.NullString
		var source string
		if err := rows.Scan(&c.ID, &c.Name, &email, &phone, &c.Status, &c.TherapistName, &source); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.Email = nullableString(email)
		c.Phone = nullableString(phone)
		c.Source = models.ContactSource(source)
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}

	r.logger.Debug("listed contact rows", zap.Int("count", len(contacts)))
	return contacts, nil
}

// ListTherapists returns therapist display names in roster order
func (r *BookingRepository) ListTherapists(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM therapists ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query therapists: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan therapist: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
