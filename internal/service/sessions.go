package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"sessiondesk/internal/models"
	"sessiondesk/internal/schedule"
	"sessiondesk/internal/status"
	"sessiondesk/internal/therapist"
)

// SessionService derives booking statuses and live-session counts
type SessionService struct {
	repo            Repository
	referenceOffset int
	exclude         status.ExcludeFunc
	logger          *zap.Logger
}

// NewSessionService creates a session service. Windows are normalized into the
// zone referenceOffset minutes east of UTC; exclude filters live counts.
func NewSessionService(repo Repository, referenceOffset int, exclude status.ExcludeFunc, logger *zap.Logger) *SessionService {
	return &SessionService{
		repo:            repo,
		referenceOffset: referenceOffset,
		exclude:         exclude,
		logger:          logger,
	}
}

// Bookings returns every booking with its status as of now
func (s *SessionService) Bookings(ctx context.Context, now time.Time) (*models.BookingsResponse, error) {
	rows, err := s.repo.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	roster, err := s.repo.ListTherapists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}
	matcher := therapist.NewMatcher(roster)

	views := make([]models.BookingView, 0, len(rows))
	for _, row := range rows {
		views = append(views, s.view(row, matcher, now))
	}
	return &models.BookingsResponse{Bookings: views, Total: len(views)}, nil
}

// LiveCount counts bookings live at now, leaving out excluded session types
func (s *SessionService) LiveCount(ctx context.Context, now time.Time) (int, error) {
	rows, err := s.repo.ListSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]status.Session, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, status.Session{
			RawStatus:   row.BookingStatus,
			SessionType: row.SessionType,
			Window:      s.window(row.ID, row.InviteeTime),
			HasNotes:    row.HasNotes,
		})
	}
	return status.CountLive(sessions, s.exclude, now), nil
}

// Summary counts bookings per derived status as of now
func (s *SessionService) Summary(ctx context.Context, now time.Time) (*models.StatusSummary, error) {
	rows, err := s.repo.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	statuses := make([]status.Status, 0, len(rows))
	sessions := make([]status.Session, 0, len(rows))
	for _, row := range rows {
		w := s.window(row.ID, row.InviteeTime)
		statuses = append(statuses, status.Derive(row.BookingStatus, w, row.HasNotes, now))
		sessions = append(sessions, status.Session{
			RawStatus:   row.BookingStatus,
			SessionType: row.SessionType,
			Window:      w,
			HasNotes:    row.HasNotes,
		})
	}

	counts := make(map[string]int, len(status.All))
	for st, n := range status.Summarize(statuses) {
		counts[string(st)] = n
	}
	return &models.StatusSummary{
		Counts:    counts,
		Total:     len(rows),
		LiveCount: status.CountLive(sessions, s.exclude, now),
	}, nil
}

// Preview derives the status of a single booking that is not stored. An
// unparseable time string is reported in the response, not as an error.
func (s *SessionService) Preview(req models.PreviewRequest, now time.Time) models.PreviewResponse {
	var resp models.PreviewResponse
	var window *schedule.Window

	w, err := schedule.Parse(req.InviteeTime, s.referenceOffset)
	if err != nil {
		var parseErr *schedule.ParseError
		if errors.As(err, &parseErr) {
			resp.ParseError = parseErr.Reason
		} else {
			resp.ParseError = err.Error()
		}
	} else {
		window = &w
		resp.StartsAt = &w.Start
		resp.EndsAt = &w.End
		resp.DisplayTime = schedule.FormatIn(w, s.referenceOffset)
	}

	derived := status.Derive(req.Status, window, req.HasNotes, now)
	resp.Status = string(derived)
	resp.IsLive = derived == status.Live
	return resp
}

func (s *SessionService) view(row models.SessionRow, matcher *therapist.Matcher, now time.Time) models.BookingView {
	w := s.window(row.ID, row.InviteeTime)
	derived := status.Derive(row.BookingStatus, w, row.HasNotes, now)

	v := models.BookingView{
		ID:          row.ID,
		ClientName:  strings.TrimSpace(row.InviteeName),
		Email:       row.InviteeEmail,
		Phone:       row.InviteePhone,
		SessionType: row.SessionType,
		Therapist:   matcher.Match(row.TherapistName),
		RawStatus:   row.BookingStatus,
		Status:      string(derived),
		IsLive:      derived == status.Live,
		DisplayTime: row.InviteeTime,
		HasNotes:    row.HasNotes,
	}
	if v.Therapist == "" {
		v.Therapist = strings.TrimSpace(row.TherapistName)
	}
	if w != nil {
		v.StartsAt = &w.Start
		v.EndsAt = &w.End
		v.DisplayTime = schedule.FormatIn(*w, s.referenceOffset)
	}
	return v
}

// window parses a booking's time text; failures are logged and yield nil so the
// status falls back to what the stored fields alone can tell.
func (s *SessionService) window(bookingID, text string) *schedule.Window {
	w, err := schedule.Parse(text, s.referenceOffset)
	if err != nil {
		s.logger.Warn("unparseable booking time",
			zap.String("booking_id", bookingID),
			zap.Error(err),
		)
		return nil
	}
	return &w
}
