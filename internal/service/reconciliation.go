package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"sessiondesk/internal/cache"
	"sessiondesk/internal/identity"
	"sessiondesk/internal/models"
	"sessiondesk/internal/status"
	"sessiondesk/internal/therapist"
)

const clientsCacheKey = "clients"

// Repository is the row source the services read from
type Repository interface {
	ListSessions(ctx context.Context) ([]models.SessionRow, error)
	ListContactRows(ctx context.Context) ([]models.ContactRow, error)
	ListTherapists(ctx context.Context) ([]string, error)
}

// Cache stores computed responses; a nil Cache disables caching
type Cache interface {
	GetJSON(ctx context.Context, name string, target any) error
	SetJSON(ctx context.Context, name string, value any) error
}

// ReconciliationService collapses booking and request rows into unique clients
type ReconciliationService struct {
	repo     Repository
	resolver *identity.Resolver
	cache    Cache
	logger   *zap.Logger
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(repo Repository, resolver *identity.Resolver, cache Cache, logger *zap.Logger) *ReconciliationService {
	return &ReconciliationService{
		repo:     repo,
		resolver: resolver,
		cache:    cache,
		logger:   logger,
	}
}

// Clients resolves every contact row into client summaries, busiest clients first
func (s *ReconciliationService) Clients(ctx context.Context) (*models.ClientsResponse, error) {
	if s.cache != nil {
		var cached models.ClientsResponse
		err := s.cache.GetJSON(ctx, clientsCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("clients cache read failed", zap.Error(err))
		}
	}

	rows, err := s.repo.ListContactRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact rows: %w", err)
	}
	roster, err := s.repo.ListTherapists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}
	matcher := therapist.NewMatcher(roster)

	records := make([]models.RawContactRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toRecord(row, matcher))
	}

	identities := s.resolver.Resolve(records)
	clients := make([]models.ClientSummary, 0, len(identities))
	for _, id := range identities {
		clients = append(clients, summarize(id))
	}
	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].SessionCount > clients[j].SessionCount
	})

	response := &models.ClientsResponse{Clients: clients, Total: len(clients)}
	s.logger.Debug("resolved clients",
		zap.Int("rows", len(rows)),
		zap.Int("clients", len(clients)),
	)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, clientsCacheKey, response); err != nil {
			s.logger.Warn("clients cache write failed", zap.Error(err))
		}
	}
	return response, nil
}

// toRecord converts a row into a contact record. A booking counts as one
// session unless it was cancelled or missed; requests count as none.
func toRecord(row models.ContactRow, matcher *therapist.Matcher) models.RawContactRecord {
	weight := 0
	if row.Source == models.SourceBooking && !status.Voided(row.Status) {
		weight = 1
	}

	therapistName := matcher.Match(row.TherapistName)
	if therapistName == "" {
		therapistName = strings.TrimSpace(row.TherapistName)
	}

	return models.RawContactRecord{
		DisplayName:   strings.TrimSpace(row.Name),
		Email:         row.Email,
		Phone:         row.Phone,
		SourceWeight:  weight,
		RecordID:      row.ID,
		Source:        row.Source,
		TherapistName: therapistName,
	}
}

// summarize shapes an identity for display. The therapist shown is the one
// seen most often among the client's records, ties going to the first seen.
func summarize(id models.ClientIdentity) models.ClientSummary {
	summary := models.ClientSummary{
		Key:          id.Key,
		Email:        id.CanonicalEmail,
		Phone:        id.CanonicalPhone,
		SessionCount: id.TotalWeight,
		RecordCount:  len(id.Members),
		BookingIDs:   []string{},
	}

	counts := make(map[string]int)
	for _, m := range id.Members {
		if summary.Name == "" && m.DisplayName != "" {
			summary.Name = m.DisplayName
		}
		if m.Source == models.SourceBooking && m.RecordID != "" {
			summary.BookingIDs = append(summary.BookingIDs, m.RecordID)
		}
		if m.TherapistName != "" {
			counts[m.TherapistName]++
		}
	}

	best := 0
	for _, m := range id.Members {
		if n := counts[m.TherapistName]; m.TherapistName != "" && n > best {
			best = n
			summary.Therapist = m.TherapistName
		}
	}
	return summary
}
