package audit

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lexibazaar/marketplace/internal/database/audit"
	"github.com/lexibazaar/marketplace/internal/entities"
)

// Service records audit events. Writes are synchronous but never fail the
// caller: a storage error is logged and dropped.
type Service struct {
	repo   *audit.Repository
	logger *zap.Logger
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Log fills in client details from ctx and stores the event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) {
	if client, ok := ClientFromContext(ctx); ok {
		if event.IPAddress == "" {
			event.IPAddress = client.IP
		}
		if event.UserAgent == "" {
			event.UserAgent = truncate(client.UserAgent, 500)
		}
	}
	if event.Status == "" {
		event.Status = entities.AuditStatusSuccess
	}

	if err := s.repo.LogEvent(ctx, event); err != nil {
		s.logger.Warn("failed to record audit event",
			zap.String("event_type", string(event.EventType)),
			zap.Uint("user_id", event.UserID),
			zap.Error(err),
		)
	}
}

// LogAuth records a registration or login attempt.
func (s *Service) LogAuth(ctx context.Context, userID uint, eventType entities.AuditEventType, description string) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   eventType,
		Description: truncate(description, 500),
		EntityType:  "user",
		Status:      entities.AuditStatusSuccess,
	}
	if eventType == entities.AuditEventLoginFailed {
		event.Status = entities.AuditStatusFailed
	}
	if userID != 0 {
		event.EntityID = &userID
	}
	s.Log(ctx, event)
}

// LogPurchase records a completed purchase.
func (s *Service) LogPurchase(ctx context.Context, purchase *entities.Purchase, dictionaryName string) {
	dictionaryID := purchase.DictionaryID
	s.Log(ctx, &entities.AuditEvent{
		UserID:    purchase.UserID,
		EventType: entities.AuditEventPurchase,
		Description: truncate(fmt.Sprintf("Purchased %q (%s access)",
			dictionaryName, purchase.AccessType), 500),
		EntityType: "dictionary",
		EntityID:   &dictionaryID,
	})
}

// LogDictionaryDelete records the removal of a dictionary and everything under it.
func (s *Service) LogDictionaryDelete(ctx context.Context, userID uint, dict *entities.Dictionary) {
	dictionaryID := dict.ID
	s.Log(ctx, &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventDictionaryDelete,
		Description: truncate("Deleted dictionary: "+dict.Name, 500),
		EntityType:  "dictionary",
		EntityID:    &dictionaryID,
	})
}

// Recent returns the user's latest events.
func (s *Service) Recent(ctx context.Context, userID uint, limit int) ([]entities.AuditEvent, error) {
	events, _, err := s.repo.GetEvents(ctx, userID, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("load audit events: %w", err)
	}
	return events, nil
}

// RecentByType returns the user's latest events of one type.
func (s *Service) RecentByType(ctx context.Context, userID uint, eventType entities.AuditEventType, limit int) ([]entities.AuditEvent, error) {
	events, err := s.repo.GetEventsByType(ctx, userID, eventType, limit)
	if err != nil {
		return nil, fmt.Errorf("load audit events: %w", err)
	}
	return events, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
