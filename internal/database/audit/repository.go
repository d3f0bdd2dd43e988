package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/lexibazaar/marketplace/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// GetEvents retrieves paginated audit events for a user, most recent first.
func (r *Repository) GetEvents(ctx context.Context, userID uint, limit, offset int) ([]entities.AuditEvent, int64, error) {
	var events []entities.AuditEvent
	var total int64

	query := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&entities.AuditEvent{}).Where("user_id = ?", userID)
	}
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := query().Order("created_at DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&events).Error
	return events, total, err
}

// GetEventsByType retrieves a user's most recent audit events of one type.
func (r *Repository) GetEventsByType(ctx context.Context, userID uint, eventType entities.AuditEventType, limit int) ([]entities.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []entities.AuditEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_type = ?", userID, eventType).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
