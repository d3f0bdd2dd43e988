package entities

import "time"

type AuditEventType string

const (
	AuditEventRegister         AuditEventType = "register"
	AuditEventLogin            AuditEventType = "login"
	AuditEventLoginFailed      AuditEventType = "login_failed"
	AuditEventPurchase         AuditEventType = "purchase"
	AuditEventDictionaryDelete AuditEventType = "dictionary_delete"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index" json:"user_id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Description string         `gorm:"size:500" json:"description"`
	EntityType  string         `gorm:"size:50" json:"entity_type,omitempty"` // "dictionary", "user"
	EntityID    *uint          `gorm:"index" json:"entity_id,omitempty"`
	IPAddress   string         `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent   string         `gorm:"size:500" json:"user_agent,omitempty"`
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
