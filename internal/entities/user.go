package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultNotificationHour   = 9
	DefaultNotificationMinute = 0
)

// MaxBalance is the largest magnitude a decimal(10,2) balance column holds.
var MaxBalance = decimal.RequireFromString("99999999.99")

type User struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Username     string          `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email        string          `gorm:"uniqueIndex;size:254;not null" json:"email"`
	PasswordHash string          `gorm:"size:255;not null" json:"-"`
	Balance      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"balance"`

	NotificationsEnabled bool `gorm:"not null" json:"notifications_enabled"`
	NotificationHour     int  `gorm:"not null" json:"notification_hour"`   // 0-23
	NotificationMinute   int  `gorm:"not null" json:"notification_minute"` // 0-59

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
