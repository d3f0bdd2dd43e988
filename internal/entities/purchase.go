package entities

import "time"

type AccessType string

const (
	AccessTypePermanent AccessType = "permanent"
	AccessTypeTemporary AccessType = "temporary"
)

// ParseAccessType maps user input to an access type. Anything unknown,
// including the empty string, becomes permanent.
func ParseAccessType(s string) AccessType {
	if AccessType(s) == AccessTypeTemporary {
		return AccessTypeTemporary
	}
	return AccessTypePermanent
}

// Purchase grants a non-owner access to a dictionary. Rows are never updated.
type Purchase struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;uniqueIndex:idx_purchases_user_dictionary" json:"user_id"`
	DictionaryID uint       `gorm:"not null;uniqueIndex:idx_purchases_user_dictionary;index" json:"dictionary_id"`
	AccessType   AccessType `gorm:"size:20;not null" json:"access_type"`
	PurchasedAt  time.Time  `gorm:"autoCreateTime;not null" json:"purchased_at"`
}

func (Purchase) TableName() string {
	return "purchases"
}
