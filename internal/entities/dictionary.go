package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultTemporaryDays = 7

// MaxPrice is the largest price a decimal(6,2) column holds.
var MaxPrice = decimal.RequireFromString("9999.99")

type Dictionary struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OwnerID     uint   `gorm:"index;not null" json:"owner"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	SourceLang  string `gorm:"size:50;not null" json:"source_lang"`
	TargetLang  string `gorm:"size:50;not null" json:"target_lang"`

	Price                decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0" json:"price"`
	AllowTemporaryAccess bool            `gorm:"not null" json:"allow_temporary_access"`
	TemporaryDays        int             `gorm:"not null" json:"temporary_days"`
	IsForSale            bool            `gorm:"index;not null" json:"is_for_sale"`

	// CoverImage is an external URL, CoverImageFile a path under the media root.
	// An uploaded file wins when both are set.
	CoverImage     string `gorm:"size:2048" json:"cover_image,omitempty"`
	CoverImageFile string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Dictionary) TableName() string {
	return "dictionaries"
}

// IsOwnedBy reports whether userID owns the dictionary. Anonymous callers
// (userID 0) never own anything.
func (d *Dictionary) IsOwnedBy(userID uint) bool {
	return userID != 0 && d.OwnerID == userID
}

// HasCover reports whether either cover source is set.
func (d *Dictionary) HasCover() bool {
	return d.CoverImageFile != "" || d.CoverImage != ""
}

// SaleReady reports whether the dictionary satisfies the for-sale rule:
// a listed dictionary needs both a name and a description.
func (d *Dictionary) SaleReady() bool {
	if !d.IsForSale {
		return true
	}
	return strings.TrimSpace(d.Name) != "" && strings.TrimSpace(d.Description) != ""
}
