package entities

import "time"

type Word struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	DictionaryID uint      `gorm:"index;not null" json:"dictionary"`
	Word         string    `gorm:"size:100;not null" json:"word"`
	Translation  string    `gorm:"size:100;not null" json:"translation"`
	ImageURL     string    `gorm:"size:2048" json:"image_url,omitempty"`
	Example      string    `gorm:"type:text" json:"example,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Word) TableName() string {
	return "words"
}
