package entities

import "time"

// LearningProgress is unique per (user, dictionary).
type LearningProgress struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_progress_user_dictionary" json:"user_id"`
	DictionaryID uint      `gorm:"not null;uniqueIndex:idx_progress_user_dictionary;index" json:"dictionary"`
	LearnedWords []Word    `gorm:"many2many:learning_progress_words;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	LastUpdated  time.Time `gorm:"autoUpdateTime;not null" json:"last_updated"`
}

func (LearningProgress) TableName() string {
	return "learning_progress"
}

// LearnedWordIDs returns the ids of the loaded learned words.
func (p *LearningProgress) LearnedWordIDs() []uint {
	ids := make([]uint, 0, len(p.LearnedWords))
	for _, w := range p.LearnedWords {
		ids = append(ids, w.ID)
	}
	return ids
}
