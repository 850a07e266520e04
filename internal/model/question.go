package model

import (
	"time"

	"gorm.io/gorm"
)

// LocalizedText is a bilingual text pair. Hindi falls back to English at
// creation time, so stored rows always carry both variants.
type LocalizedText struct {
	English string `json:"english" gorm:"not null"`
	Hindi   string `json:"hindi"`
}

// Option is one answer choice of a question, ordered by OrderIndex.
type Option struct {
	ID         uint          `gorm:"primarykey" json:"id"`
	QuestionID uint          `json:"-" gorm:"not null;index"`
	OrderIndex int           `json:"order_index" gorm:"not null"`
	Text       LocalizedText `json:"text" gorm:"embedded;embeddedPrefix:text_"`
}

type Question struct {
	ID          uint          `gorm:"primarykey" json:"id"`
	UID         string        `json:"uid" gorm:"uniqueIndex;not null"` // stable join key, immutable after creation
	Question    LocalizedText `json:"question" gorm:"embedded;embeddedPrefix:question_"`
	Description LocalizedText `json:"description" gorm:"embedded;embeddedPrefix:description_"`
	Options     []Option      `json:"options" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	// CorrectAnswer indexes into Options.
	CorrectAnswer int            `json:"correct_answer" gorm:"not null"`
	Tags          []Tag          `json:"tags,omitempty" gorm:"many2many:question_tags;"`
	IsActive      bool           `json:"is_active" gorm:"index"`
	CreatedByID   uint           `json:"created_by" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
