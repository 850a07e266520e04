package model

import (
	"time"
)

type Tag struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Label       string    `json:"tag" gorm:"uniqueIndex;not null"`
	CreatedByID uint      `json:"created_by" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
