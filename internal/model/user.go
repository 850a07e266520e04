package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// StudentTypeFresh is the default student cohort tag. Admins never carry a
// Type; admin-facing serialization must drop the field entirely.
const StudentTypeFresh = "fresh"

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	FullName     string         `json:"full_name" gorm:"not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	Phone        string         `json:"phone"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         string         `json:"role" gorm:"not null;index"`
	Type         *string        `json:"type,omitempty"` // students only
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
