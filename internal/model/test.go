package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	TestStatusUpcoming  = "UPCOMING"
	TestStatusActive    = "ACTIVE"
	TestStatusCompleted = "COMPLETED"
)

// TestQuestion links a test to a question by its stable UID, not by row ID,
// so test definitions survive question-store migrations.
type TestQuestion struct {
	ID          uint   `gorm:"primarykey" json:"-"`
	TestID      uint   `json:"-" gorm:"not null;index"`
	Position    int    `json:"position" gorm:"not null"`
	QuestionUID string `json:"question_uid" gorm:"not null;index"`
}

type Test struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Title            string         `json:"title" gorm:"not null"`
	Description      string         `json:"description,omitempty"`
	StartTime        time.Time      `json:"start_time" gorm:"not null;index"`
	DurationMinutes  int            `json:"duration" gorm:"not null"`
	MarksPerQuestion float64        `json:"marks_per_question"`
	NegativeMarks    float64        `json:"negative_marks"`
	Questions        []TestQuestion `json:"questions" gorm:"foreignKey:TestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	IsActive         bool           `json:"is_active" gorm:"index"`
	CreatedByID      uint           `json:"created_by" gorm:"not null;index"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// QuestionUIDs returns the ordered question references of the test.
func (t *Test) QuestionUIDs() []string {
	uids := make([]string, len(t.Questions))
	for i, q := range t.Questions {
		uids[i] = q.QuestionUID
	}
	return uids
}

// TotalMarks is derived, never stored.
func (t *Test) TotalMarks() float64 {
	return float64(len(t.Questions)) * t.MarksPerQuestion
}

func (t *Test) EndTime() time.Time {
	return t.StartTime.Add(time.Duration(t.DurationMinutes) * time.Minute)
}

// Status reports the schedule phase of the test at the given instant.
func (t *Test) Status(now time.Time) string {
	if now.Before(t.StartTime) {
		return TestStatusUpcoming
	}
	if now.After(t.EndTime()) {
		return TestStatusCompleted
	}
	return TestStatusActive
}
