package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID   uuid.UUID    `gorm:"type:varchar(36);not null" json:"project_id"`
	Title       string       `gorm:"type:varchar(100);not null" json:"title"`
	Description string       `gorm:"type:varchar(500)" json:"description"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null" json:"priority"`
	IsDone      bool         `gorm:"not null" json:"is_done"`
	AddedTime   time.Time    `gorm:"not null" json:"added_time"`
	DoneTime    *time.Time   `json:"done_time"`
	DueDate     *time.Time   `json:"due_date"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
