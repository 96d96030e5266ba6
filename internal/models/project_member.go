package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectMember is the membership relation. The owner of a project is always one of its members.
type ProjectMember struct {
	UserID    uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"user_id"`
	ProjectID uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"project_id"`
	JoinedAt  time.Time `gorm:"not null" json:"joined_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user"`
}
