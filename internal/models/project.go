package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusInProgress ProjectStatus = "InProgress"
	ProjectStatusFinished   ProjectStatus = "Finished"
	ProjectStatusCanceled   ProjectStatus = "Canceled"
	ProjectStatusDeferred   ProjectStatus = "Deferred"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusInProgress, ProjectStatusFinished, ProjectStatusCanceled, ProjectStatusDeferred:
		return true
	}
	return false
}

type Project struct {
	ID          uuid.UUID     `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID     uuid.UUID     `gorm:"type:varchar(36);not null" json:"owner_id"`
	Name        string        `gorm:"type:varchar(36);not null" json:"name"`
	Description string        `gorm:"type:varchar(500)" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedTime time.Time     `gorm:"not null" json:"created_time"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	Owner   User            `gorm:"foreignKey:OwnerID" json:"-"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
