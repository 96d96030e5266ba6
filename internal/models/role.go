package models

import "github.com/google/uuid"

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type Role struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
}

// UserRole links a user to one of the seeded roles.
type UserRole struct {
	UserID uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"user_id"`
	RoleID uint      `gorm:"primaryKey" json:"role_id"`

	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}
