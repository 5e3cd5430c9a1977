package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name             string    `json:"name"`
	Surname          string    `json:"surname"`
	Nickname         string    `gorm:"index" json:"nickname"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	ProfileImage     string    `json:"profile_image"`
	ProfilePublic    bool      `gorm:"default:false" json:"profile_public"`
	AuthID           string    `gorm:"column:auth_id;uniqueIndex;not null" json:"-"` // external identity reference, immutable
	Role             string    `gorm:"default:'user';not null" json:"role"`          // only 2 roles: "user", "admin"
	ProfileCompleted bool      `gorm:"default:false" json:"profile_completed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	// If the ID is not already set, generate a new one.
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}

func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin
}
