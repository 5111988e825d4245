package tools

import (
	"time"

	"community-app/internal/domain/users"
)

// Tool is one entry in the community tool directory.
type Tool struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"index"`
	User        users.User
	Name        string `gorm:"not null"`
	Description string
	URL         string `gorm:"not null"`
	Category    string `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
