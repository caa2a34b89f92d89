package models

import (
	"time"
)

// Session represents a titled conversation thread
type Session struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	Title        string    `json:"title" gorm:"type:text;not null"`
	MessageCount int       `json:"message_count" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"index"`
}

// TableName overrides the table name used by GORM
func (Session) TableName() string {
	return "sessions"
}
