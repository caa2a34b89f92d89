package models

import (
	"time"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents one turn in a session, immutable once created.
// Both halves of an exchange share a timestamp, so Seq (assigned by the
// database) is the tiebreaker that keeps the user message ahead of its reply.
type Message struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID string    `json:"-" gorm:"type:uuid;not null;index"`
	Role      string    `json:"role" gorm:"type:varchar(20);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	Seq       int64     `json:"-" gorm:"autoIncrement;uniqueIndex"`
}

// TableName overrides the table name used by GORM
func (Message) TableName() string {
	return "messages"
}
