package repository

import (
	"time"

	"chat-session-demo/backend/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound signals that a requested row does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate signals a primary key collision on insert.
var ErrDuplicate = gorm.ErrDuplicatedKey

// SessionRepository provides persistence operations for sessions
type SessionRepository interface {
	Create(session *models.Session) error
	GetByID(id string) (*models.Session, error)
	List() ([]models.Session, error)
	IncrementCounters(id string, delta int, updatedAt time.Time) error
}

// MessageRepository provides persistence operations for messages
type MessageRepository interface {
	Create(message *models.Message) error
	ListBySession(sessionID string) ([]models.Message, error)
}

// Store groups the repositories and provides a transaction boundary
// around multi-statement sequences like recording an exchange.
type Store interface {
	Sessions() SessionRepository
	Messages() MessageRepository

	// Transaction runs fn against a store whose repositories share one
	// atomic unit of work. Returning an error rolls everything back.
	Transaction(fn func(Store) error) error
}
