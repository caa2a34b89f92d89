package repository

import (
	"gorm.io/gorm"
)

// GormStore is the PostgreSQL-backed Store implementation.
type GormStore struct {
	db       *gorm.DB
	sessions *GormSessionRepository
	messages *GormMessageRepository
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:       db,
		sessions: NewGormSessionRepository(db),
		messages: NewGormMessageRepository(db),
	}
}

func (s *GormStore) Sessions() SessionRepository {
	return s.sessions
}

func (s *GormStore) Messages() MessageRepository {
	return s.messages
}

// Transaction runs fn against repositories bound to a single database
// transaction; any error rolls the whole sequence back.
func (s *GormStore) Transaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx))
	})
}
