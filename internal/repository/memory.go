package repository

import (
	"sort"
	"sync"
	"time"

	"chat-session-demo/backend/internal/models"
)

// MemoryStore is an in-memory Store substitute used in tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	messages []models.Message
	nextSeq  int64

	sessionRepo *memorySessionRepository
	messageRepo *memoryMessageRepository
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]models.Session),
		nextSeq:  1,
	}
	s.sessionRepo = &memorySessionRepository{store: s}
	s.messageRepo = &memoryMessageRepository{store: s}
	return s
}

func (s *MemoryStore) Sessions() SessionRepository {
	return s.sessionRepo
}

func (s *MemoryStore) Messages() MessageRepository {
	return s.messageRepo
}

// Transaction serializes callers under one lock. There is no rollback;
// tests that need failure injection wrap the repositories instead.
func (s *MemoryStore) Transaction(fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&unlockedStore{store: s})
}

// unlockedStore exposes the repositories without re-acquiring the mutex,
// for use inside Transaction.
type unlockedStore struct {
	store *MemoryStore
}

func (u *unlockedStore) Sessions() SessionRepository {
	return &memorySessionRepository{store: u.store, locked: true}
}

func (u *unlockedStore) Messages() MessageRepository {
	return &memoryMessageRepository{store: u.store, locked: true}
}

func (u *unlockedStore) Transaction(fn func(Store) error) error {
	return fn(u)
}

type memorySessionRepository struct {
	store  *MemoryStore
	locked bool
}

func (r *memorySessionRepository) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *memorySessionRepository) Create(session *models.Session) error {
	defer r.lock()()
	if _, exists := r.store.sessions[session.ID]; exists {
		return ErrDuplicate
	}
	r.store.sessions[session.ID] = *session
	return nil
}

func (r *memorySessionRepository) GetByID(id string) (*models.Session, error) {
	defer r.lock()()
	session, ok := r.store.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &session, nil
}

func (r *memorySessionRepository) List() ([]models.Session, error) {
	defer r.lock()()
	sessions := make([]models.Session, 0, len(r.store.sessions))
	for _, s := range r.store.sessions {
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

func (r *memorySessionRepository) IncrementCounters(id string, delta int, updatedAt time.Time) error {
	defer r.lock()()
	session, ok := r.store.sessions[id]
	if !ok {
		return ErrNotFound
	}
	session.MessageCount += delta
	session.UpdatedAt = updatedAt
	r.store.sessions[id] = session
	return nil
}

type memoryMessageRepository struct {
	store  *MemoryStore
	locked bool
}

func (r *memoryMessageRepository) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *memoryMessageRepository) Create(message *models.Message) error {
	defer r.lock()()
	message.Seq = r.store.nextSeq
	r.store.nextSeq++
	r.store.messages = append(r.store.messages, *message)
	return nil
}

func (r *memoryMessageRepository) ListBySession(sessionID string) ([]models.Message, error) {
	defer r.lock()()
	var messages []models.Message
	for _, m := range r.store.messages {
		if m.SessionID == sessionID {
			messages = append(messages, m)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].Seq < messages[j].Seq
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}
