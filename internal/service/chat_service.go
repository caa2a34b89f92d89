package service

import (
	"errors"
	"time"

	"chat-session-demo/backend/internal/models"
	"chat-session-demo/backend/internal/repository"
	"chat-session-demo/backend/pkg/cache"
	apperrors "chat-session-demo/backend/pkg/errors"

	"github.com/google/uuid"
)

// DefaultSessionTitle is used when new_chat carries no title.
const DefaultSessionTitle = "New Chat"

const sessionListCacheKey = "sessions:all"

// ChatService composes the store primitives into the four user-facing
// operations, owning identifier generation and timestamp assignment.
type ChatService struct {
	store     repository.Store
	responder Responder
	cache     *cache.Cache
}

// NewChatService creates a chat service. The cache is optional; when nil,
// every list goes to the store.
func NewChatService(store repository.Store, responder Responder, c *cache.Cache) *ChatService {
	return &ChatService{
		store:     store,
		responder: responder,
		cache:     c,
	}
}

// ListSessions returns all sessions, most recently active first.
func (s *ChatService) ListSessions() ([]models.Session, error) {
	if s.cache != nil {
		if cached, found := s.cache.Get(sessionListCacheKey); found {
			if sessions, ok := cached.([]models.Session); ok {
				return sessions, nil
			}
		}
	}

	sessions, err := s.store.Sessions().List()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(sessionListCacheKey, sessions)
	}
	return sessions, nil
}

// CreateSession creates a new session with a zero message count. An empty
// title falls back to DefaultSessionTitle.
func (s *ChatService) CreateSession(title string) (*models.Session, error) {
	if title == "" {
		title = DefaultSessionTitle
	}

	now := time.Now().UTC()
	session := &models.Session{
		ID:           uuid.New().String(),
		Title:        title,
		MessageCount: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Sessions().Create(session); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflictError("SESSION_EXISTS", "Session already exists")
		}
		return nil, err
	}

	s.invalidateListCache()
	return session, nil
}

// FetchSession returns the session and its messages in ascending creation
// order. Unknown ids fail with a not-found error.
func (s *ChatService) FetchSession(id string) (*models.Session, []models.Message, error) {
	session, err := s.store.Sessions().GetByID(id)
	if err != nil {
		return nil, nil, s.translateSessionErr(err)
	}

	messages, err := s.store.Messages().ListBySession(id)
	if err != nil {
		return nil, nil, err
	}
	return session, messages, nil
}

// RecordExchange appends a user message and its scripted reply to the
// session, bumps the counters, and returns the refreshed state. The whole
// sequence runs in one transaction: the session is validated before any
// insert, so orphaned messages cannot occur, and concurrent sends to the
// same session cannot lose counter updates.
func (s *ChatService) RecordExchange(sessionID, userContent string) (*models.Session, []models.Message, error) {
	var (
		session  *models.Session
		messages []models.Message
	)

	err := s.store.Transaction(func(tx repository.Store) error {
		current, err := tx.Sessions().GetByID(sessionID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		userMessage := &models.Message{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Role:      models.RoleUser,
			Content:   userContent,
			CreatedAt: now,
		}
		if err := tx.Messages().Create(userMessage); err != nil {
			return err
		}

		reply, err := s.responder.Reply(current, userContent)
		if err != nil {
			return err
		}

		assistantMessage := &models.Message{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Role:      models.RoleAssistant,
			Content:   reply,
			CreatedAt: now,
		}
		if err := tx.Messages().Create(assistantMessage); err != nil {
			return err
		}

		if err := tx.Sessions().IncrementCounters(sessionID, 2, now); err != nil {
			return err
		}

		session, err = tx.Sessions().GetByID(sessionID)
		if err != nil {
			return err
		}
		messages, err = tx.Messages().ListBySession(sessionID)
		return err
	})
	if err != nil {
		return nil, nil, s.translateSessionErr(err)
	}

	s.invalidateListCache()
	return session, messages, nil
}

func (s *ChatService) invalidateListCache() {
	if s.cache != nil {
		s.cache.Delete(sessionListCacheKey)
	}
}

func (s *ChatService) translateSessionErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFoundError("SESSION_NOT_FOUND", "Session not found")
	}
	return err
}
