package service

import (
	"testing"
	"time"

	"chat-session-demo/backend/internal/models"
	"chat-session-demo/backend/internal/repository"
	"chat-session-demo/backend/pkg/cache"
	apperrors "chat-session-demo/backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*ChatService, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	return NewChatService(store, NewEchoResponder(), nil), store
}

func TestCreateSessionDefaults(t *testing.T) {
	svc, _ := newTestService()

	session, err := svc.CreateSession("")
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, DefaultSessionTitle, session.Title)
	assert.Equal(t, 0, session.MessageCount)
	assert.True(t, session.CreatedAt.Equal(session.UpdatedAt))
}

func TestCreateSessionWithTitle(t *testing.T) {
	svc, _ := newTestService()

	session, err := svc.CreateSession("Project notes")
	require.NoError(t, err)
	assert.Equal(t, "Project notes", session.Title)
}

func TestFetchSessionNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.FetchSession("no-such-id")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.GetStatusCode(err))
	assert.Equal(t, "SESSION_NOT_FOUND", apperrors.GetErrorCode(err))
}

func TestRecordExchangeEcho(t *testing.T) {
	svc, _ := newTestService()

	session, err := svc.CreateSession("Test")
	require.NoError(t, err)

	updated, messages, err := svc.RecordExchange(session.ID, "hi")
	require.NoError(t, err)

	assert.Equal(t, 2, updated.MessageCount)
	require.Len(t, messages, 2)
	assert.Equal(t, models.RoleUser, messages[0].Role)
	assert.Equal(t, "hi", messages[0].Content)
	assert.Equal(t, models.RoleAssistant, messages[1].Role)
	assert.Equal(t, "Echo: hi", messages[1].Content)

	// Both halves of the exchange share one timestamp
	assert.True(t, messages[0].CreatedAt.Equal(messages[1].CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestRecordExchangeCounts(t *testing.T) {
	svc, _ := newTestService()

	session, err := svc.CreateSession("Counting")
	require.NoError(t, err)

	const exchanges = 3
	var messages []models.Message
	for i := 0; i < exchanges; i++ {
		var updated *models.Session
		updated, messages, err = svc.RecordExchange(session.ID, "ping")
		require.NoError(t, err)
		assert.Equal(t, 2*(i+1), updated.MessageCount)
	}

	require.Len(t, messages, 2*exchanges)
	for i, m := range messages {
		if i%2 == 0 {
			assert.Equal(t, models.RoleUser, m.Role, "message %d", i)
		} else {
			assert.Equal(t, models.RoleAssistant, m.Role, "message %d", i)
		}
	}
}

func TestRecordExchangeUnknownSession(t *testing.T) {
	svc, store := newTestService()

	_, _, err := svc.RecordExchange("no-such-id", "hello")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.GetStatusCode(err))

	// No orphaned messages were written
	orphans, listErr := store.Messages().ListBySession("no-such-id")
	require.NoError(t, listErr)
	assert.Empty(t, orphans)
}

func TestListSessionsOrdering(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.CreateSession("first")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := svc.CreateSession("second")
	require.NoError(t, err)

	sessions, err := svc.ListSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, second.ID, sessions[0].ID)
	assert.Equal(t, first.ID, sessions[1].ID)

	// Writing to the older session moves it to the front
	time.Sleep(time.Millisecond)
	_, _, err = svc.RecordExchange(first.ID, "bump")
	require.NoError(t, err)

	sessions, err = svc.ListSessions()
	require.NoError(t, err)
	assert.Equal(t, first.ID, sessions[0].ID)
	assert.Equal(t, second.ID, sessions[1].ID)
}

func TestListSessionsIdempotent(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateSession("stable")
	require.NoError(t, err)

	once, err := svc.ListSessions()
	require.NoError(t, err)
	again, err := svc.ListSessions()
	require.NoError(t, err)
	assert.Equal(t, once, again)
}

func TestEndToEndScenario(t *testing.T) {
	svc, _ := newTestService()

	session, err := svc.CreateSession("Test")
	require.NoError(t, err)
	assert.Equal(t, "Test", session.Title)
	assert.Equal(t, 0, session.MessageCount)

	updated, messages, err := svc.RecordExchange(session.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, 2, updated.MessageCount)
	require.Len(t, messages, 2)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, "Echo: hello", messages[1].Content)

	fetched, fetchedMessages, err := svc.FetchSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.MessageCount, fetched.MessageCount)
	require.Len(t, fetchedMessages, 2)
	assert.Equal(t, messages[0].ID, fetchedMessages[0].ID)
	assert.Equal(t, messages[1].ID, fetchedMessages[1].ID)
}

func TestListSessionsCacheInvalidation(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewChatService(store, NewEchoResponder(), cache.NewCache())

	_, err := svc.CreateSession("one")
	require.NoError(t, err)

	sessions, err := svc.ListSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	// A write must drop the cached list
	_, err = svc.CreateSession("two")
	require.NoError(t, err)

	sessions, err = svc.ListSessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestEchoResponder(t *testing.T) {
	reply, err := NewEchoResponder().Reply(nil, "anything")
	require.NoError(t, err)
	assert.Equal(t, "Echo: anything", reply)
}
