package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"chat-session-demo/backend/internal/repository"
	"chat-session-demo/backend/internal/service"
	"chat-session-demo/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	svc := service.NewChatService(store, service.NewEchoResponder(), nil)
	log := logger.New(logger.Config{Level: "error", JSON: true, Output: io.Discard})

	r := gin.New()
	NewChatController(svc, log).RegisterRoutes(r)
	return r
}

func dispatch(t *testing.T, r *gin.Engine, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodPost, "/chat-handler", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	return w, decoded
}

func TestUnknownAction(t *testing.T) {
	r := newTestEngine()

	w, resp := dispatch(t, r, gin.H{"action": "frobnicate"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Unknown action", resp["error"])
}

func TestMalformedBody(t *testing.T) {
	r := newTestEngine()

	req, _ := http.NewRequest(http.MethodPost, "/chat-handler", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestNewChat(t *testing.T) {
	r := newTestEngine()

	w, resp := dispatch(t, r, gin.H{"action": "new_chat", "title": "Test"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	session := resp["session"].(map[string]any)
	assert.Equal(t, "Test", session["title"])
	assert.Equal(t, float64(0), session["message_count"])
	assert.NotEmpty(t, session["id"])
	assert.Equal(t, session["created_at"], session["updated_at"])
}

func TestNewChatDefaultTitle(t *testing.T) {
	r := newTestEngine()

	_, resp := dispatch(t, r, gin.H{"action": "new_chat"})
	session := resp["session"].(map[string]any)
	assert.Equal(t, "New Chat", session["title"])
}

func TestGetSessionUnknownID(t *testing.T) {
	r := newTestEngine()

	w, resp := dispatch(t, r, gin.H{"action": "get_session", "sessionId": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Session not found", resp["error"])
}

func TestSendMessageUnknownSession(t *testing.T) {
	r := newTestEngine()

	w, resp := dispatch(t, r, gin.H{"action": "send_message", "sessionId": "missing", "message": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestSendMessageRoundtrip(t *testing.T) {
	r := newTestEngine()

	_, created := dispatch(t, r, gin.H{"action": "new_chat", "title": "Test"})
	sessionID := created["session"].(map[string]any)["id"].(string)

	w, resp := dispatch(t, r, gin.H{"action": "send_message", "sessionId": sessionID, "message": "hello"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	session := resp["session"].(map[string]any)
	assert.Equal(t, float64(2), session["message_count"])

	messages := resp["messages"].([]any)
	require.Len(t, messages, 2)

	first := messages[0].(map[string]any)
	second := messages[1].(map[string]any)
	assert.Equal(t, "user", first["role"])
	assert.Equal(t, "hello", first["content"])
	assert.Equal(t, "assistant", second["role"])
	assert.Equal(t, "Echo: hello", second["content"])

	// Wire format carries exactly the documented message fields
	assert.NotContains(t, first, "session_id")
	assert.NotContains(t, first, "seq")

	// Fetching the session returns the same messages in the same order
	_, fetched := dispatch(t, r, gin.H{"action": "get_session", "sessionId": sessionID})
	fetchedMessages := fetched["messages"].([]any)
	require.Len(t, fetchedMessages, 2)
	assert.Equal(t, first["id"], fetchedMessages[0].(map[string]any)["id"])
	assert.Equal(t, second["id"], fetchedMessages[1].(map[string]any)["id"])
}

func TestGetAllSessions(t *testing.T) {
	r := newTestEngine()

	_, resp := dispatch(t, r, gin.H{"action": "get_all_sessions"})
	assert.Equal(t, true, resp["success"])
	assert.Empty(t, resp["sessions"])

	dispatch(t, r, gin.H{"action": "new_chat", "title": "only"})

	_, resp = dispatch(t, r, gin.H{"action": "get_all_sessions"})
	sessions := resp["sessions"].([]any)
	require.Len(t, sessions, 1)
	assert.Equal(t, "only", sessions[0].(map[string]any)["title"])
}
