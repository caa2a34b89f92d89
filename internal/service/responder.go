package service

import (
	"chat-session-demo/backend/internal/models"
)

// Responder produces the assistant's reply to a user message. Persistence
// never depends on how the reply is generated, so a real generation backend
// can be dropped in without touching the repositories.
type Responder interface {
	Reply(session *models.Session, userMessage string) (string, error)
}

// EchoResponder parrots the user's message back with an "Echo: " prefix.
type EchoResponder struct{}

func NewEchoResponder() *EchoResponder {
	return &EchoResponder{}
}

func (r *EchoResponder) Reply(_ *models.Session, userMessage string) (string, error) {
	return "Echo: " + userMessage, nil
}
