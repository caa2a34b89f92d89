package api

import (
	"net/http"

	"chat-session-demo/backend/internal/service"
	apperrors "chat-session-demo/backend/pkg/errors"
	"chat-session-demo/backend/pkg/logger"
	"chat-session-demo/backend/shared/observability"

	"github.com/gin-gonic/gin"
)

// Dispatch actions recognized by the chat handler
const (
	ActionGetAllSessions = "get_all_sessions"
	ActionNewChat        = "new_chat"
	ActionGetSession     = "get_session"
	ActionSendMessage    = "send_message"
)

// ActionRequest is the single request shape accepted by the dispatcher.
// Action selects the operation; the remaining fields are per-action.
type ActionRequest struct {
	Action    string `json:"action"`
	Title     string `json:"title"`
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// ChatController routes action requests to the chat service and wraps
// every response in the {success, ...} envelope. It performs no side
// effects of its own.
type ChatController struct {
	service *service.ChatService
	log     *logger.Logger
}

func NewChatController(svc *service.ChatService, log *logger.Logger) *ChatController {
	return &ChatController{service: svc, log: log}
}

// RegisterRoutes registers the root-level dispatch endpoint.
func (ctl *ChatController) RegisterRoutes(r *gin.Engine) {
	r.POST("/chat-handler", ctl.HandleAction)
}

// RegisterRoutesV1 registers the versioned dispatch endpoint.
func (ctl *ChatController) RegisterRoutesV1(group *gin.RouterGroup) {
	group.POST("/chat-handler", ctl.HandleAction)
}

// HandleAction is the single entry point: it decodes the action field,
// invokes the matching service operation, and serializes the result.
func (ctl *ChatController) HandleAction(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		observability.CountAction(c.Request.Context(), "invalid", false)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	switch req.Action {
	case ActionGetAllSessions:
		ctl.getAllSessions(c, req)
	case ActionNewChat:
		ctl.newChat(c, req)
	case ActionGetSession:
		ctl.getSession(c, req)
	case ActionSendMessage:
		ctl.sendMessage(c, req)
	default:
		ctl.log.Warn("Unknown dispatch action", "action", req.Action)
		observability.CountAction(c.Request.Context(), req.Action, false)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown action"})
	}
}

func (ctl *ChatController) getAllSessions(c *gin.Context, req ActionRequest) {
	sessions, err := ctl.service.ListSessions()
	if err != nil {
		ctl.fail(c, req.Action, err)
		return
	}
	observability.CountAction(c.Request.Context(), req.Action, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "sessions": sessions})
}

func (ctl *ChatController) newChat(c *gin.Context, req ActionRequest) {
	session, err := ctl.service.CreateSession(req.Title)
	if err != nil {
		ctl.fail(c, req.Action, err)
		return
	}
	observability.CountAction(c.Request.Context(), req.Action, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

func (ctl *ChatController) getSession(c *gin.Context, req ActionRequest) {
	session, messages, err := ctl.service.FetchSession(req.SessionID)
	if err != nil {
		ctl.fail(c, req.Action, err)
		return
	}
	observability.CountAction(c.Request.Context(), req.Action, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "session": session, "messages": messages})
}

func (ctl *ChatController) sendMessage(c *gin.Context, req ActionRequest) {
	session, messages, err := ctl.service.RecordExchange(req.SessionID, req.Message)
	if err != nil {
		ctl.fail(c, req.Action, err)
		return
	}
	observability.CountAction(c.Request.Context(), req.Action, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "session": session, "messages": messages})
}

// fail converts any service failure into the failure envelope. The error
// description is surfaced verbatim; there is no retry and no recovery here.
func (ctl *ChatController) fail(c *gin.Context, action string, err error) {
	status := apperrors.GetStatusCode(err)
	message := err.Error()
	if appErr, ok := err.(*apperrors.AppError); ok {
		message = appErr.Message
	}

	ctl.log.LogError(err, "Dispatch action failed",
		"action", action,
		"status", status,
	)
	observability.CountAction(c.Request.Context(), action, false)
	c.JSON(status, gin.H{"success": false, "error": message})
}
