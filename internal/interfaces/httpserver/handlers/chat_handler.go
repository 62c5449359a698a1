package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"support-chat-api/internal/domain/chat"
	"support-chat-api/internal/interfaces/httpserver/requests"
	"support-chat-api/internal/interfaces/httpserver/responses"
	"support-chat-api/internal/utils/platformerrors"
)

// ChatHandler exposes the chat endpoints.
type ChatHandler struct {
	service *chat.Service
	log     zerolog.Logger
}

func NewChatHandler(service *chat.Service, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log.With().Str("component", "chat-handler").Logger(),
	}
}

// PostMessage handles POST /v1/chat/message: one reply-pipeline pass.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req requests.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"message is required and must be a non-empty string",
			"a1b2c3d4-5e6f-4a7b-8c9d-0e1f2a3b4c5d")
		return
	}

	result, err := h.service.Reply(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		h.log.Error().Err(err).Msg("reply pipeline failed")
		responses.HandleError(c, err, "failed to process message")
		return
	}

	c.JSON(http.StatusOK, responses.ChatMessageResponse{
		Reply:     result.Reply,
		SessionID: result.SessionID,
	})
}

// GetHistory handles GET /v1/chat/history/:sessionId. Unknown session ids
// yield 404.
func (h *ChatHandler) GetHistory(c *gin.Context) {
	sessionID := c.Param("sessionId")

	messages, err := h.service.History(c.Request.Context(), sessionID)
	if err != nil {
		h.log.Warn().Err(err).Str("session_id", sessionID).Msg("history lookup failed")
		responses.HandleError(c, err, "failed to load history")
		return
	}

	c.JSON(http.StatusOK, responses.NewChatHistoryResponse(messages))
}
