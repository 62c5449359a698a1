package responses

import (
	"time"

	"support-chat-api/internal/domain/chat"
)

// ChatMessageResponse is the body of a successful POST /v1/chat/message.
type ChatMessageResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}

// MessageResponse is one transcript entry in a history response.
type MessageResponse struct {
	ID        uint      `json:"id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatHistoryResponse is the body of GET /v1/chat/history/:sessionId.
type ChatHistoryResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// NewChatHistoryResponse maps domain messages into the transport shape.
func NewChatHistoryResponse(messages []chat.Message) ChatHistoryResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, msg := range messages {
		out = append(out, MessageResponse{
			ID:        msg.ID,
			Sender:    string(msg.Sender),
			Text:      msg.Text,
			Timestamp: msg.CreatedAt,
		})
	}
	return ChatHistoryResponse{Messages: out}
}
