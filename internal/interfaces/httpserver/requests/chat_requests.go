package requests

// ChatMessageRequest is the body of POST /v1/chat/message. SessionID is
// optional; when absent the service generates a fresh conversation id.
type ChatMessageRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId"`
}
