package handlers

import (
	"github.com/rs/zerolog"

	"support-chat-api/internal/domain/chat"
)

// Provider wires HTTP handlers.
type Provider struct {
	Chat *ChatHandler
}

func NewProvider(service *chat.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Chat: NewChatHandler(service, log),
	}
}
