package dbschema

import (
	"testing"
	"time"

	"support-chat-api/internal/domain/chat"
)

func TestConversationConverters(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	entity := NewSchemaConversation(&chat.Conversation{
		ID:        7,
		PublicID:  "conv_abc123",
		CreatedAt: created,
	})
	if entity.ID != 7 || entity.PublicID != "conv_abc123" || !entity.CreatedAt.Equal(created) {
		t.Fatalf("unexpected entity: %+v", entity)
	}

	domain := entity.EtoD()
	if domain.ID != 7 || domain.PublicID != "conv_abc123" || !domain.CreatedAt.Equal(created) {
		t.Fatalf("unexpected domain conversation: %+v", domain)
	}
}

func TestMessageConverters(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 27, 11, 0, time.UTC)

	entity := NewSchemaMessage(&chat.Message{
		ID:             42,
		ConversationID: 7,
		Sender:         chat.SenderAI,
		Text:           "Standard shipping takes 3-5 business days.",
		CreatedAt:      created,
	})
	if entity.ConversationID != 7 || entity.Sender != chat.SenderAI {
		t.Fatalf("unexpected entity: %+v", entity)
	}

	domain := entity.EtoD()
	if domain.ID != 42 || domain.Sender != chat.SenderAI || domain.Text != entity.Text || !domain.CreatedAt.Equal(created) {
		t.Fatalf("unexpected domain message: %+v", domain)
	}
}
