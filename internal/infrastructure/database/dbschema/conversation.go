package dbschema

import (
	"support-chat-api/internal/domain/chat"
	"support-chat-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Conversation{})
	database.RegisterSchemaForAutoMigrate(Message{})
}

// Conversation represents the database schema for conversations
type Conversation struct {
	BaseModel
	PublicID string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Messages []Message `gorm:"foreignKey:ConversationID"`
}

// Message represents the database schema for transcript messages. Rows are
// append-only; ordering is by created_at with id breaking ties.
type Message struct {
	BaseModel
	ConversationID uint         `gorm:"index:idx_message_conversation_created;not null"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID"`
	Sender         chat.Sender  `gorm:"type:varchar(10);not null;check:sender IN ('user','ai')"`
	Text           string       `gorm:"type:text;not null"`
}

// NewSchemaConversation creates a database schema from a domain conversation
func NewSchemaConversation(c *chat.Conversation) *Conversation {
	return &Conversation{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
		},
		PublicID: c.PublicID,
	}
}

// EtoD converts database schema to domain conversation (Entity to Domain)
func (c *Conversation) EtoD() *chat.Conversation {
	return &chat.Conversation{
		ID:        c.ID,
		PublicID:  c.PublicID,
		CreatedAt: c.CreatedAt,
	}
}

// NewSchemaMessage creates a database schema from a domain message
func NewSchemaMessage(m *chat.Message) *Message {
	return &Message{
		BaseModel: BaseModel{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
		},
		ConversationID: m.ConversationID,
		Sender:         m.Sender,
		Text:           m.Text,
	}
}

// EtoD converts database schema to domain message (Entity to Domain)
func (m *Message) EtoD() *chat.Message {
	return &chat.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Sender:         m.Sender,
		Text:           m.Text,
		CreatedAt:      m.CreatedAt,
	}
}
