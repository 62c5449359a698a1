package memstore

import (
	"context"
	"sync"
	"time"

	"support-chat-api/internal/domain/chat"
	"support-chat-api/internal/infrastructure/metrics"
	"support-chat-api/internal/utils/platformerrors"
)

// ConversationMemoryStore is the volatile ConversationStore backend. State is
// process-lifetime scoped and lost on restart, which is acceptable when
// durability is explicitly not required. The store is owned by the pipeline
// and constructed once at process start; there is no module-level state.
type ConversationMemoryStore struct {
	mu            sync.Mutex
	nextID        uint
	conversations map[string]*chat.Conversation
	messages      map[string][]chat.Message
}

var _ chat.ConversationStore = (*ConversationMemoryStore)(nil)

func NewConversationMemoryStore() *ConversationMemoryStore {
	return &ConversationMemoryStore{
		conversations: make(map[string]*chat.Conversation),
		messages:      make(map[string][]chat.Message),
	}
}

// Exists implements chat.ConversationStore.
func (s *ConversationMemoryStore) Exists(_ context.Context, publicID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.conversations[publicID]
	return ok, nil
}

// Create implements chat.ConversationStore.
func (s *ConversationMemoryStore) Create(ctx context.Context, publicID string) (*chat.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[publicID]; ok {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeConflict,
			"conversation already exists",
			nil,
			"0a2b4c6d-8e0f-4a4c-9b6d-8f0a2c4e6b8d",
		)
	}

	s.nextID++
	conv := &chat.Conversation{
		ID:        s.nextID,
		PublicID:  publicID,
		CreatedAt: time.Now(),
	}
	s.conversations[publicID] = conv
	metrics.ConversationsCreatedTotal.Inc()

	out := *conv
	return &out, nil
}

// Append implements chat.ConversationStore.
func (s *ConversationMemoryStore) Append(ctx context.Context, publicID string, sender chat.Sender, text string) (*chat.Message, error) {
	if !sender.Valid() {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeValidation,
			"invalid message sender",
			nil,
			"6f8a0b2c-4d6e-4a8c-9e0f-8d0a2c4e6f8b",
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[publicID]
	if !ok {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"conversation not found",
			nil,
			"4c6d8e0f-2a4b-4c8e-8d0f-2b4d6f8a0c2e",
		)
	}

	s.nextID++
	msg := chat.Message{
		ID:             s.nextID,
		ConversationID: conv.ID,
		Sender:         sender,
		Text:           text,
		CreatedAt:      time.Now(),
	}
	s.messages[publicID] = append(s.messages[publicID], msg)
	metrics.MessagesRecordedTotal.WithLabelValues(string(sender)).Inc()

	out := msg
	return &out, nil
}

// History implements chat.ConversationStore. Messages are returned in
// insertion order, which matches ascending timestamp order since appends are
// serialized under the store mutex.
func (s *ConversationMemoryStore) History(_ context.Context, publicID string) ([]chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.messages[publicID]
	messages := make([]chat.Message, len(stored))
	copy(messages, stored)
	return messages, nil
}
