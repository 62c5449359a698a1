package memstore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"support-chat-api/internal/domain/chat"
	"support-chat-api/internal/utils/platformerrors"
)

func TestCreateAndExists(t *testing.T) {
	store := NewConversationMemoryStore()
	ctx := context.Background()

	exists, err := store.Exists(ctx, "sess-1")
	if err != nil || exists {
		t.Fatalf("Exists() = %v, %v; want false, nil", exists, err)
	}

	conv, err := store.Create(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if conv.PublicID != "sess-1" || conv.CreatedAt.IsZero() {
		t.Errorf("unexpected conversation: %+v", conv)
	}

	exists, err = store.Exists(ctx, "sess-1")
	if err != nil || !exists {
		t.Fatalf("Exists() after create = %v, %v; want true, nil", exists, err)
	}
}

func TestCreateTwiceConflicts(t *testing.T) {
	store := NewConversationMemoryStore()
	ctx := context.Background()

	if _, err := store.Create(ctx, "sess-1"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, err := store.Create(ctx, "sess-1")
	if !platformerrors.IsType(err, platformerrors.ErrorTypeConflict) {
		t.Fatalf("second Create() error = %v, want conflict", err)
	}
}

func TestAppendUnknownConversation(t *testing.T) {
	store := NewConversationMemoryStore()

	_, err := store.Append(context.Background(), "ghost", chat.SenderUser, "hello")
	if !platformerrors.IsType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("Append() error = %v, want not found", err)
	}
}

func TestAppendRejectsUnknownSender(t *testing.T) {
	store := NewConversationMemoryStore()
	ctx := context.Background()

	if _, err := store.Create(ctx, "sess-1"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, err := store.Append(ctx, "sess-1", chat.Sender("system"), "hello")
	if !platformerrors.IsType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("Append() error = %v, want validation", err)
	}

	history, err := store.History(ctx, "sess-1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("len(history) = %d, want 0 after rejected append", len(history))
	}
}

func TestHistoryOrderAndRoundTrip(t *testing.T) {
	store := NewConversationMemoryStore()
	ctx := context.Background()

	if _, err := store.Create(ctx, "sess-1"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var ids []uint
	for i := 0; i < 10; i++ {
		sender := chat.SenderUser
		if i%2 == 1 {
			sender = chat.SenderAI
		}
		msg, err := store.Append(ctx, "sess-1", sender, fmt.Sprintf("turn %d", i))
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		ids = append(ids, msg.ID)
	}

	history, err := store.History(ctx, "sess-1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 10 {
		t.Fatalf("expected 10 messages, got %d", len(history))
	}
	for i, msg := range history {
		if msg.Text != fmt.Sprintf("turn %d", i) {
			t.Errorf("message %d out of order: %q", i, msg.Text)
		}
		if msg.ID != ids[i] {
			t.Errorf("message %d id mismatch", i)
		}
	}
}

func TestHistoryUnknownConversationIsEmpty(t *testing.T) {
	store := NewConversationMemoryStore()

	history, err := store.History(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(history))
	}
}

func TestMessageIDsNeverCollide(t *testing.T) {
	store := NewConversationMemoryStore()
	ctx := context.Background()

	if _, err := store.Create(ctx, "sess-1"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	const workers = 8
	const perWorker = 100

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := store.Append(ctx, "sess-1", chat.SenderUser, "x"); err != nil {
					t.Errorf("Append() error = %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	history, err := store.History(ctx, "sess-1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	seen := make(map[uint]bool, len(history))
	for _, msg := range history {
		if seen[msg.ID] {
			t.Fatalf("duplicate message id %d", msg.ID)
		}
		seen[msg.ID] = true
	}
	if len(history) != workers*perWorker {
		t.Fatalf("expected %d messages, got %d", workers*perWorker, len(history))
	}
}
