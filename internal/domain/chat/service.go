package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"support-chat-api/internal/utils/idgen"
	"support-chat-api/internal/utils/platformerrors"
)

// maxMessageLength bounds inbound message size before any persistence.
const maxMessageLength = 1000

// sessionIDLength is the random suffix length of generated session ids.
const sessionIDLength = 16

// Service is the reply pipeline: it validates input, ensures the
// conversation exists, records the user turn, builds the bounded prompt,
// invokes the model collaborator and records the reply. One pass per request;
// there is no cross-request locking and no rollback of a user turn already
// written when a later step fails.
type Service struct {
	store     ConversationStore
	completer CompletionClient
	log       zerolog.Logger
}

func NewService(store ConversationStore, completer CompletionClient, log zerolog.Logger) *Service {
	return &Service{
		store:     store,
		completer: completer,
		log:       log.With().Str("component", "chat-service").Logger(),
	}
}

// ReplyResult is the outcome of a completed pipeline pass.
type ReplyResult struct {
	Reply     string
	SessionID string
}

// ValidateMessage trims and checks an inbound message. It rejects before any
// message record is ever constructed.
func ValidateMessage(ctx context.Context, message string) (string, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "message is required and must be a non-empty string", nil,
			"c2a4f6e1-8b3d-4e5f-9a70-1d2c3b4a5e6f")
	}
	if len(message) > maxMessageLength {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "message too long (max 1000 characters)", nil,
			"f7e9d1c3-2a4b-4c6d-8e0f-9b8a7c6d5e4f")
	}
	return trimmed, nil
}

// Reply runs one pipeline pass for the given message. An empty sessionID
// triggers generation of a fresh conversation id.
func (s *Service) Reply(ctx context.Context, sessionID, message string) (*ReplyResult, error) {
	trimmed, err := ValidateMessage(ctx, message)
	if err != nil {
		return nil, err
	}

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		generated, err := idgen.GenerateSecureID("conv", sessionIDLength)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate session id")
		}
		sessionID = generated
	}

	if err := s.ensureConversation(ctx, sessionID); err != nil {
		return nil, err
	}

	// History is fetched before the user turn is appended so the new message
	// is not duplicated inside the rendered prompt.
	history, err := s.store.History(ctx, sessionID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load history")
	}

	if _, err := s.store.Append(ctx, sessionID, SenderUser, trimmed); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to record user message")
	}

	prompt := BuildPrompt(history, trimmed)

	reply, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		// The user turn stays persisted; there is no rollback.
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "model completion failed")
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeExternal, "model returned an empty completion", nil,
			"5b1e8c2d-7f4a-4d9e-b3a6-0c9d8e7f6a5b")
	}

	if _, err := s.store.Append(ctx, sessionID, SenderAI, reply); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to record reply")
	}

	return &ReplyResult{Reply: reply, SessionID: sessionID}, nil
}

// History returns the full transcript for a session. Unknown session ids are
// reported as NotFound rather than an empty transcript.
func (s *Service) History(ctx context.Context, sessionID string) ([]Message, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "session id is required", nil,
			"3d5f7a9b-1c2e-4f6a-8b0d-2e4f6a8b0c1d")
	}

	exists, err := s.store.Exists(ctx, sessionID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check conversation")
	}
	if !exists {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound, "conversation not found", nil,
			"8a0c2e4f-6b8d-4a1c-9e3f-5b7d9f1a3c5e")
	}

	return s.store.History(ctx, sessionID)
}

// ensureConversation creates the conversation when absent. Two concurrent
// first requests for the same caller-supplied id can race; the loser of the
// insert surfaces a Conflict, which is left undisturbed rather than
// serialized.
func (s *Service) ensureConversation(ctx context.Context, sessionID string) error {
	exists, err := s.store.Exists(ctx, sessionID)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check conversation")
	}
	if exists {
		return nil
	}

	if _, err := s.store.Create(ctx, sessionID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
	}
	s.log.Debug().Str("session_id", sessionID).Msg("created conversation")
	return nil
}
