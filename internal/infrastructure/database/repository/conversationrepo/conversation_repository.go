package conversationrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"support-chat-api/internal/domain/chat"
	"support-chat-api/internal/infrastructure/database/dbschema"
	"support-chat-api/internal/infrastructure/metrics"
	"support-chat-api/internal/utils/platformerrors"
)

// ConversationGormRepository is the durable ConversationStore backend.
// Transcripts survive process restarts.
type ConversationGormRepository struct {
	db *gorm.DB
}

var _ chat.ConversationStore = (*ConversationGormRepository)(nil)

func NewConversationGormRepository(db *gorm.DB) *ConversationGormRepository {
	return &ConversationGormRepository{db: db}
}

// Exists implements chat.ConversationStore.
func (repo *ConversationGormRepository) Exists(ctx context.Context, publicID string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Conversation{}).
		Where("public_id = ?", publicID).
		Count(&count).Error
	if err != nil {
		return false, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to check conversation existence",
			err,
			"6b8d0f2a-4c6e-4f8a-9b1d-3e5f7a9c1e3b",
		)
	}
	return count > 0, nil
}

// Create implements chat.ConversationStore.
func (repo *ConversationGormRepository) Create(ctx context.Context, publicID string) (*chat.Conversation, error) {
	entity := dbschema.NewSchemaConversation(&chat.Conversation{PublicID: publicID})
	err := repo.db.WithContext(ctx).Create(entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"conversation already exists",
				err,
				"1d3f5a7b-9c0e-4a2c-8d4f-6a8b0c2d4e6f",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create conversation",
			err,
			"7c9e1a3b-5d7f-4b9d-8e0a-2c4d6e8f0a2b",
		)
	}
	metrics.ConversationsCreatedTotal.Inc()
	return entity.EtoD(), nil
}

// Append implements chat.ConversationStore.
func (repo *ConversationGormRepository) Append(ctx context.Context, publicID string, sender chat.Sender, text string) (*chat.Message, error) {
	if !sender.Valid() {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeValidation,
			"invalid message sender",
			nil,
			"0e2f4a6b-8c0d-4e2f-9a4b-6c8d0e2f4a6c",
		)
	}

	conv, err := repo.findByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	entity := dbschema.NewSchemaMessage(&chat.Message{
		ConversationID: conv.ID,
		Sender:         sender,
		Text:           text,
	})
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to append message",
			err,
			"3e5f7a9b-1d3c-4e6f-8a0b-4c6d8e0f2a4c",
		)
	}
	metrics.MessagesRecordedTotal.WithLabelValues(string(sender)).Inc()
	return entity.EtoD(), nil
}

// History implements chat.ConversationStore.
func (repo *ConversationGormRepository) History(ctx context.Context, publicID string) ([]chat.Message, error) {
	var entity dbschema.Conversation
	err := repo.db.WithContext(ctx).Where("public_id = ?", publicID).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Read paths tolerate absence: unknown ids yield an empty
			// transcript, not an error.
			return []chat.Message{}, nil
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find conversation",
			err,
			"9a1b3c5d-7e9f-4c1e-8b3d-5f7a9b1c3d5e",
		)
	}

	var rows []dbschema.Message
	err = repo.db.WithContext(ctx).
		Where("conversation_id = ?", entity.ID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to load history",
			err,
			"5c7d9e1f-3a5b-4d7f-9c1e-7b9d1f3a5c7e",
		)
	}

	messages := make([]chat.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, *row.EtoD())
	}
	return messages, nil
}

func (repo *ConversationGormRepository) findByPublicID(ctx context.Context, publicID string) (*chat.Conversation, error) {
	var entity dbschema.Conversation
	err := repo.db.WithContext(ctx).Where("public_id = ?", publicID).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				"conversation not found",
				err,
				"2b4c6d8e-0f2a-4b6d-8c0e-4a6b8c0d2e4f",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find conversation",
			err,
			"8d0e2f4a-6b8c-4e0a-9d2f-6c8e0a2b4d6f",
		)
	}
	return entity.EtoD(), nil
}
