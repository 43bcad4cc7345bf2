package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"main/model"
	"main/utils"
)

// ConversationRepo persists chat threads and their messages.
type ConversationRepo struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

func (r *ConversationRepo) Create(ctx context.Context, conv *model.Conversation) error {
	timer := utils.TrackDBOperation("insert", "conversations")
	defer timer.ObserveDuration()

	return r.db.WithContext(ctx).Create(conv).Error
}

// GetByID returns the conversation only when it belongs to userID.
func (r *ConversationRepo) GetByID(ctx context.Context, userID string, id uint) (*model.Conversation, error) {
	timer := utils.TrackDBOperation("select", "conversations")
	defer timer.ObserveDuration()

	var conv model.Conversation
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// History returns up to limit messages of a conversation, oldest first.
func (r *ConversationRepo) History(ctx context.Context, conversationID uint, limit int) ([]*model.Message, error) {
	timer := utils.TrackDBOperation("select", "messages")
	defer timer.ObserveDuration()

	var messages []*model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *ConversationRepo) AddMessage(ctx context.Context, msg *model.Message) error {
	timer := utils.TrackDBOperation("insert", "messages")
	defer timer.ObserveDuration()

	return r.db.WithContext(ctx).Create(msg).Error
}

// Touch bumps the conversation's updated_at after an exchange.
func (r *ConversationRepo) Touch(ctx context.Context, conversationID uint) error {
	timer := utils.TrackDBOperation("update", "conversations")
	defer timer.ObserveDuration()

	return r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", conversationID).
		Update("updated_at", time.Now().UTC()).Error
}
