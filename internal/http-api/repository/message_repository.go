package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mangaist/internal/http-api/models"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	// ListInvolving returns every message sent or received by the user,
	// newest first. Conversation grouping happens in the service layer.
	ListInvolving(ctx context.Context, userID string) ([]models.Message, error)
	ListBetween(ctx context.Context, userID, otherID string) ([]models.Message, error)
	// MarkRead flags every unread message from sender to recipient as read.
	MarkRead(ctx context.Context, recipientID, senderID string) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (r *messageRepository) ListInvolving(ctx context.Context, userID string) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at desc").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (r *messageRepository) ListBetween(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at asc").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, recipientID, senderID string) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND read = ?", recipientID, senderID, false).
		Update("read", true).Error; err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}
