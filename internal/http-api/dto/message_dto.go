package dto

import (
	"time"

	"mangaist/internal/http-api/models"
)

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

type MessageResponse struct {
	ID          int64     `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Content     string    `json:"content"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConversationResponse is one derived conversation: the counterpart user,
// the most recent message exchanged with them and how many of their
// messages are still unread.
type ConversationResponse struct {
	UserID      string              `json:"user_id"`
	User        *PublicUserResponse `json:"user,omitempty"`
	LastMessage MessageResponse     `json:"last_message"`
	UnreadCount int                 `json:"unread_count"`
}

func FromModelToMessageResponse(m models.Message) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
	}
}
