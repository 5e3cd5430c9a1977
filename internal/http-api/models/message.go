package models

import "time"

// Message is a direct message between two users. Conversations are derived,
// not stored: messages are grouped per counterpart at read time.
type Message struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID    string    `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID string    `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Content     string    `gorm:"not null;type:text" json:"content"`
	Read        bool      `gorm:"default:false" json:"read"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
