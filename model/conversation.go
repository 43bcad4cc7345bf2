package model

import "time"

// Conversation groups the chat messages of one assistant thread.
type Conversation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"index;not null" json:"conversation_id"`
	UserID         string    `gorm:"size:36;not null" json:"user_id"`
	Role           string    `gorm:"size:20;not null" json:"role"` // user or assistant
	Content        string    `gorm:"size:4000;not null" json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
