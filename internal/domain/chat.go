package domain

import "time"

type MessageDirection string

const (
	DirectionIn  MessageDirection = "in"
	DirectionOut MessageDirection = "out"
)

type MessageType string

const (
	MessageTypeText     MessageType = "text"
	MessageTypeImage    MessageType = "image"
	MessageTypeAudio    MessageType = "audio"
	MessageTypeDocument MessageType = "document"
)

// Conversation pairs a lead with one messaging-channel instance.
type Conversation struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	CompanyID int64  `json:"company_id" gorm:"not null;index"`
	LeadID    int64  `json:"lead_id" gorm:"not null;index"`
	ChannelID string `json:"channel_id"`

	// Used to sort the conversation list, newest first.
	LastMessageAt time.Time `json:"last_message_at" gorm:"default:CURRENT_TIMESTAMP"`
	CreatedAt     time.Time `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`

	// Filled by the service, not stored.
	Lead        *Lead    `json:"lead,omitempty" gorm:"-"`
	LastMessage *Message `json:"last_message,omitempty" gorm:"-"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// Message is append-only: there is no update or delete operation for it.
type Message struct {
	ID             int64            `json:"id" gorm:"primaryKey"`
	ConversationID int64            `json:"conversation_id" gorm:"not null;index"`
	Direction      MessageDirection `json:"direction" gorm:"not null"`
	Type           MessageType      `json:"type" gorm:"default:'text'"`
	Body           string           `json:"body" gorm:"type:text"`
	MediaURL       *string          `json:"media_url,omitempty"`
	CreatedAt      time.Time        `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`
}

func (Message) TableName() string {
	return "messages"
}
