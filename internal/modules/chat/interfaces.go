package chat

import (
	"context"
	"io"

	"crmboard/internal/domain"
	"crmboard/internal/modules/realtime"
	"crmboard/internal/pkg/webhook"
)

type ChatRepositoryInterface interface {
	CreateConversation(ctx context.Context, conv *domain.Conversation) error
	GetConversationByID(ctx context.Context, companyID, id int64) (*domain.Conversation, error)
	GetConversationByLead(ctx context.Context, companyID, leadID int64, channelID string) (*domain.Conversation, error)
	ListConversations(ctx context.Context, companyID int64, limit, offset int) ([]domain.Conversation, error)
	AppendMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.Message, error)
	LastMessage(ctx context.Context, conversationID int64) (*domain.Message, error)
}

type LeadReader interface {
	GetByID(ctx context.Context, companyID, id int64) (*domain.Lead, error)
}

// GreetingSource provides the active auto-replies of a company.
type GreetingSource interface {
	ActiveGreetings(ctx context.Context, companyID int64) ([]domain.GreetingMessage, error)
}

// MediaUploader sends outbound attachments to the upload webhook.
type MediaUploader interface {
	UploadMedia(ctx context.Context, userID, companyID int64, filename, contentType string, size int64, file io.Reader) (*webhook.UploadResult, error)
}

type Broadcaster interface {
	Broadcast(companyID int64, event realtime.Event) int
}
