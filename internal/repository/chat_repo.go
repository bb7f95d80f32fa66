package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"crmboard/internal/domain"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

func (r *ChatRepository) GetConversationByID(ctx context.Context, companyID, id int64) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &conv, err
}

// GetConversationByLead finds the conversation of a lead on one channel.
func (r *ChatRepository) GetConversationByLead(ctx context.Context, companyID, leadID int64, channelID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND lead_id = ? AND channel_id = ?", companyID, leadID, channelID).
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &conv, err
}

// ListConversations is ordered by most recent activity first.
func (r *ChatRepository) ListConversations(ctx context.Context, companyID int64, limit, offset int) ([]domain.Conversation, error) {
	var out []domain.Conversation
	q := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("last_message_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&out).Error
	return out, err
}

// AppendMessage inserts a message and bumps the conversation's
// last_message_at. Messages are never updated or deleted.
func (r *ChatRepository) AppendMessage(ctx context.Context, msg *domain.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Update("last_message_at", time.Now()).Error
	})
}

func (r *ChatRepository) ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.Message, error) {
	var out []domain.Message
	q := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *ChatRepository) LastMessage(ctx context.Context, conversationID int64) (*domain.Message, error) {
	var m domain.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &m, err
}
