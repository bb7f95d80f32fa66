package chat

import (
	"context"
	"io"
	"strings"

	"crmboard/internal/domain"
	"crmboard/internal/modules/realtime"
)

// Service owns conversations and their append-only message log. Inbound
// messages arrive through the API-token ingress; outbound ones are sent
// by users. Both directions are pushed to the company's websocket
// clients.
type Service struct {
	chats     ChatRepositoryInterface
	leads     LeadReader
	greetings GreetingSource
	uploader  MediaUploader
	events    Broadcaster
}

func NewService(chats ChatRepositoryInterface, leads LeadReader, greetings GreetingSource, uploader MediaUploader, events Broadcaster) *Service {
	return &Service{chats: chats, leads: leads, greetings: greetings, uploader: uploader, events: events}
}

// GetOrCreateConversation returns the lead's conversation on a channel,
// creating it on first contact.
func (s *Service) GetOrCreateConversation(ctx context.Context, companyID, leadID int64, channelID string) (*domain.Conversation, error) {
	lead, err := s.leads.GetByID(ctx, companyID, leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}

	conv, err := s.chats.GetConversationByLead(ctx, companyID, leadID, channelID)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}

	conv = &domain.Conversation{
		CompanyID: companyID,
		LeadID:    leadID,
		ChannelID: channelID,
	}
	if err := s.chats.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// ListConversations returns the company's conversations newest-activity
// first, each with its last message attached.
func (s *Service) ListConversations(ctx context.Context, companyID int64, q ListQuery) ([]domain.Conversation, error) {
	convs, err := s.chats.ListConversations(ctx, companyID, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	for i := range convs {
		last, err := s.chats.LastMessage(ctx, convs[i].ID)
		if err != nil {
			return nil, err
		}
		convs[i].LastMessage = last
	}
	return convs, nil
}

func (s *Service) ListMessages(ctx context.Context, companyID, conversationID int64, q ListQuery) ([]domain.Message, error) {
	conv, err := s.chats.GetConversationByID(ctx, companyID, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	return s.chats.ListMessages(ctx, conversationID, q.Limit, q.Offset)
}

// SendMessage appends an outbound text message from a user.
func (s *Service) SendMessage(ctx context.Context, companyID, conversationID int64, req SendMessageRequest) (*domain.Message, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, ErrEmptyMessage
	}
	conv, err := s.chats.GetConversationByID(ctx, companyID, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		Direction:      domain.DirectionOut,
		Type:           messageType(req.Type),
		Body:           req.Body,
	}
	if err := s.chats.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}
	s.push(companyID, conv.ID, msg)
	return msg, nil
}

// SendMedia uploads the attachment through the media webhook first and
// appends the outbound message with the returned URL.
func (s *Service) SendMedia(ctx context.Context, userID, companyID, conversationID int64, filename, contentType string, size int64, file io.Reader, caption string) (*domain.Message, error) {
	conv, err := s.chats.GetConversationByID(ctx, companyID, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	uploaded, err := s.uploader.UploadMedia(ctx, userID, companyID, filename, contentType, size, file)
	if err != nil {
		return nil, ErrUploadFailed
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		Direction:      domain.DirectionOut,
		Type:           mediaType(contentType),
		Body:           caption,
		MediaURL:       &uploaded.URL,
	}
	if err := s.chats.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}
	s.push(companyID, conv.ID, msg)
	return msg, nil
}

// ReceiveInbound stores a message written by the lead and fires any
// matching greeting auto-reply.
func (s *Service) ReceiveInbound(ctx context.Context, companyID int64, req InboundMessageRequest) (*domain.Message, error) {
	conv, err := s.GetOrCreateConversation(ctx, companyID, req.LeadID, req.ChannelID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		Direction:      domain.DirectionIn,
		Type:           messageType(req.Type),
		Body:           req.Body,
	}
	if req.MediaURL != "" {
		msg.MediaURL = &req.MediaURL
	}
	if err := s.chats.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}
	s.push(companyID, conv.ID, msg)

	if err := s.autoReply(ctx, companyID, conv.ID, req.Body); err != nil {
		return nil, err
	}
	return msg, nil
}

// autoReply appends the first active greeting whose trigger appears in
// the inbound text.
func (s *Service) autoReply(ctx context.Context, companyID, conversationID int64, inbound string) error {
	greetings, err := s.greetings.ActiveGreetings(ctx, companyID)
	if err != nil {
		return err
	}

	lowered := strings.ToLower(inbound)
	for _, g := range greetings {
		if g.Trigger == "" || !strings.Contains(lowered, strings.ToLower(g.Trigger)) {
			continue
		}
		reply := &domain.Message{
			ConversationID: conversationID,
			Direction:      domain.DirectionOut,
			Type:           domain.MessageTypeText,
			Body:           g.Body,
			MediaURL:       g.MediaURL,
		}
		if err := s.chats.AppendMessage(ctx, reply); err != nil {
			return err
		}
		s.push(companyID, conversationID, reply)
		return nil
	}
	return nil
}

func (s *Service) push(companyID, conversationID int64, msg *domain.Message) {
	if s.events == nil {
		return
	}
	s.events.Broadcast(companyID, realtime.Event{
		Type: "chat.message",
		Payload: map[string]any{
			"conversation_id": conversationID,
			"message":         msg,
		},
	})
}

func messageType(t string) domain.MessageType {
	if t == "" {
		return domain.MessageTypeText
	}
	return domain.MessageType(t)
}

func mediaType(contentType string) domain.MessageType {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return domain.MessageTypeImage
	case strings.HasPrefix(contentType, "audio/"):
		return domain.MessageTypeAudio
	default:
		return domain.MessageTypeDocument
	}
}
