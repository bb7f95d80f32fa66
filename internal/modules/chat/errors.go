package chat

import "errors"

var (
	ErrLeadNotFound         = errors.New("lead not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyMessage         = errors.New("message needs a body or media")
	ErrUploadFailed         = errors.New("media upload failed")
)
