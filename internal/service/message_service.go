package service

import (
	"context"
	"strings"
	"time"

	"tastebook/internal/models"

	"github.com/google/uuid"
)

// MessageService handles direct messages.
type MessageService struct {
	store Store
}

// NewMessageService creates a MessageService over the given store.
func NewMessageService(store Store) *MessageService {
	return &MessageService{store: store}
}

// SendInput is the payload for sending a direct message.
type SendInput struct {
	SenderID    string
	RecipientID string
	Text        string
}

const maxMessageLen = 1000

// Send delivers a direct message. Empty text is rejected before any store
// mutation.
func (s *MessageService) Send(ctx context.Context, in SendInput) (*models.Message, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Message text is required")
	}
	if len(text) > maxMessageLen {
		return nil, models.NewValidationError("Message too long (max 1000 characters)")
	}
	if in.SenderID == in.RecipientID {
		return nil, models.NewValidationError("Cannot message yourself")
	}

	snapshot := s.store.Snapshot()
	if models.UserByID(snapshot, in.SenderID) == nil {
		return nil, models.NewNotFoundError("user", in.SenderID)
	}
	if models.UserByID(snapshot, in.RecipientID) == nil {
		return nil, models.NewNotFoundError("user", in.RecipientID)
	}

	msg := &models.Message{
		ID:          uuid.NewString(),
		SenderID:    in.SenderID,
		RecipientID: in.RecipientID,
		Text:        text,
		CreatedAt:   time.Now(),
	}
	if _, err := s.store.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
