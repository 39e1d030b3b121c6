package service

import (
	"context"
	"time"

	"tastebook/internal/models"

	"github.com/google/uuid"
)

// FriendService handles friendship pairs.
type FriendService struct {
	store Store
}

// NewFriendService creates a FriendService over the given store.
func NewFriendService(store Store) *FriendService {
	return &FriendService{store: store}
}

// AddFriend links two users. Friendships are created pre-accepted; the pair
// is unordered, so an existing link in either direction blocks a duplicate.
func (s *FriendService) AddFriend(ctx context.Context, userID, friendID string) (*models.Friendship, error) {
	if userID == friendID {
		return nil, models.NewValidationError("Cannot befriend yourself")
	}

	snapshot := s.store.Snapshot()
	if models.UserByID(snapshot, userID) == nil {
		return nil, models.NewNotFoundError("user", userID)
	}
	if models.UserByID(snapshot, friendID) == nil {
		return nil, models.NewNotFoundError("user", friendID)
	}
	if models.FriendshipBetween(snapshot, userID, friendID) != nil {
		return nil, models.NewValidationError("Already friends")
	}

	friendship := &models.Friendship{
		ID:          uuid.NewString(),
		RequesterID: userID,
		ReceiverID:  friendID,
		Status:      models.FriendshipStatusAccepted,
		CreatedAt:   time.Now(),
	}
	if _, err := s.store.Create(ctx, friendship); err != nil {
		return nil, err
	}
	return friendship, nil
}
