package models

import "time"

// FriendshipStatus represents the status of a friendship.
type FriendshipStatus string

const (
	// FriendshipStatusPending indicates a friendship awaiting acceptance.
	// The application never produces it; it exists for slots written by
	// revisions that rendered pending entries.
	FriendshipStatusPending FriendshipStatus = "pending"
	// FriendshipStatusAccepted indicates an established friendship.
	FriendshipStatusAccepted FriendshipStatus = "accepted"
)

// Friendship links two users. The pair is unordered: a friendship between A
// and B matches regardless of which side initiated it.
type Friendship struct {
	ID          string           `json:"id"`
	RequesterID string           `json:"requester_id"`
	ReceiverID  string           `json:"receiver_id"`
	Status      FriendshipStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

// RecordID implements Record.
func (f *Friendship) RecordID() string { return f.ID }

// RecordKind implements Record.
func (f *Friendship) RecordKind() Kind { return KindFriendship }

// Clone implements Record.
func (f *Friendship) Clone() Record {
	c := *f
	return &c
}

// Involves reports whether this friendship links the two given users, in
// either direction.
func (f *Friendship) Involves(a, b string) bool {
	return (f.RequesterID == a && f.ReceiverID == b) ||
		(f.RequesterID == b && f.ReceiverID == a)
}

// OtherSide returns the user on the opposite side of the pair, or "" when the
// given user is not part of it.
func (f *Friendship) OtherSide(userID string) string {
	switch userID {
	case f.RequesterID:
		return f.ReceiverID
	case f.ReceiverID:
		return f.RequesterID
	default:
		return ""
	}
}
