package models

import "time"

// Message is a direct message between two users.
type Message struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecordID implements Record.
func (m *Message) RecordID() string { return m.ID }

// RecordKind implements Record.
func (m *Message) RecordKind() Kind { return KindMessage }

// Clone implements Record.
func (m *Message) Clone() Record {
	c := *m
	return &c
}

// Between reports whether this message belongs to the conversation between
// the two given users, in either direction.
func (m *Message) Between(a, b string) bool {
	return (m.SenderID == a && m.RecipientID == b) ||
		(m.SenderID == b && m.RecipientID == a)
}
