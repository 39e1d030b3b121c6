package models

import "time"

// DefaultAvatar is shown for accounts that never picked an avatar.
const DefaultAvatar = "🧑‍🍳"

// User represents a registered account.
//
// The password is stored and compared in plaintext: this application is a
// single-user local tool and authentication hardening is explicitly out of
// scope for it.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordID implements Record.
func (u *User) RecordID() string { return u.ID }

// RecordKind implements Record.
func (u *User) RecordKind() Kind { return KindUser }

// Clone implements Record.
func (u *User) Clone() Record {
	c := *u
	return &c
}

// DisplayName falls back to the username when no display name was set.
func (u *User) DisplayName() string {
	if u.Name == "" {
		return u.Username
	}
	return u.Name
}

// DisplayAvatar falls back to the placeholder emoji.
func (u *User) DisplayAvatar() string {
	if u.Avatar == "" {
		return DefaultAvatar
	}
	return u.Avatar
}
