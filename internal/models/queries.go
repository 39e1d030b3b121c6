package models

import (
	"sort"
	"strings"
)

// The view layer derives everything it displays from a snapshot; these
// helpers are the shared read-side queries over one.

// UserByID finds a user record in a snapshot.
func UserByID(records []Record, id string) *User {
	for _, r := range records {
		if u, ok := r.(*User); ok && u.ID == id {
			return u
		}
	}
	return nil
}

// UserByUsername finds a user record by its unique username.
func UserByUsername(records []Record, username string) *User {
	for _, r := range records {
		if u, ok := r.(*User); ok && u.Username == username {
			return u
		}
	}
	return nil
}

// RecipeByID finds a recipe record in a snapshot.
func RecipeByID(records []Record, id string) *Recipe {
	for _, r := range records {
		if rec, ok := r.(*Recipe); ok && rec.ID == id {
			return rec
		}
	}
	return nil
}

// Recipes returns all recipes, newest first.
func Recipes(records []Record) []*Recipe {
	var out []*Recipe
	for _, r := range records {
		if rec, ok := r.(*Recipe); ok {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// RecipesByAuthor returns one author's recipes, newest first.
func RecipesByAuthor(records []Record, authorID string) []*Recipe {
	all := Recipes(records)
	out := all[:0]
	for _, r := range all {
		if r.AuthorID == authorID {
			out = append(out, r)
		}
	}
	return out
}

// FriendshipBetween finds the friendship pair record for two users, in either
// direction, or nil when they are not linked.
func FriendshipBetween(records []Record, a, b string) *Friendship {
	for _, r := range records {
		if f, ok := r.(*Friendship); ok && f.Involves(a, b) {
			return f
		}
	}
	return nil
}

// FriendsOf returns the users linked to the given user by an accepted
// friendship, sorted by display name.
func FriendsOf(records []Record, userID string) []*User {
	var out []*User
	for _, r := range records {
		f, ok := r.(*Friendship)
		if !ok || f.Status != FriendshipStatusAccepted {
			continue
		}
		other := f.OtherSide(userID)
		if other == "" {
			continue
		}
		if u := UserByID(records, other); u != nil {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayName() < out[j].DisplayName()
	})
	return out
}

// Conversation returns the messages between two users, oldest first.
func Conversation(records []Record, a, b string) []*Message {
	var out []*Message
	for _, r := range records {
		if m, ok := r.(*Message); ok && m.Between(a, b) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// LastMessageBetween returns the most recent message between two users, or
// nil when they never exchanged one.
func LastMessageBetween(records []Record, a, b string) *Message {
	conv := Conversation(records, a, b)
	if len(conv) == 0 {
		return nil
	}
	return conv[len(conv)-1]
}

// SearchUsers returns users whose username or display name contains the
// query, case-insensitively.
func SearchUsers(records []Record, query string) []*User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []*User
	for _, r := range records {
		u, ok := r.(*User)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.Name), q) {
			out = append(out, u)
		}
	}
	return out
}

// SearchRecipes returns recipes whose title, description, or ingredients
// contain the query, case-insensitively, newest first.
func SearchRecipes(records []Record, query string) []*Recipe {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []*Recipe
	for _, r := range Recipes(records) {
		if strings.Contains(strings.ToLower(r.Title), q) ||
			strings.Contains(strings.ToLower(r.Description), q) ||
			strings.Contains(strings.ToLower(r.Ingredients), q) {
			out = append(out, r)
		}
	}
	return out
}
