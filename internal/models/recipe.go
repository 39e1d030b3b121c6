package models

import "time"

// Comment is an entry in a recipe's append-only comment list.
type Comment struct {
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// Recipe represents a posted recipe.
//
// The like count is derived from the liker set everywhere; only the set is
// authoritative. The codec writes a redundant integer into the slot for raw
// readers, and ignores it when loading.
type Recipe struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Ingredients string    `json:"ingredients"`
	Steps       string    `json:"steps"`
	Image       string    `json:"image,omitempty"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	LikedBy     IDSet     `json:"liked_by,omitempty"`
	Comments    []Comment `json:"comments,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecordID implements Record.
func (r *Recipe) RecordID() string { return r.ID }

// RecordKind implements Record.
func (r *Recipe) RecordKind() Kind { return KindRecipe }

// Clone implements Record.
func (r *Recipe) Clone() Record {
	c := *r
	c.LikedBy = r.LikedBy.Clone()
	c.Comments = append([]Comment(nil), r.Comments...)
	return &c
}

// Likes is the like count, always the size of the liker set.
func (r *Recipe) Likes() int { return len(r.LikedBy) }

// LikedByUser reports whether the given user currently likes this recipe.
func (r *Recipe) LikedByUser(userID string) bool { return r.LikedBy.Has(userID) }

// ToggleLike adds the user to the liker set, or removes them when already
// present. Returns true when the recipe is liked after the toggle.
func (r *Recipe) ToggleLike(userID string) bool {
	if r.LikedBy == nil {
		r.LikedBy = NewIDSet()
	}
	if r.LikedBy.Has(userID) {
		r.LikedBy.Remove(userID)
		return false
	}
	r.LikedBy.Add(userID)
	return true
}
