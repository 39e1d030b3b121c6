// Package session holds the transient, non-persisted session state: who is
// logged in, which page is active, and which chat partner is selected.
package session

import (
	"fmt"
	"sync"
)

// Page identifies a UI page.
type Page string

const (
	// PageAuth shows the static login/register forms.
	PageAuth Page = "auth"
	// PageTimeline shows all recipes, newest first.
	PageTimeline Page = "timeline"
	// PageProfile shows the current user's card and recipes.
	PageProfile Page = "profile"
	// PageSearch shows user and recipe search.
	PageSearch Page = "search"
	// PageMessages shows the conversation list and the open chat.
	PageMessages Page = "messages"
)

// Valid reports whether p names a known page.
func (p Page) Valid() bool {
	switch p {
	case PageAuth, PageTimeline, PageProfile, PageSearch, PageMessages:
		return true
	}
	return false
}

// State is a point-in-time copy of the session.
type State struct {
	UserID        string
	Page          Page
	ChatPartnerID string
}

// LoggedIn reports whether a user is authenticated in this session.
func (s State) LoggedIn() bool { return s.UserID != "" }

// Controller owns the session state and the page navigation machine.
// Initial state is the auth page with no user.
type Controller struct {
	mu            sync.Mutex
	userID        string
	page          Page
	chatPartnerID string
	generation    uint64
}

// NewController creates a controller in the initial auth state.
func NewController() *Controller {
	return &Controller{page: PageAuth}
}

// Login sets the current user and bumps the session generation.
func (c *Controller) Login(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = userID
	c.generation++
}

// Logout returns to the auth page and clears the session identifiers.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = ""
	c.chatPartnerID = ""
	c.page = PageAuth
	c.generation++
}

// Navigate transitions to the named page. Any page other than auth requires a
// logged-in user.
func (c *Controller) Navigate(p Page) error {
	if !p.Valid() {
		return fmt.Errorf("unknown page %q", p)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if p != PageAuth && c.userID == "" {
		return fmt.Errorf("page %q requires a logged-in user", p)
	}
	c.page = p
	c.generation++
	return nil
}

// SelectChatPartner sets the open conversation partner.
func (c *Controller) SelectChatPartner(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chatPartnerID = userID
	c.generation++
}

// CurrentUser returns the logged-in user id, or "".
func (c *Controller) CurrentUser() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}

// Snapshot returns a copy of the session state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		UserID:        c.userID,
		Page:          c.page,
		ChatPartnerID: c.chatPartnerID,
	}
}

// Generation is a counter bumped on every session change. Long-running work
// captures it before starting and discards its result when the session moved
// underneath it (e.g. a stale image resize finishing after logout).
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}
