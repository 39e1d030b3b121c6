// Package views renders the UI pages. Every render function derives its
// output entirely from a record snapshot, the session state, and the current
// preferences; nothing is cached between calls.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"tastebook/internal/models"
	"tastebook/internal/session"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Context carries the non-record inputs every page needs.
type Context struct {
	Session session.State
	Prefs   map[string]any
	Theme   string
	// Query is the last search input; it lives in the view layer, not in
	// the session.
	Query string
}

// Pref reads a preference value with a fallback, so templates tolerate
// missing keys.
func (c Context) Pref(key string, fallback any) any {
	if v, ok := c.Prefs[key]; ok {
		return v
	}
	return fallback
}

// Renderer renders page fragments from the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("views").Funcs(template.FuncMap{
		"fmtTime": func(t time.Time) string { return t.Format("Jan 2, 2006 15:04") },
		// The CSS value filter rejects comma-separated font lists, so
		// preference-driven style values bypass it.
		"css": func(v any) template.CSS { return template.CSS(fmt.Sprint(v)) },
		// The URL filter rejects the data: scheme, so embedded image
		// uploads pass through only after the image-prefix check.
		"imgsrc": func(s string) template.URL {
			if strings.HasPrefix(s, "data:image/") {
				return template.URL(s)
			}
			return ""
		},
		"isDataImage": func(s string) bool { return strings.HasPrefix(s, "data:image/") },
		"lines": func(s string) []string {
			var out []string
			for _, line := range strings.Split(s, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					out = append(out, line)
				}
			}
			return out
		},
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// timelineData feeds the timeline template.
type timelineData struct {
	Ctx         Context
	CurrentUser *models.User
	Recipes     []*models.Recipe
}

// Timeline renders all recipes, newest first.
func (r *Renderer) Timeline(snapshot []models.Record, ctx Context) (string, error) {
	data := timelineData{
		Ctx:         ctx,
		CurrentUser: models.UserByID(snapshot, ctx.Session.UserID),
		Recipes:     models.Recipes(snapshot),
	}
	return r.execute("timeline.tmpl", data)
}

// profileData feeds the profile template.
type profileData struct {
	Ctx     Context
	User    *models.User
	Recipes []*models.Recipe
	Friends []*models.User
}

// Profile renders the current user's card, recipes, and friends.
func (r *Renderer) Profile(snapshot []models.Record, ctx Context) (string, error) {
	user := models.UserByID(snapshot, ctx.Session.UserID)
	data := profileData{
		Ctx:  ctx,
		User: user,
	}
	if user != nil {
		data.Recipes = models.RecipesByAuthor(snapshot, user.ID)
		data.Friends = models.FriendsOf(snapshot, user.ID)
	}
	return r.execute("profile.tmpl", data)
}

// searchData feeds the search template.
type searchData struct {
	Ctx     Context
	Users   []*models.User
	Recipes []*models.Recipe
}

// Search renders users and recipes matching the view's current query.
func (r *Renderer) Search(snapshot []models.Record, ctx Context) (string, error) {
	data := searchData{
		Ctx:     ctx,
		Users:   models.SearchUsers(snapshot, ctx.Query),
		Recipes: models.SearchRecipes(snapshot, ctx.Query),
	}
	return r.execute("search.tmpl", data)
}

// conversationEntry is one row in the conversation list.
type conversationEntry struct {
	Friend *models.User
	Last   *models.Message
	Open   bool
}

// messagesData feeds the messages template: the conversation list plus, when
// a chat partner is selected, the open transcript.
type messagesData struct {
	Ctx           Context
	Conversations []conversationEntry
	Partner       *models.User
	Transcript    []*models.Message
}

// Messages renders the conversation list and the open chat, if any.
func (r *Renderer) Messages(snapshot []models.Record, ctx Context) (string, error) {
	userID := ctx.Session.UserID
	data := messagesData{Ctx: ctx}

	for _, friend := range models.FriendsOf(snapshot, userID) {
		data.Conversations = append(data.Conversations, conversationEntry{
			Friend: friend,
			Last:   models.LastMessageBetween(snapshot, userID, friend.ID),
			Open:   friend.ID == ctx.Session.ChatPartnerID,
		})
	}

	if partnerID := ctx.Session.ChatPartnerID; partnerID != "" {
		data.Partner = models.UserByID(snapshot, partnerID)
		data.Transcript = models.Conversation(snapshot, userID, partnerID)
	}

	return r.execute("messages.tmpl", data)
}

// Auth renders the static login/register forms.
func (r *Renderer) Auth(ctx Context) (string, error) {
	return r.execute("auth.tmpl", struct{ Ctx Context }{ctx})
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var sb strings.Builder
	if err := r.tmpl.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return sb.String(), nil
}
