package views

import (
	"testing"
	"time"

	"tastebook/internal/models"
	"tastebook/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func loggedIn(userID string, page session.Page) Context {
	return Context{
		Session: session.State{UserID: userID, Page: page},
		Prefs:   map[string]any{"site_title": "Tastebook", "font_size": 16},
		Theme:   "light",
	}
}

const testImageURL = "data:image/webp;base64,UklGRhoAAABXRUJQ"

func testSnapshot() []models.Record {
	created := time.Date(2026, 2, 10, 18, 0, 0, 0, time.UTC)
	return []models.Record{
		&models.User{ID: "u1", Username: "alice", Name: "Alice", Bio: "I cook.", Avatar: testImageURL},
		&models.User{ID: "u2", Username: "bob", Name: "Bob"},
		&models.Recipe{
			ID: "r1", Title: "Shakshuka", AuthorID: "u1", AuthorName: "Alice",
			Ingredients: "eggs\ntomatoes", Steps: "simmer\npoach",
			Image:       testImageURL,
			LikedBy:   models.NewIDSet("u2"),
			Comments:  []models.Comment{{AuthorID: "u2", AuthorName: "Bob", Text: "Great!", CreatedAt: created}},
			CreatedAt: created,
		},
		&models.Friendship{ID: "f1", RequesterID: "u1", ReceiverID: "u2", Status: models.FriendshipStatusAccepted},
		&models.Message{ID: "m1", SenderID: "u1", RecipientID: "u2", Text: "try my shakshuka", CreatedAt: created},
	}
}

func TestRenderer_Timeline(t *testing.T) {
	t.Parallel()
	r := testRenderer(t)

	html, err := r.Timeline(testSnapshot(), loggedIn("u1", session.PageTimeline))
	require.NoError(t, err)

	assert.Contains(t, html, "Shakshuka")
	assert.Contains(t, html, "by Alice")
	assert.Contains(t, html, "❤️ 1")
	assert.Contains(t, html, "Great!")
	// embedded image data survives the URL attribute context
	assert.Contains(t, html, `<img src="`+testImageURL+`"`)
	assert.NotContains(t, html, "ZgotmplZ")
	assert.Contains(t, html, `data-action="create-recipe"`)
	// chrome nav is present for a logged-in session
	assert.Contains(t, html, `data-nav="messages"`)
}

func TestRenderer_TimelineEmpty(t *testing.T) {
	t.Parallel()
	r := testRenderer(t)

	html, err := r.Timeline(nil, loggedIn("u1", session.PageTimeline))
	require.NoError(t, err)
	assert.Contains(t, html, "No recipes yet")
}

func TestRenderer_Profile(t *testing.T) {
	t.Parallel()
	r := testRenderer(t)

	html, err := r.Profile(testSnapshot(), loggedIn("u1", session.PageProfile))
	require.NoError(t, err)

	assert.Contains(t, html, "@alice")
	assert.Contains(t, html, "I cook.")
	// an uploaded avatar renders as an image, not inline text
	assert.Contains(t, html, `<img class="avatar" src="`+testImageURL+`"`)
	assert.NotContains(t, html, "ZgotmplZ")
	assert.Contains(t, html, "Friends (1)")
	assert.Contains(t, html, "Shakshuka")
	assert.Contains(t, html, `data-action="delete-recipe"`)
}

func TestRenderer_Search(t *testing.T) {
	t.Parallel()
	r := testRenderer(t)

	t.Run("with matches", func(t *testing.T) {
		t.Parallel()
		ctx := loggedIn("u1", session.PageSearch)
		ctx.Query = "bob"
		html, err := r.Search(testSnapshot(), ctx)
		require.NoError(t, err)
		assert.Contains(t, html, "@bob")
		// emoji avatars stay inline text
		assert.Contains(t, html, `<span class="avatar">`+models.DefaultAvatar+`</span>`)
		assert.Contains(t, html, `data-action="add-friend"`)
		assert.Contains(t, html, "No recipes match")
	})

	t.Run("empty query shows no result sections", func(t *testing.T) {
		t.Parallel()
		html, err := r.Search(testSnapshot(), loggedIn("u1", session.PageSearch))
		require.NoError(t, err)
		assert.NotContains(t, html, "results-users")
	})
}

func TestRenderer_Messages(t *testing.T) {
	t.Parallel()
	r := testRenderer(t)

	t.Run("conversation list only", func(t *testing.T) {
		t.Parallel()
		html, err := r.Messages(testSnapshot(), loggedIn("u1", session.PageMessages))
		require.NoError(t, err)
		assert.Contains(t, html, "Bob")
		assert.Contains(t, html, "try my shakshuka")
		assert.NotContains(t, html, "Chat with")
	})

	t.Run("open transcript", func(t *testing.T) {
		t.Parallel()
		ctx := loggedIn("u1", session.PageMessages)
		ctx.Session.ChatPartnerID = "u2"
		html, err := r.Messages(testSnapshot(), ctx)
		require.NoError(t, err)
		assert.Contains(t, html, "Chat with Bob")
		assert.Contains(t, html, `data-action="send-message"`)
		assert.Contains(t, html, `class="message mine"`)
	})
}

func TestRenderer_Auth(t *testing.T) {
	t.Parallel()
	r := testRenderer(t)

	html, err := r.Auth(Context{Prefs: map[string]any{"site_title": "Tastebook"}, Theme: "light"})
	require.NoError(t, err)

	assert.Contains(t, html, `data-action="login"`)
	assert.Contains(t, html, `data-action="register"`)
	// no nav chrome before login
	assert.NotContains(t, html, `data-nav="timeline"`)
}

func TestRenderer_PrefsDriveChrome(t *testing.T) {
	t.Parallel()
	r := testRenderer(t)

	ctx := loggedIn("u1", session.PageTimeline)
	ctx.Prefs = map[string]any{
		"site_title": "Nonna's Kitchen",
		"font_size":  20,
		"font_family": "Courier, monospace",
	}
	html, err := r.Timeline(testSnapshot(), ctx)
	require.NoError(t, err)

	assert.Contains(t, html, "Nonna&#39;s Kitchen")
	assert.Contains(t, html, "font-size: 20px")
	assert.Contains(t, html, "Courier, monospace")
}
