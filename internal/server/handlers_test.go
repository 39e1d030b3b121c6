package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"tastebook/internal/config"
	"tastebook/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:                 "0",
		Host:                 "127.0.0.1",
		DataDir:              t.TempDir(),
		JWTSecret:            "test-secret-used-only-in-this-test-suite",
		Env:                  "development",
		ImageMaxUploadSizeMB: 10,
		ImageMaxEdge:         256,
	}
}

func newTestApp(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	cfg := testConfig(t)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	slots, err := storage.NewWithDB(db)
	require.NoError(t, err)

	srv, err := NewServerWithDeps(context.Background(), cfg, slots)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)
	return srv, app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}

// registerUser creates an account and returns its token and id.
func registerUser(t *testing.T, app *fiber.App, username string) (token, id string) {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": "secret",
		"name":     username,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ = body["token"].(string)
	require.NotEmpty(t, token)
	user := body["user"].(map[string]any)
	return token, user["id"].(string)
}

func multipartBody(t *testing.T, fields map[string]string, fileField string, fileData []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, "upload.png")
		require.NoError(t, err)
		_, err = fw.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doMultipart(t *testing.T, app *fiber.App, method, path, token string, fields map[string]string, fileField string, fileData []byte) (*http.Response, map[string]any) {
	t.Helper()
	body, contentType := multipartBody(t, fields, fileField, fileData)
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < 8; i++ {
		img.Set(i, i, color.RGBA{R: 200, G: 80, B: 40, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestShellAndHealth(t *testing.T) {
	_, app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "/ws/screen")
	// The shell is served with the current screen already rendered in, so a
	// fresh visitor sees the auth forms before the websocket connects.
	assert.Contains(t, string(raw), `data-action="login"`)

	resp, body := doJSON(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestAuthFlow(t *testing.T) {
	_, app := newTestApp(t)

	token, _ := registerUser(t, app, "alice")

	t.Run("duplicate username rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
			"username": "alice", "password": "other",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("login with valid credentials", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "alice", "password": "secret",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("login with wrong password", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "alice", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("action routes require a token", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/nav/timeline", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp, _ = doJSON(t, app, http.MethodPost, "/api/nav/timeline", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("logout", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/logout", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRecipeLifecycle(t *testing.T) {
	srv, app := newTestApp(t)
	aliceToken, _ := registerUser(t, app, "alice")

	var recipeID string

	t.Run("create with image", func(t *testing.T) {
		resp, body := doMultipart(t, app, http.MethodPost, "/api/recipes/", aliceToken, map[string]string{
			"title":       "Shakshuka",
			"description": "Eggs poached in tomato sauce",
			"ingredients": "eggs\ntomatoes",
			"steps":       "simmer\npoach",
		}, "image", tinyPNG(t))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		recipeID = body["id"].(string)
		assert.Contains(t, body["image"], "data:image/webp;base64,")
	})

	t.Run("validation failure", func(t *testing.T) {
		resp, _ := doMultipart(t, app, http.MethodPost, "/api/recipes/", aliceToken, map[string]string{
			"title": "No ingredients",
			"steps": "mix",
		}, "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad image aborts creation", func(t *testing.T) {
		before := srv.records.Size()
		resp, _ := doMultipart(t, app, http.MethodPost, "/api/recipes/", aliceToken, map[string]string{
			"title":       "Broken",
			"ingredients": "x",
			"steps":       "x",
		}, "image", []byte("this is not an image"))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, before, srv.records.Size())
	})

	t.Run("toggle like twice", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/recipes/"+recipeID+"/like", aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(1), body["likes"])
		assert.Equal(t, true, body["liked"])

		resp, body = doJSON(t, app, http.MethodPost, "/api/recipes/"+recipeID+"/like", aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(0), body["likes"])
		assert.Equal(t, false, body["liked"])
	})

	t.Run("comment", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/recipes/"+recipeID+"/comments", aliceToken, map[string]string{
			"text": "So good",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, float64(1), body["comments"])
	})

	t.Run("only the author deletes", func(t *testing.T) {
		bobToken, _ := registerUser(t, app, "bob")
		resp, _ := doJSON(t, app, http.MethodDelete, "/api/recipes/"+recipeID, bobToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp, _ = doJSON(t, app, http.MethodDelete, "/api/recipes/"+recipeID, aliceToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = doJSON(t, app, http.MethodDelete, "/api/recipes/"+recipeID, aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestNavigateAndSearch(t *testing.T) {
	srv, app := newTestApp(t)
	token, _ := registerUser(t, app, "alice")

	t.Run("navigate to each page", func(t *testing.T) {
		for _, page := range []string{"profile", "search", "messages", "timeline"} {
			resp, body := doJSON(t, app, http.MethodPost, "/api/nav/"+page, token, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, page, body["page"])
		}
	})

	t.Run("unknown page rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/nav/dashboard", token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("search lands on the search page", func(t *testing.T) {
		_, body := doMultipart(t, app, http.MethodPost, "/api/recipes/", token, map[string]string{
			"title": "Garlic Soup", "ingredients": "garlic", "steps": "boil",
		}, "", nil)
		require.NotNil(t, body["id"])

		resp, result := doJSON(t, app, http.MethodGet, "/api/search?q=garlic", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(1), result["recipes"])
		assert.Equal(t, float64(0), result["users"])
		assert.Equal(t, "search", string(srv.session.Snapshot().Page))
	})
}

func TestFriendsAndMessages(t *testing.T) {
	_, app := newTestApp(t)
	aliceToken, aliceID := registerUser(t, app, "alice")
	bobToken, bobID := registerUser(t, app, "bob")

	t.Run("add friend", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/friends/"+bobID, aliceToken, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "accepted", body["status"])
	})

	t.Run("list friends", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/api/friends", aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		friends, ok := body["friends"].([]any)
		require.True(t, ok)
		require.Len(t, friends, 1)
		friend, ok := friends[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, bobID, friend["id"])
		assert.Equal(t, "bob", friend["username"])
	})

	t.Run("duplicate pair rejected either direction", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/friends/"+aliceID, bobToken, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("self friendship rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/friends/"+aliceID, aliceToken, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("open chat and send", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/chat/"+bobID, aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := doJSON(t, app, http.MethodPost, "/api/messages/"+bobID, aliceToken, map[string]string{
			"text": "dinner at 7?",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "dinner at 7?", body["text"])
	})

	t.Run("empty message rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/messages/"+bobID, aliceToken, map[string]string{
			"text": "   ",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("chat with unknown user", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/chat/ghost", aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestProfilePreferencesThemeReset(t *testing.T) {
	srv, app := newTestApp(t)
	token, _ := registerUser(t, app, "alice")

	t.Run("update profile", func(t *testing.T) {
		resp, body := doMultipart(t, app, http.MethodPut, "/api/profile", token, map[string]string{
			"name": "Alice Baker",
			"bio":  "I cook.",
		}, "avatar", tinyPNG(t))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Alice Baker", body["name"])
	})

	t.Run("update preferences", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPut, "/api/preferences", token, map[string]any{
			"font_size": 20,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(20), body["font_size"])
		// other keys survive a partial update
		assert.NotEmpty(t, body["site_title"])
	})

	t.Run("empty preference update rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPut, "/api/preferences", token, map[string]any{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("theme toggles and persists", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/theme/toggle", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "dark", body["theme"])

		resp, body = doJSON(t, app, http.MethodPost, "/api/theme/toggle", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "light", body["theme"])
	})

	t.Run("reset empties the store", func(t *testing.T) {
		require.Greater(t, srv.records.Size(), 0)
		resp, _ := doJSON(t, app, http.MethodPost, "/api/reset", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 0, srv.records.Size())
	})
}
