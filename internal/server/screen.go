package server

import (
	"sync"
	"time"

	"tastebook/internal/models"
	"tastebook/internal/observability"
	"tastebook/internal/session"
	"tastebook/internal/views"

	"github.com/gofiber/websocket/v2"
)

// Screen is the single record-store observer. On every notification it
// replaces its cached snapshot, re-renders whichever page is currently
// active, and pushes the rendered HTML to every connected browser tab. Pages
// that are not active are not re-rendered; a burst of N writes produces N
// renders of the active page.
type Screen struct {
	mu       sync.Mutex
	renderer *views.Renderer
	session  *session.Controller
	logger   *observability.ScreenLogger

	snapshot []models.Record
	prefs    map[string]any
	theme    string
	query    string

	current  string
	authHTML string

	clients map[*websocket.Conn]struct{}
}

// NewScreen creates a screen in the initial auth state.
func NewScreen(renderer *views.Renderer, sess *session.Controller, theme string) *Screen {
	s := &Screen{
		renderer: renderer,
		session:  sess,
		logger:   observability.NewScreenLogger(),
		theme:    theme,
		prefs:    map[string]any{},
		clients:  map[*websocket.Conn]struct{}{},
	}
	s.mu.Lock()
	s.renderAuthLocked()
	s.current = s.authHTML
	s.mu.Unlock()
	return s
}

// RecordsChanged implements store.Observer.
func (s *Screen) RecordsChanged(snapshot []models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
	s.renderLocked()
}

// PreferencesChanged implements the preference store's change callback. The
// static auth page depends on the chrome, so it is re-rendered here as well.
func (s *Screen) PreferencesChanged(values map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = values
	s.renderAuthLocked()
	s.renderLocked()
}

// SetTheme swaps the theme flag and repaints.
func (s *Screen) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	s.renderAuthLocked()
	s.renderLocked()
}

// SetQuery stores the search input and repaints when the search page is
// active.
func (s *Screen) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
	s.renderLocked()
}

// Refresh re-renders the active page after a session change (navigation,
// chat selection, login, logout).
func (s *Screen) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderLocked()
}

// Current returns the rendered HTML of the active page.
func (s *Screen) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Theme returns the current theme flag.
func (s *Screen) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Attach registers a browser tab and immediately sends it the current page.
func (s *Screen) Attach(conn *websocket.Conn) {
	s.mu.Lock()
	s.clients[conn] = struct{}{}
	// The initial send stays under the lock: a broadcast must not write to
	// the same connection concurrently.
	_ = conn.WriteMessage(websocket.TextMessage, []byte(s.current))
	s.mu.Unlock()

	observability.ScreenConnections.Inc()
	s.logger.LogConnect(conn.RemoteAddr().String())
}

// Detach removes a browser tab.
func (s *Screen) Detach(conn *websocket.Conn, reason string) {
	s.mu.Lock()
	_, ok := s.clients[conn]
	delete(s.clients, conn)
	s.mu.Unlock()

	if ok {
		observability.ScreenConnections.Dec()
		s.logger.LogDisconnect(conn.RemoteAddr().String(), reason)
	}
}

// renderLocked re-renders the active page and pushes it. Entering the auth
// page triggers no fresh render: the forms are static and the cached markup
// is reused.
func (s *Screen) renderLocked() {
	st := s.session.Snapshot()

	if st.Page == session.PageAuth {
		s.current = s.authHTML
		s.pushLocked()
		return
	}

	ctx := views.Context{
		Session: st,
		Prefs:   s.prefs,
		Theme:   s.theme,
		Query:   s.query,
	}

	start := time.Now()
	var html string
	var err error
	switch st.Page {
	case session.PageTimeline:
		html, err = s.renderer.Timeline(s.snapshot, ctx)
	case session.PageProfile:
		html, err = s.renderer.Profile(s.snapshot, ctx)
	case session.PageSearch:
		html, err = s.renderer.Search(s.snapshot, ctx)
	case session.PageMessages:
		html, err = s.renderer.Messages(s.snapshot, ctx)
	default:
		return
	}
	if err != nil {
		s.logger.LogRenderError(string(st.Page), err)
		return
	}

	elapsed := time.Since(start)
	observability.RenderDuration.WithLabelValues(string(st.Page)).Observe(elapsed.Seconds())
	s.logger.LogRender(string(st.Page), elapsed, len(s.snapshot))

	s.current = html
	s.pushLocked()
}

func (s *Screen) renderAuthLocked() {
	ctx := views.Context{
		Session: s.session.Snapshot(),
		Prefs:   s.prefs,
		Theme:   s.theme,
	}
	html, err := s.renderer.Auth(ctx)
	if err != nil {
		s.logger.LogRenderError(string(session.PageAuth), err)
		return
	}
	s.authHTML = html
}

func (s *Screen) pushLocked() {
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(s.current)); err != nil {
			delete(s.clients, conn)
			observability.ScreenConnections.Dec()
			s.logger.LogDisconnect(conn.RemoteAddr().String(), err.Error())
		}
	}
}
