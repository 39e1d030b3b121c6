// Package server contains the local UI shell: HTTP and WebSocket handlers
// driving the session, the services, and the screen.
package server

import (
	"context"
	"sync"

	"tastebook/internal/config"
	"tastebook/internal/images"
	"tastebook/internal/middleware"
	"tastebook/internal/prefs"
	"tastebook/internal/service"
	"tastebook/internal/session"
	"tastebook/internal/storage"
	"tastebook/internal/store"
	"tastebook/internal/views"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
)

// The HTTP metrics middleware registers its collectors globally, so it is
// created once per process no matter how many servers are built.
var (
	promOnce       sync.Once
	promMiddleware *fiberprometheus.FiberPrometheus
)

func metricsMiddleware() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMiddleware = fiberprometheus.New("tastebook")
	})
	return promMiddleware
}

// Server holds all dependencies and provides handlers.
type Server struct {
	config  *config.Config
	slots   *storage.Slots
	records *store.RecordStore
	prefs   *prefs.Store
	session *session.Controller
	screen  *Screen

	processor      *images.Processor
	userService    *service.UserService
	recipeService  *service.RecipeService
	friendService  *service.FriendService
	messageService *service.MessageService

	metrics *fiberprometheus.FiberPrometheus
}

// NewServer opens the durable storage and wires every dependency.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	slots, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(ctx, cfg, slots)
}

// NewServerWithDeps creates a Server over already-opened storage. Use this in
// tests.
func NewServerWithDeps(ctx context.Context, cfg *config.Config, slots *storage.Slots) (*Server, error) {
	records, err := store.New(ctx, slots)
	if err != nil {
		return nil, err
	}

	renderer, err := views.New()
	if err != nil {
		return nil, err
	}

	sess := session.NewController()
	screen := NewScreen(renderer, sess, prefs.LoadTheme(ctx, slots))

	prefStore := prefs.New(slots)
	defaults, err := prefs.Defaults()
	if err != nil {
		return nil, err
	}
	if err := prefStore.Initialize(ctx, defaults, screen.PreferencesChanged); err != nil {
		return nil, err
	}

	s := &Server{
		config:         cfg,
		slots:          slots,
		records:        records,
		prefs:          prefStore,
		session:        sess,
		screen:         screen,
		processor:      images.NewProcessor(cfg.ImageMaxEdge, cfg.ImageMaxUploadSizeMB),
		userService:    service.NewUserService(records),
		recipeService:  service.NewRecipeService(records),
		friendService:  service.NewFriendService(records),
		messageService: service.NewMessageService(records),
		metrics:        metricsMiddleware(),
	}

	// The screen is the one observer registered at startup; it immediately
	// receives the loaded collection.
	records.Subscribe(screen)

	return s, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	if s.metrics != nil {
		app.Use(s.metrics.Middleware)
	}
	app.Use(middleware.StructuredLogger())
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Index)
	app.Get("/health", s.HealthCheck)
	if s.metrics != nil {
		s.metrics.RegisterAt(app, "/metrics")
	}

	app.Get("/ws/screen", websocket.New(s.ScreenSocket))

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", s.Register)
	auth.Post("/login", s.Login)

	protected := api.Group("", middleware.AuthRequired(s.config))
	protected.Post("/auth/logout", s.Logout)

	protected.Post("/nav/:page", s.Navigate)
	protected.Get("/search", s.Search)

	recipes := protected.Group("/recipes")
	recipes.Post("/", s.CreateRecipe)
	recipes.Delete("/:id", s.DeleteRecipe)
	recipes.Post("/:id/like", s.ToggleLike)
	recipes.Post("/:id/comments", s.AddComment)

	protected.Get("/friends", s.ListFriends)
	protected.Post("/friends/:userId", s.AddFriend)
	protected.Post("/chat/:userId", s.OpenChat)
	protected.Post("/messages/:userId", s.SendMessage)

	protected.Put("/profile", s.UpdateProfile)
	protected.Put("/preferences", s.UpdatePreferences)
	protected.Post("/theme/toggle", s.ToggleTheme)
	protected.Post("/reset", s.ResetStore)
}

// HealthCheck reports liveness of the shell.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"records": s.records.Size(),
	})
}

// ScreenSocket attaches a browser tab to the screen push channel.
func (s *Server) ScreenSocket(conn *websocket.Conn) {
	s.screen.Attach(conn)

	// The channel is push-only; reads only detect the tab going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.screen.Detach(conn, err.Error())
			return
		}
	}
}

// Shutdown releases server resources.
func (s *Server) Shutdown(_ context.Context) error {
	return s.slots.Close()
}
