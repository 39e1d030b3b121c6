package service

import (
	"context"
	"strings"
	"time"

	"tastebook/internal/models"

	"github.com/google/uuid"
)

// UserService handles registration, login, and profile edits.
type UserService struct {
	store Store
}

// NewUserService creates a UserService over the given store.
func NewUserService(store Store) *UserService {
	return &UserService{store: store}
}

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Username string
	Password string
	Name     string
}

// UpdateProfileInput is the payload for editing the current user's profile.
// The whole record is replaced; empty fields keep their previous value.
type UpdateProfileInput struct {
	UserID string
	Name   string
	Bio    string
	Avatar string
}

const (
	maxUsernameLen = 32
	maxNameLen     = 80
	maxBioLen      = 500
)

// Register creates a new account. Usernames are unique; uniqueness is
// enforced here at registration time, not as a storage constraint.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}
	if len(username) > maxUsernameLen {
		return nil, models.NewValidationError("Username too long (max 32 characters)")
	}
	if strings.ContainsAny(username, " \t\n") {
		return nil, models.NewValidationError("Username must not contain whitespace")
	}
	if len(in.Name) > maxNameLen {
		return nil, models.NewValidationError("Name too long (max 80 characters)")
	}

	if models.UserByUsername(s.store.Snapshot(), username) != nil {
		return nil, models.NewValidationError("Username already taken")
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  in.Password,
		Name:      strings.TrimSpace(in.Name),
		Avatar:    models.DefaultAvatar,
		CreatedAt: time.Now(),
	}
	if _, err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns the matching user.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user := models.UserByUsername(s.store.Snapshot(), strings.TrimSpace(username))
	if user == nil || user.Password != password {
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}
	return user, nil
}

// UpdateProfile edits name, bio, and avatar on the user's record.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if len(in.Name) > maxNameLen {
		return nil, models.NewValidationError("Name too long (max 80 characters)")
	}
	if len(in.Bio) > maxBioLen {
		return nil, models.NewValidationError("Bio too long (max 500 characters)")
	}

	user := models.UserByID(s.store.Snapshot(), in.UserID)
	if user == nil {
		return nil, models.NewNotFoundError("user", in.UserID)
	}

	updated := user.Clone().(*models.User)
	if in.Name != "" {
		updated.Name = strings.TrimSpace(in.Name)
	}
	if in.Bio != "" {
		updated.Bio = strings.TrimSpace(in.Bio)
	}
	if in.Avatar != "" {
		updated.Avatar = in.Avatar
	}

	if err := s.store.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
