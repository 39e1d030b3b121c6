// Package seed populates the record store with demo data for development.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"tastebook/internal/models"
	"tastebook/internal/store"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Options controls how much demo data is generated.
type Options struct {
	NumUsers   int
	NumRecipes int
	Clean      bool
}

// Seeder writes generated records through the record store so the same
// persistence and notification path as the real app is exercised.
type Seeder struct {
	records *store.RecordStore
	rng     *rand.Rand
}

// NewSeeder creates a seeder over the given record store.
func NewSeeder(records *store.RecordStore) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		records: records,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run generates the full demo mesh: users, recipes with likes and comments,
// friendships, and a few conversations.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	if opts.Clean {
		if err := s.records.ResetAll(ctx); err != nil {
			return fmt.Errorf("clean store: %w", err)
		}
	}

	users, err := s.seedUsers(ctx, opts.NumUsers)
	if err != nil {
		return err
	}
	if err := s.seedRecipes(ctx, users, opts.NumRecipes); err != nil {
		return err
	}
	pairs, err := s.seedFriendships(ctx, users)
	if err != nil {
		return err
	}
	return s.seedMessages(ctx, pairs)
}

func (s *Seeder) seedUsers(ctx context.Context, n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	taken := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		user := s.buildUser()
		for taken[user.Username] {
			user.Username = fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999))
		}
		taken[user.Username] = true

		created, err := s.records.Create(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, created.(*models.User))
	}
	return users, nil
}

func (s *Seeder) buildUser() *models.User {
	return &models.User{
		ID:        uuid.NewString(),
		Username:  fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(10, 99)),
		Password:  "password123",
		Name:      gofakeit.Name(),
		Bio:       fmt.Sprintf("Home cook. Always chasing the perfect %s.", gofakeit.Dinner()),
		Avatar:    models.DefaultAvatar,
		CreatedAt: s.pastTime(90),
	}
}

func (s *Seeder) seedRecipes(ctx context.Context, users []*models.User, n int) error {
	if len(users) == 0 {
		return nil
	}
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		recipe := s.buildRecipe(author)

		// a random subset of other users likes and comments
		for _, u := range users {
			if u.ID == author.ID {
				continue
			}
			if s.rng.Intn(3) == 0 {
				recipe.LikedBy.Add(u.ID)
			}
			if s.rng.Intn(6) == 0 {
				recipe.Comments = append(recipe.Comments, models.Comment{
					AuthorID:   u.ID,
					AuthorName: u.DisplayName(),
					Text:       gofakeit.Comment(),
					CreatedAt:  recipe.CreatedAt.Add(time.Duration(s.rng.Intn(72)) * time.Hour),
				})
			}
		}

		if _, err := s.records.Create(ctx, recipe); err != nil {
			return fmt.Errorf("seed recipe %d: %w", i, err)
		}
	}
	return nil
}

func (s *Seeder) buildRecipe(author *models.User) *models.Recipe {
	dish := gofakeit.Dinner()
	return &models.Recipe{
		ID:          uuid.NewString(),
		AuthorID:    author.ID,
		AuthorName:  author.DisplayName(),
		Title:       dish,
		Description: fmt.Sprintf("My take on %s. %s", dish, gofakeit.Sentence(8)),
		Ingredients: s.ingredients(),
		Steps:       s.steps(),
		LikedBy:     models.IDSet{},
		CreatedAt:   s.pastTime(60),
	}
}

func (s *Seeder) ingredients() string {
	n := 3 + s.rng.Intn(5)
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += "\n"
		}
		out += fmt.Sprintf("%d %s", 1+s.rng.Intn(4), gofakeit.Vegetable())
	}
	out += "\n1 " + gofakeit.Fruit()
	return out
}

func (s *Seeder) steps() string {
	n := 2 + s.rng.Intn(4)
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += "\n"
		}
		out += gofakeit.Sentence(10)
	}
	return out
}

func (s *Seeder) seedFriendships(ctx context.Context, users []*models.User) ([][2]string, error) {
	var pairs [][2]string
	for i, a := range users {
		for _, b := range users[i+1:] {
			if s.rng.Intn(4) != 0 {
				continue
			}
			f := &models.Friendship{
				ID:          uuid.NewString(),
				RequesterID: a.ID,
				ReceiverID:  b.ID,
				Status:      models.FriendshipStatusAccepted,
				CreatedAt:   s.pastTime(45),
			}
			if _, err := s.records.Create(ctx, f); err != nil {
				return nil, fmt.Errorf("seed friendship: %w", err)
			}
			pairs = append(pairs, [2]string{a.ID, b.ID})
		}
	}
	return pairs, nil
}

func (s *Seeder) seedMessages(ctx context.Context, pairs [][2]string) error {
	for _, pair := range pairs {
		if s.rng.Intn(2) != 0 {
			continue
		}
		n := 1 + s.rng.Intn(6)
		base := s.pastTime(30)
		for i := 0; i < n; i++ {
			sender, recipient := pair[0], pair[1]
			if i%2 == 1 {
				sender, recipient = recipient, sender
			}
			msg := &models.Message{
				ID:          uuid.NewString(),
				SenderID:    sender,
				RecipientID: recipient,
				Text:        gofakeit.Question(),
				CreatedAt:   base.Add(time.Duration(i) * time.Minute),
			}
			if _, err := s.records.Create(ctx, msg); err != nil {
				return fmt.Errorf("seed message: %w", err)
			}
		}
	}
	return nil
}

func (s *Seeder) pastTime(maxDays int) time.Time {
	days := s.rng.Intn(maxDays)
	hours := s.rng.Intn(24)
	mins := s.rng.Intn(60)
	return time.Now().Add(-time.Duration(days)*24*time.Hour -
		time.Duration(hours)*time.Hour - time.Duration(mins)*time.Minute)
}
