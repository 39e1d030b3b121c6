package seed

import (
	"context"
	"path/filepath"
	"testing"

	"tastebook/internal/models"
	"tastebook/internal/storage"
	"tastebook/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *store.RecordStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	slots, err := storage.NewWithDB(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = slots.Close() })

	records, err := store.New(context.Background(), slots)
	require.NoError(t, err)
	return records
}

func TestSeeder_Run(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	records := newTestStore(t)

	s := NewSeeder(records)
	require.NoError(t, s.Run(ctx, Options{NumUsers: 5, NumRecipes: 8, Clean: true}))

	snapshot := records.Snapshot()

	var users, recipes, friendships, messages int
	for _, rec := range snapshot {
		switch rec.RecordKind() {
		case models.KindUser:
			users++
		case models.KindRecipe:
			recipes++
		case models.KindFriendship:
			friendships++
		case models.KindMessage:
			messages++
		}
	}
	assert.Equal(t, 5, users)
	assert.Equal(t, 8, recipes)

	// every generated record references users that exist
	for _, r := range models.Recipes(snapshot) {
		assert.NotNil(t, models.UserByID(snapshot, r.AuthorID))
		for liker := range r.LikedBy {
			assert.NotNil(t, models.UserByID(snapshot, liker))
		}
	}
	for _, rec := range snapshot {
		if m, ok := rec.(*models.Message); ok {
			assert.NotNil(t, models.UserByID(snapshot, m.SenderID))
			assert.NotNil(t, models.UserByID(snapshot, m.RecipientID))
			assert.NotNil(t, models.FriendshipBetween(snapshot, m.SenderID, m.RecipientID),
				"messages only between friends")
		}
	}
}

func TestSeeder_CleanResetsFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	records := newTestStore(t)

	_, err := records.Create(ctx, &models.User{ID: "leftover", Username: "leftover"})
	require.NoError(t, err)

	s := NewSeeder(records)
	require.NoError(t, s.Run(ctx, Options{NumUsers: 2, NumRecipes: 1, Clean: true}))
	assert.Nil(t, models.UserByID(records.Snapshot(), "leftover"))
}

func TestSeeder_UsernamesAreUnique(t *testing.T) {
	t.Parallel()
	records := newTestStore(t)

	s := NewSeeder(records)
	require.NoError(t, s.Run(context.Background(), Options{NumUsers: 20, Clean: true}))

	seen := map[string]bool{}
	for _, rec := range records.Snapshot() {
		if u, ok := rec.(*models.User); ok {
			assert.False(t, seen[u.Username], "duplicate username %s", u.Username)
			seen[u.Username] = true
		}
	}
}
