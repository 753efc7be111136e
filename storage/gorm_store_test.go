package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Drink{}))
	return NewGormStore(db)
}

func TestGormStore_CreateAndLookup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &models.User{
		UserID:   "u1",
		Email:    "u1@example.com",
		Password: "hash",
		Username: "tester",
		WeightKg: 72,
	}
	require.NoError(t, store.CreateUser(ctx, user))

	byID, err := store.UserByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "u1@example.com", byID.Email)

	byEmail, err := store.UserByEmail(ctx, "u1@example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", byEmail.UserID)

	_, err = store.UserByID(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	err = store.CreateUser(ctx, &models.User{UserID: "u2", Email: "u1@example.com", Password: "hash"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestGormStore_ApplyDrinkAtomicCAS(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, &models.User{
		UserID: "u1", Email: "u1@example.com", Password: "x",
	}))

	drink := &models.Drink{Name: "stout", Quantity: 1, DrankAt: time.Now(), AlcoholGrams: 12}
	require.NoError(t, store.ApplyDrink(ctx, "u1", drink, 12000, 6, 0))

	got, err := store.UserByID(ctx, "u1")
	require.NoError(t, err)
	require.EqualValues(t, 1, got.Version)
	require.InDelta(t, 12000.0, got.NeuronsKilled, 1e-9)
	require.InDelta(t, 6.0, got.LifeLost, 1e-9)

	// stale version: nothing written, including the history row
	err = store.ApplyDrink(ctx, "u1", &models.Drink{Name: "late"}, 99999, 99, 0)
	require.ErrorIs(t, err, ErrVersionConflict)

	drinks, err := store.DrinksByUser(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, drinks, 1)

	err = store.ApplyDrink(ctx, "ghost", &models.Drink{Name: "x"}, 1, 1, 0)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_HistoryOrderAndLeaderboard(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, &models.User{UserID: "u1", Email: "u1@example.com", Password: "x"}))
	require.NoError(t, store.CreateUser(ctx, &models.User{UserID: "u2", Email: "u2@example.com", Password: "x"}))

	base := time.Date(2026, 8, 1, 20, 0, 0, 0, time.UTC)
	require.NoError(t, store.ApplyDrink(ctx, "u1", &models.Drink{Name: "first", DrankAt: base}, 100, 1, 0))
	require.NoError(t, store.ApplyDrink(ctx, "u1", &models.Drink{Name: "second", DrankAt: base.Add(time.Hour)}, 300, 2, 1))
	require.NoError(t, store.ApplyDrink(ctx, "u2", &models.Drink{Name: "only", DrankAt: base}, 5000, 3, 0))

	drinks, err := store.DrinksByUser(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, drinks, 2)
	require.Equal(t, "second", drinks[0].Name)

	limited, err := store.DrinksByUser(ctx, "u1", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)

	top, err := store.Leaderboard(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, "u2", top[0].UserID)
}

func TestGormStore_UpdateProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, &models.User{UserID: "u1", Email: "u1@example.com", Password: "x"}))

	user, err := store.UserByID(ctx, "u1")
	require.NoError(t, err)
	user.Username = "renamed"
	user.WeightKg = 68
	user.Smoker = true
	user.ExercisePerWeek = 5
	user.Birthday = time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.UpdateProfile(ctx, user))

	got, err := store.UserByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Username)
	require.InDelta(t, 68.0, got.WeightKg, 1e-9)
	require.True(t, got.Smoker)
	require.Equal(t, 5, got.ExercisePerWeek)
}
