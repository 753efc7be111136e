package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"backend/models"
	"backend/storage"

	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	userID string
	err    error
}

func (v stubVerifier) VerifyToken(string) (string, error) {
	return v.userID, v.err
}

func f64(v float64) *float64 { return &v }

func validRequest() DrinkRequest {
	return DrinkRequest{
		Name:           "IPA",
		Quantity:       f64(1),
		Time:           time.Now().Format(time.RFC3339),
		AlcoholContent: f64(10),
		SugarContent:   f64(5),
	}
}

func seedUser(t *testing.T, store *storage.MemoryStore, userID string) *models.User {
	t.Helper()
	user := &models.User{
		UserID:          userID,
		Email:           userID + "@example.com",
		Password:        "x",
		Username:        "tester",
		Birthday:        time.Now().AddDate(-55, 0, -40),
		WeightKg:        65,
		Smoker:          false,
		ExercisePerWeek: 1,
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func TestLogDrink_Success(t *testing.T) {
	store := storage.NewMemoryStore()
	seedUser(t, store, "u1")
	svc := NewDrinkService(store, stubVerifier{userID: "u1"}, nil)

	updated, err := svc.LogDrink(context.Background(), "token", validRequest())
	require.NoError(t, err)

	// weight 65 (<70), age 55 (>50): (10*1000 + 5*5) * 1.2 * 1.3
	require.InDelta(t, 15639.0, updated.NeuronsKilled, 1e-9)
	require.InDelta(t, 5.5, updated.LifeLost, 1e-9)

	stored, err := store.UserByID(context.Background(), "u1")
	require.NoError(t, err)
	require.InDelta(t, 15639.0, stored.NeuronsKilled, 1e-9)
	require.InDelta(t, 5.5, stored.LifeLost, 1e-9)
	require.EqualValues(t, 1, stored.Version)

	history, err := store.DrinksByUser(context.Background(), "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "IPA", history[0].Name)
	require.InDelta(t, 10.0, history[0].AlcoholGrams, 1e-9)
}

func TestLogDrink_SugarOmittedDefaultsToZero(t *testing.T) {
	store := storage.NewMemoryStore()
	seedUser(t, store, "u1")
	svc := NewDrinkService(store, stubVerifier{userID: "u1"}, nil)

	req := validRequest()
	req.SugarContent = nil
	_, err := svc.LogDrink(context.Background(), "token", req)
	require.NoError(t, err)

	stored, err := store.UserByID(context.Background(), "u1")
	require.NoError(t, err)
	// 10*1000 * 1.2 * 1.3, no sugar term
	require.InDelta(t, 15600.0, stored.NeuronsKilled, 1e-9)
	require.InDelta(t, 5.0, stored.LifeLost, 1e-9)
}

func TestLogDrink_InvalidCredential(t *testing.T) {
	store := storage.NewMemoryStore()
	seedUser(t, store, "u1")
	svc := NewDrinkService(store, stubVerifier{err: errors.New("expired")}, nil)

	_, err := svc.LogDrink(context.Background(), "bad", validRequest())
	require.ErrorIs(t, err, ErrInvalidToken)
	requireUntouched(t, store, "u1")
}

func TestLogDrink_ValidationRejections(t *testing.T) {
	store := storage.NewMemoryStore()
	seedUser(t, store, "u1")
	svc := NewDrinkService(store, stubVerifier{userID: "u1"}, nil)

	cases := map[string]func(*DrinkRequest){
		"missing name":     func(r *DrinkRequest) { r.Name = "  " },
		"missing quantity": func(r *DrinkRequest) { r.Quantity = nil },
		"zero quantity":    func(r *DrinkRequest) { r.Quantity = f64(0) },
		"missing time":     func(r *DrinkRequest) { r.Time = "" },
		"bad time":         func(r *DrinkRequest) { r.Time = "yesterday-ish" },
		"missing alcohol":  func(r *DrinkRequest) { r.AlcoholContent = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(&req)
			_, err := svc.LogDrink(context.Background(), "token", req)
			require.ErrorIs(t, err, ErrInvalidDrink)
			requireUntouched(t, store, "u1")
		})
	}
}

func TestLogDrink_UserNotFound(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewDrinkService(store, stubVerifier{userID: "ghost"}, nil)

	_, err := svc.LogDrink(context.Background(), "token", validRequest())
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogDrink_IncompleteProfile(t *testing.T) {
	store := storage.NewMemoryStore()
	user := &models.User{UserID: "u1", Email: "u1@example.com", Password: "x"}
	require.NoError(t, store.CreateUser(context.Background(), user))
	svc := NewDrinkService(store, stubVerifier{userID: "u1"}, nil)

	_, err := svc.LogDrink(context.Background(), "token", validRequest())
	require.ErrorIs(t, err, ErrProfileIncomplete)
	requireUntouched(t, store, "u1")
}

// conflictingStore forces version conflicts for the first n commits.
type conflictingStore struct {
	storage.UserStore
	mu        sync.Mutex
	conflicts int
	attempts  int
}

func (s *conflictingStore) ApplyDrink(ctx context.Context, userID string, drink *models.Drink, neurons, lifeLost float64, version int64) error {
	s.mu.Lock()
	s.attempts++
	forced := s.conflicts > 0
	if forced {
		s.conflicts--
	}
	s.mu.Unlock()
	if forced {
		return storage.ErrVersionConflict
	}
	return s.UserStore.ApplyDrink(ctx, userID, drink, neurons, lifeLost, version)
}

func TestLogDrink_RetriesThroughConflict(t *testing.T) {
	mem := storage.NewMemoryStore()
	seedUser(t, mem, "u1")
	store := &conflictingStore{UserStore: mem, conflicts: 2}
	svc := NewDrinkService(store, stubVerifier{userID: "u1"}, nil)

	_, err := svc.LogDrink(context.Background(), "token", validRequest())
	require.NoError(t, err)
	require.Equal(t, 3, store.attempts)

	history, err := mem.DrinksByUser(context.Background(), "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestLogDrink_ConflictRetriesExhausted(t *testing.T) {
	mem := storage.NewMemoryStore()
	seedUser(t, mem, "u1")
	store := &conflictingStore{UserStore: mem, conflicts: 100}
	svc := NewDrinkService(store, stubVerifier{userID: "u1"}, nil)

	_, err := svc.LogDrink(context.Background(), "token", validRequest())
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrVersionConflict)
	require.Equal(t, maxCommitAttempts, store.attempts)
	requireUntouched(t, mem, "u1")
}

// No lost updates: finals must equal the sum of every delta that
// reported success, and history must hold one row per success.
func TestLogDrink_ConcurrentAccrualsSumExactly(t *testing.T) {
	store := storage.NewMemoryStore()
	seedUser(t, store, "u1")
	svc := NewDrinkService(store, stubVerifier{userID: "u1"}, nil)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.AlcoholContent = f64(float64(i + 1))
			req.SugarContent = nil
			_, errs[i] = svc.LogDrink(context.Background(), "token", req)
		}(i)
	}
	wg.Wait()

	var wantNeurons, wantLife float64
	successes := 0
	for i, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, storage.ErrVersionConflict)
			continue
		}
		successes++
		alcohol := float64(i + 1)
		wantNeurons += alcohol * 1000 * 1.2 * 1.3 // weight 65, age 55
		wantLife += alcohol * 0.5
	}
	require.Greater(t, successes, 0)

	final, err := store.UserByID(context.Background(), "u1")
	require.NoError(t, err)
	require.InDelta(t, wantNeurons, final.NeuronsKilled, 1e-6)
	require.InDelta(t, wantLife, final.LifeLost, 1e-6)
	require.EqualValues(t, successes, final.Version)

	history, err := store.DrinksByUser(context.Background(), "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, successes)
}

// requireUntouched asserts a failed transaction left the record and
// history exactly as seeded.
func requireUntouched(t *testing.T, store *storage.MemoryStore, userID string) {
	t.Helper()
	user, err := store.UserByID(context.Background(), userID)
	require.NoError(t, err)
	require.Zero(t, user.NeuronsKilled)
	require.Zero(t, user.LifeLost)
	require.Zero(t, user.Version)

	history, err := store.DrinksByUser(context.Background(), userID, 0)
	require.NoError(t, err)
	require.Empty(t, history)
}
