package storage

import (
	"context"
	"sort"
	"sync"

	"backend/models"
)

// MemoryStore is an in-memory UserStore with the same conditional-write
// semantics as the SQL implementation. Used by tests and local runs
// without a database.
type MemoryStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]models.User   // keyed by UserID
	drinks map[string][]models.Drink
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]models.User),
		drinks: make(map[string][]models.Drink),
	}
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UserID]; ok {
		return ErrUserExists
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrEmailTaken
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.UserID] = *user
	return nil
}

func (s *MemoryStore) UserByID(ctx context.Context, userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpdateProfile(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[user.UserID]
	if !ok {
		return ErrNotFound
	}
	u.Username = user.Username
	u.Birthday = user.Birthday
	u.WeightKg = user.WeightKg
	u.Smoker = user.Smoker
	u.ExercisePerWeek = user.ExercisePerWeek
	s.users[user.UserID] = u
	return nil
}

func (s *MemoryStore) ApplyDrink(ctx context.Context, userID string, drink *models.Drink, neuronsKilled, lifeLost float64, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	if u.Version != expectedVersion {
		return ErrVersionConflict
	}
	u.NeuronsKilled = neuronsKilled
	u.LifeLost = lifeLost
	u.Version++
	s.users[userID] = u

	s.nextID++
	drink.ID = s.nextID
	drink.UserID = userID
	s.drinks[userID] = append(s.drinks[userID], *drink)
	return nil
}

func (s *MemoryStore) DrinksByUser(ctx context.Context, userID string, limit int) ([]models.Drink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	drinks := append([]models.Drink(nil), s.drinks[userID]...)
	sort.SliceStable(drinks, func(i, j int) bool {
		return drinks[i].DrankAt.After(drinks[j].DrankAt)
	})
	if limit > 0 && len(drinks) > limit {
		drinks = drinks[:limit]
	}
	return drinks, nil
}

func (s *MemoryStore) Leaderboard(ctx context.Context, limit int) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].NeuronsKilled > users[j].NeuronsKilled
	})
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}
