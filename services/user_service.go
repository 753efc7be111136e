package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend/storage"
	"backend/utils"
)

type ProfileInput struct {
	Username        string   `json:"username"`
	Birthday        string   `json:"birthday"` // YYYY-MM-DD
	WeightKg        *float64 `json:"weight_kg"`
	Smoker          *bool    `json:"smoker"`
	ExercisePerWeek *int     `json:"exercise_per_week"`
}

type UserService struct {
	store storage.UserStore
}

func NewUserService(store storage.UserStore) *UserService {
	return &UserService{store: store}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (map[string]interface{}, error) {
	user, err := s.store.UserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	age := 0
	birthday := ""
	if !user.Birthday.IsZero() {
		age = utils.CalculateAge(user.Birthday)
		birthday = user.Birthday.Format("2006-01-02")
	}

	return map[string]interface{}{
		"user_id":           user.UserID,
		"email":             user.Email,
		"username":          user.Username,
		"birthday":          birthday,
		"age":               age,
		"weight_kg":         user.WeightKg,
		"smoker":            user.Smoker,
		"exercise_per_week": user.ExercisePerWeek,
		"neurons_killed":    user.NeuronsKilled,
		"life_lost":         user.LifeLost,
	}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, input ProfileInput) error {
	user, err := s.store.UserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Birthday != "" {
		birthday, err := time.Parse("2006-01-02", input.Birthday)
		if err != nil {
			return fmt.Errorf("%w: birthday must be YYYY-MM-DD", ErrInvalidProfile)
		}
		user.Birthday = birthday
	}
	if input.WeightKg != nil && *input.WeightKg > 0 {
		user.WeightKg = *input.WeightKg
	}
	if input.Smoker != nil {
		user.Smoker = *input.Smoker
	}
	if input.ExercisePerWeek != nil && *input.ExercisePerWeek >= 0 {
		user.ExercisePerWeek = *input.ExercisePerWeek
	}

	return s.store.UpdateProfile(ctx, user)
}

type LeaderboardEntry struct {
	UserID        string  `json:"user_id"`
	Username      string  `json:"username"`
	NeuronsKilled float64 `json:"neurons_killed"`
	LifeLost      float64 `json:"life_lost"`
}

// Leaderboard is a read-only view over the same records the accrual
// mutates; it never writes.
func (s *UserService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	users, err := s.store.Leaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, LeaderboardEntry{
			UserID:        u.UserID,
			Username:      u.Username,
			NeuronsKilled: u.NeuronsKilled,
			LifeLost:      u.LifeLost,
		})
	}
	return entries, nil
}
