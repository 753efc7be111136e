package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"backend/models"
	"backend/storage"
	"backend/utils"
)

// Attempts at the load-compute-commit window before a persistent
// version conflict is surfaced as a server failure.
const maxCommitAttempts = 3

// TokenVerifier is the identity collaborator: it turns an opaque
// credential into a verified stable user id, or fails.
type TokenVerifier interface {
	VerifyToken(credential string) (string, error)
}

type DrinkRequest struct {
	Name           string   `json:"name"`
	Quantity       *float64 `json:"quantity"`
	Time           string   `json:"time"`
	AlcoholContent *float64 `json:"alcoholContent"`
	SugarContent   *float64 `json:"sugarContent"`
}

type DrinkService struct {
	store    storage.UserStore
	verifier TokenVerifier
	hub      *RealtimeHub // optional
}

func NewDrinkService(store storage.UserStore, verifier TokenVerifier, hub *RealtimeHub) *DrinkService {
	return &DrinkService{store: store, verifier: verifier, hub: hub}
}

// LogDrink runs one accrual: verify the credential, validate the
// payload, then load-compute-commit with a conditional write so
// concurrent logs for the same user never lose an update. Validation
// and authentication failures leave storage untouched.
func (s *DrinkService) LogDrink(ctx context.Context, credential string, req DrinkRequest) (*models.User, error) {
	userID, err := s.verifier.VerifyToken(credential)
	if err != nil {
		return nil, ErrInvalidToken
	}

	drankAt, err := validateDrink(req)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		user, err := s.store.UserByID(ctx, userID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("load user: %w", err)
		}
		if user.WeightKg <= 0 || user.Birthday.IsZero() {
			return nil, ErrProfileIncomplete
		}

		// Age is derived fresh on every transaction, never cached.
		age := utils.CalculateAge(user.Birthday)

		sugar := 0.0
		if req.SugarContent != nil {
			sugar = *req.SugarContent
		}
		alcohol := *req.AlcoholContent

		newNeurons := NeuronsKilledTotal(user.WeightKg, age, user.NeuronsKilled, alcohol, sugar)
		newLifeLost := user.LifeLost + LifeLostDays(user.Smoker, user.ExercisePerWeek, alcohol, sugar)

		drink := &models.Drink{
			Name:         strings.TrimSpace(req.Name),
			Quantity:     *req.Quantity,
			DrankAt:      drankAt,
			AlcoholGrams: alcohol,
			SugarGrams:   sugar,
		}

		err = s.store.ApplyDrink(ctx, userID, drink, newNeurons, newLifeLost, user.Version)
		if errors.Is(err, storage.ErrVersionConflict) {
			lastErr = err
			continue
		}
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("commit drink: %w", err)
		}

		user.NeuronsKilled = newNeurons
		user.LifeLost = newLifeLost
		user.Version++
		if s.hub != nil {
			s.hub.BroadcastMetrics(userID, MetricsUpdate{
				UserID:        userID,
				NeuronsKilled: newNeurons,
				LifeLost:      newLifeLost,
			})
		}
		return user, nil
	}
	return nil, fmt.Errorf("commit drink: retries exhausted: %w", lastErr)
}

// History returns the caller's logged drinks, newest first.
func (s *DrinkService) History(ctx context.Context, userID string, limit int) ([]models.Drink, error) {
	drinks, err := s.store.DrinksByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return drinks, nil
}

// validateDrink rejects incomplete payloads before any state is read.
// Name, quantity, timestamp and alcohol content are required; sugar is
// optional. Negative alcohol/sugar values are accepted.
func validateDrink(req DrinkRequest) (time.Time, error) {
	if strings.TrimSpace(req.Name) == "" {
		return time.Time{}, fmt.Errorf("%w: name is required", ErrInvalidDrink)
	}
	if req.Quantity == nil || *req.Quantity <= 0 {
		return time.Time{}, fmt.Errorf("%w: quantity must be a positive number", ErrInvalidDrink)
	}
	if req.Time == "" {
		return time.Time{}, fmt.Errorf("%w: time is required", ErrInvalidDrink)
	}
	drankAt, err := time.Parse(time.RFC3339, req.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time must be RFC3339", ErrInvalidDrink)
	}
	if req.AlcoholContent == nil {
		return time.Time{}, fmt.Errorf("%w: alcoholContent is required", ErrInvalidDrink)
	}
	return drankAt, nil
}
