package storage

import (
	"context"
	"errors"
	"strings"

	"backend/models"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err != nil && isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (s *GormStore) UserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) UpdateProfile(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"username":          user.Username,
		"birthday":          user.Birthday,
		"weight_kg":         user.WeightKg,
		"smoker":            user.Smoker,
		"exercise_per_week": user.ExercisePerWeek,
	}).Error
}

// ApplyDrink commits one accrual: the conditional metrics overwrite and
// the history insert share a transaction. The WHERE on version turns a
// concurrent update into RowsAffected == 0 instead of a silent clobber.
func (s *GormStore) ApplyDrink(ctx context.Context, userID string, drink *models.Drink, neuronsKilled, lifeLost float64, expectedVersion int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("user_id = ? AND version = ?", userID, expectedVersion).
			Updates(map[string]interface{}{
				"neurons_killed": neuronsKilled,
				"life_lost":      lifeLost,
				"version":        expectedVersion + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.User{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrVersionConflict
		}
		drink.UserID = userID
		return tx.Create(drink).Error
	})
}

func (s *GormStore) DrinksByUser(ctx context.Context, userID string, limit int) ([]models.Drink, error) {
	var drinks []models.Drink
	q := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("drank_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&drinks).Error
	return drinks, err
}

func (s *GormStore) Leaderboard(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	q := s.db.WithContext(ctx).Order("neurons_killed desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&users).Error
	return users, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// postgres 23505 / sqlite "UNIQUE constraint failed"
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "UNIQUE constraint failed")
}
