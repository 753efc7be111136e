package services

import (
	"context"
	"errors"
	"fmt"

	"backend/models"
	"backend/storage"
	"backend/utils"

	"github.com/google/uuid"
)

type AuthService struct {
	store storage.UserStore
	jwt   *utils.JWTManager
}

func NewAuthService(store storage.UserStore, jwt *utils.JWTManager) *AuthService {
	return &AuthService{store: store, jwt: jwt}
}

// Register creates an account with a fresh stable id. The health
// profile starts empty; drinks cannot be logged until it is filled in.
func (s *AuthService) Register(ctx context.Context, email, password, username string) (*models.User, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		UserID:   uuid.NewString(),
		Email:    email,
		Password: hashed,
		Username: username,
	}
	err = s.store.CreateUser(ctx, user)
	if errors.Is(err, storage.ErrEmailTaken) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrInvalidLogin
	}
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", ErrInvalidLogin
	}
	token, err := s.jwt.GenerateToken(user.UserID, user.Email)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
