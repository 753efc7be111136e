package services

import "errors"

var (
	// auth
	ErrInvalidToken = errors.New("invalid credential")

	// validation — rejected before anything is read or written
	ErrInvalidDrink      = errors.New("invalid drink payload")
	ErrInvalidProfile    = errors.New("invalid profile input")
	ErrProfileIncomplete = errors.New("profile incomplete: weight and birthday required")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidLogin      = errors.New("invalid email or password")

	// not found
	ErrUserNotFound = errors.New("user not found")
)
