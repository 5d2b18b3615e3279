package repository

import (
	"context"

	"github.com/mkravchenko/accountd/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user with already hashed password
	// If user with username exists already has to return apperrors.ErrUsernameTaken
	// Duplicate detection must be atomic at insert time
	CreateUser(ctx context.Context, username string, passwordHash string) (models.User, error)

	// Get user by exact username match
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByUsername(ctx context.Context, username string) (models.User, error)

	// List every user, most recently created first
	ListUsers(ctx context.Context) ([]models.User, error)
}
