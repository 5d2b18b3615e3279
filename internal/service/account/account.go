package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkravchenko/accountd/internal/apperrors"
	"github.com/mkravchenko/accountd/internal/models"
	"github.com/mkravchenko/accountd/internal/repository"
	"github.com/mkravchenko/accountd/internal/validate"
)

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate hash from password
	// Same password must produce different hashes on every call (salted)
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

var DefaultHasher PasswordHasher = BcryptHasher{}

// AccountService implements the register, authenticate and list use cases
type AccountService struct {
	hasher   PasswordHasher
	userRepo repository.UserRepo

	// Hash compared on login when no user matched, so the miss path
	// costs the same as a password mismatch
	decoyHash string
}

func NewService(hasher PasswordHasher, userRepo repository.UserRepo) (*AccountService, error) {
	if hasher == nil {
		hasher = DefaultHasher
	}

	if userRepo == nil {
		return nil, errors.New("user repo must not be nil")
	}

	decoy, err := hasher.Hash("decoy password, never matched")
	if err != nil {
		return nil, fmt.Errorf("hasher is not usable. Err: %w", err)
	}

	return &AccountService{
		hasher:    hasher,
		userRepo:  userRepo,
		decoyHash: decoy,
	}, nil
}

// Register validates the credentials, hashes the password and stores the
// new user. Validation order is fixed: generic field rules (username then
// password), username policy, password policy; the first failure wins.
// Returns apperrors.ErrUsernameTaken if the username is occupied already.
func (s *AccountService) Register(ctx context.Context, username string, password string) (models.User, error) {
	var user models.User

	username, err := validate.Field("username", username)
	if err != nil {
		return user, err
	}

	password, err = validate.Field("password", password)
	if err != nil {
		return user, err
	}

	if err := validate.Username(username); err != nil {
		return user, err
	}

	if err := validate.Password(password); err != nil {
		return user, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return user, fmt.Errorf("can't use this as password, error=%w", err)
	}

	user, err = s.userRepo.CreateUser(ctx, username, hash)
	if err != nil {
		return user, err
	}

	return user, nil
}

// Authenticate checks the username and password pair against stored users.
// Unknown username and wrong password both return
// apperrors.ErrInvalidCredentials and nothing else.
func (s *AccountService) Authenticate(ctx context.Context, username string, password string) (models.User, error) {
	var zero models.User

	username, err := validate.Field("username", username)
	if err != nil {
		return zero, err
	}

	password, err = validate.Field("password", password)
	if err != nil {
		return zero, err
	}

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		_ = s.hasher.Compare(s.decoyHash, password)
		return zero, apperrors.ErrInvalidCredentials
	case err != nil:
		return zero, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return zero, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// ListUsers returns every registered user, most recently created first
func (s *AccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListUsers(ctx)
}
