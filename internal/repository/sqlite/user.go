package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlitedriver "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"

	"github.com/mkravchenko/accountd/internal/apperrors"
	"github.com/mkravchenko/accountd/internal/models"
)

type UserRepo struct {
	DB *sql.DB
}

const createUser = `-- name: CreateUser
INSERT INTO users (username, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?)
`

func (r *UserRepo) CreateUser(ctx context.Context, username string, passwordHash string) (models.User, error) {
	var user models.User
	now := time.Now().UTC()

	res, err := r.DB.ExecContext(ctx, createUser, username, passwordHash, now, now)
	if err != nil {
		// Uniqueness is enforced by the constraint, not a prior read,
		// so concurrent inserts of one username leave exactly one winner
		if isUniqueViolation(err) {
			return user, apperrors.ErrUsernameTaken
		}

		return user, fmt.Errorf("db error: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return user, fmt.Errorf("db error: %w", err)
	}

	return models.User{
		ID:           id,
		CreatedAt:    now,
		Username:     username,
		PasswordHash: passwordHash,
	}, nil
}

const getUserByUsername = `-- name: GetUserByUsername
SELECT id, created_at, username, password_hash FROM users
WHERE username = ?
`

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, getUserByUsername, username).
		Scan(&u.ID, &u.CreatedAt, &u.Username, &u.PasswordHash)

	switch {
	case err == nil:
		return u, nil
	case errors.Is(err, sql.ErrNoRows):
		return u, apperrors.ErrUserNotFound
	default:
		return u, fmt.Errorf("db error: %w", err)
	}
}

const listUsers = `-- name: ListUsers
SELECT id, created_at, username, password_hash FROM users
ORDER BY created_at DESC, id DESC
`

func (r *UserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, listUsers)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.CreatedAt, &u.Username, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

func isUniqueViolation(err error) bool {
	var serr *sqlitedriver.Error
	return errors.As(err, &serr) && serr.Code() == sqlitelib.SQLITE_CONSTRAINT_UNIQUE
}
