package handlers

import (
	"context"
	"net/http"

	"github.com/mkravchenko/accountd/internal/handlers/middleware"
	"github.com/mkravchenko/accountd/internal/logger"
	"github.com/mkravchenko/accountd/internal/models"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	accounts accountService,
	db dbPinger,
	l logger.Logger,
	limits middleware.Limits,
) http.Handler {
	mux := http.NewServeMux()

	// Registration is rate limited stricter than login and listing
	mux.Handle("POST /users", middleware.RateLimitMiddleware(limits.Register)(handleRegister(accounts, l)))
	mux.Handle("GET /users", middleware.RateLimitMiddleware(limits.List)(handleListUsers(accounts, l)))
	mux.Handle("POST /login", middleware.RateLimitMiddleware(limits.Login)(handleLogin(accounts, l)))
	mux.Handle("GET /health", handleHealth(db, l))

	return chain(mux,
		middleware.LoggerMiddleware(l),
	)
}

type accountService interface {
	// Register new user
	// Has to return apperrors.ErrUsernameTaken if the username is occupied
	// and *apperrors.ValidationError for out of policy input
	Register(ctx context.Context, username string, password string) (models.User, error)

	// Authenticate user by username and password
	// Has to return apperrors.ErrInvalidCredentials on any mismatch
	Authenticate(ctx context.Context, username string, password string) (models.User, error)

	// List all users, most recently created first
	ListUsers(ctx context.Context) ([]models.User, error)
}

type dbPinger interface {
	PingContext(ctx context.Context) error
}
