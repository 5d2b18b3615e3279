package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mkravchenko/accountd/internal/db"
	"github.com/mkravchenko/accountd/internal/handlers"
	"github.com/mkravchenko/accountd/internal/handlers/middleware"
	"github.com/mkravchenko/accountd/internal/logger"
	"github.com/mkravchenko/accountd/internal/repository/sqlite"
	"github.com/mkravchenko/accountd/internal/service/account"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler

	logger logger.Logger
	db     *sql.DB
}

func NewServerApp(c *Config) (*ServerApp, error) {
	// Initialize logger
	l, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Open the database and run migrations
	pool, err := db.OpenAndMigrate(c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error while opening db. Err: %w", err)
	}

	// Initialize repository and the account service
	userRepo := &sqlite.UserRepo{DB: pool}

	accounts, err := account.NewService(account.DefaultHasher, userRepo)
	if err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("error while creating account service. Err: %w", err)
	}

	mux := handlers.NewRouter(accounts, pool, l, middleware.Limits{
		Register: c.RegisterLimit,
		Login:    c.LoginLimit,
		List:     c.ListLimit,
	})

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
		logger:     l,
		db:         pool,
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	defer func() { _ = s.db.Close() }()

	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); errors.Is(err, context.DeadlineExceeded) {
			s.logger.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		s.logger.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	s.logger.Info("Starting server", "address", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
