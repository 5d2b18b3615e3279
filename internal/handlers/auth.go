package handlers

import (
	"errors"
	"net/http"

	"github.com/mkravchenko/accountd/internal/apperrors"
	"github.com/mkravchenko/accountd/internal/handlers/render"
	"github.com/mkravchenko/accountd/internal/logger"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

func handleRegister(accounts accountService, l logger.Logger) http.Handler {
	type response struct {
		Message  string `json:"message"`
		UserID   int64  `json:"user_id"`
		Username string `json:"username"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[credentialsRequest](w, r)
		if err != nil {
			return
		}

		user, err := accounts.Register(r.Context(), data.Username, data.Password)
		if err != nil {
			var verr *apperrors.ValidationError
			switch {
			case errors.As(err, &verr):
				render.Error(w, verr.Reason, http.StatusBadRequest)
			case errors.Is(err, apperrors.ErrUsernameTaken):
				render.Error(w, "Username already exists", http.StatusBadRequest)
			default:
				l.Error("user creation failed", "error", err.Error())
				render.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		l.Info("user created", "username", user.Username, "user_id", user.ID)
		render.JSONStatus(w, response{
			Message:  "User created successfully",
			UserID:   user.ID,
			Username: user.Username,
		}, http.StatusCreated)
	})
}

func handleLogin(accounts accountService, l logger.Logger) http.Handler {
	type response struct {
		Message  string `json:"message"`
		UserID   int64  `json:"user_id"`
		Username string `json:"username"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[credentialsRequest](w, r)
		if err != nil {
			return
		}

		user, err := accounts.Authenticate(r.Context(), data.Username, data.Password)
		if err != nil {
			var verr *apperrors.ValidationError
			switch {
			case errors.As(err, &verr):
				render.Error(w, verr.Reason, http.StatusBadRequest)
			case errors.Is(err, apperrors.ErrInvalidCredentials):
				// One generic message for unknown user and wrong password
				l.Warn("failed login attempt", "username", data.Username)
				render.Error(w, "Invalid credentials", http.StatusUnauthorized)
			default:
				l.Error("login failed", "error", err.Error())
				render.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		l.Info("successful login", "username", user.Username)
		render.JSON(w, response{
			Message:  "Login successful",
			UserID:   user.ID,
			Username: user.Username,
		})
	})
}
