package handlers

import (
	"net/http"
	"time"

	"github.com/mkravchenko/accountd/internal/handlers/render"
	"github.com/mkravchenko/accountd/internal/logger"
)

func handleListUsers(accounts accountService, l logger.Logger) http.Handler {
	// PasswordHash has no place in the response shape
	type userItem struct {
		ID        int64     `json:"id"`
		Username  string    `json:"username"`
		CreatedAt time.Time `json:"created_at"`
	}
	type response struct {
		Users []userItem `json:"users"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		users, err := accounts.ListUsers(r.Context())
		if err != nil {
			l.Error("user listing failed", "error", err.Error())
			render.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		items := make([]userItem, 0, len(users))
		for _, u := range users {
			items = append(items, userItem{
				ID:        u.ID,
				Username:  u.Username,
				CreatedAt: u.CreatedAt,
			})
		}

		l.Info("retrieved users", "count", len(items))
		render.JSON(w, response{Users: items})
	})
}
