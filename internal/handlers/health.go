package handlers

import (
	"net/http"
	"time"

	"github.com/mkravchenko/accountd/internal/handlers/render"
	"github.com/mkravchenko/accountd/internal/logger"
)

const serviceVersion = "1.0.0"

func handleHealth(db dbPinger, l logger.Logger) http.Handler {
	// No database details in either branch
	type response struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
		Version   string `json:"version,omitempty"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC().Format(time.RFC3339)

		if err := db.PingContext(r.Context()); err != nil {
			l.Error("health check failed", "error", err.Error())
			render.JSONStatus(w, response{Status: "unhealthy", Timestamp: now}, http.StatusServiceUnavailable)
			return
		}

		render.JSON(w, response{Status: "healthy", Timestamp: now, Version: serviceVersion})
	})
}
