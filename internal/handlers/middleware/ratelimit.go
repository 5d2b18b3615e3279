package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mkravchenko/accountd/internal/handlers/render"
)

// Limits per route, requests per minute per client address.
// Zero or negative disables the limiter for that route.
type Limits struct {
	Register int
	Login    int
	List     int
}

// RateLimitMiddleware applies a token bucket per client address.
// The bucket refills at perMinute tokens per minute and bursts up to
// perMinute requests.
func RateLimitMiddleware(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limit := rate.Every(time.Minute / time.Duration(perMinute))

	clientLimiter := func(remoteAddr string) *rate.Limiter {
		host, _, err := net.SplitHostPort(remoteAddr)
		if err != nil {
			host = remoteAddr
		}

		mu.Lock()
		defer mu.Unlock()

		lim, ok := limiters[host]
		if !ok {
			lim = rate.NewLimiter(limit, perMinute)
			limiters[host] = lim
		}
		return lim
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !clientLimiter(r.RemoteAddr).Allow() {
				render.JSONStatus(w, render.ErrorResponse{
					Error:   "Rate limit exceeded",
					Message: "Too many requests",
				}, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
