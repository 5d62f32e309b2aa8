package main

import (
	"crypto/subtle"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
)

func (app *application) BasicAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, pass, ok := r.BasicAuth()
			if !ok {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is missing or malformed"))
				return
			}

			want := app.config.auth.basic
			// An unset password locks the endpoint instead of opening it.
			if want.pass == "" ||
				subtle.ConstantTimeCompare([]byte(username), []byte(want.user)) != 1 ||
				subtle.ConstantTimeCompare([]byte(pass), []byte(want.pass)) != 1 {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("invalid credentials"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if allow, retryAfter := app.rateLimiter.Allow(clientIP(r)); !allow {
			secs := int(math.Ceil(retryAfter.Seconds()))
			app.rateLimitExceededResponse(w, r, strconv.Itoa(max(secs, 1)))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from RemoteAddr. middleware.RealIP has already
// replaced it with the forwarded address when one was sent.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
