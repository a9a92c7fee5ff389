package main

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/time/rate"
)

// recoverPanic turns a panic further down the chain into a 500 reply and
// closes the connection afterwards.
func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requestID tags every request with an id, reusing the caller's X-Request-Id
// header when present, and echoes it back on the response.
func (app *application) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, app.contextSetRequestID(r, id))
	})
}

// logRequest writes one INFO entry per completed request.
func (app *application) logRequest(next http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		app.logger.PrintInfo("request completed", map[string]string{
			"request_id":     requestIDFromContext(r.Context()),
			"request_method": r.Method,
			"request_url":    r.URL.String(),
			"status":         strconv.Itoa(status),
			"size":           strconv.Itoa(size),
			"duration":       duration.String(),
		})
	})(next)
}

// enableCORS lets browser front ends on other origins call the API. With no
// trusted origins configured any origin is allowed.
func (app *application) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		w.Header().Add("Vary", "Access-Control-Request-Method")

		origin := r.Header.Get("Origin")

		if origin != "" {
			allowed := len(app.config.cors.trustedOrigins) == 0
			for _, trusted := range app.config.cors.trustedOrigins {
				if origin == trusted {
					allowed = true
					break
				}
			}

			if allowed {
				if len(app.config.cors.trustedOrigins) == 0 {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else {
					w.Header().Set("Access-Control-Allow-Origin", origin)
				}

				// Preflight requests are answered here and never reach the router.
				if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Id")
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}

// rateLimit middleware limits the number of requests from each client IP
// address with its own token bucket. It is a no-op unless the limiter is
// enabled in the config.
func (app *application) rateLimit(next http.Handler) http.Handler {
	// client holds the bucket for one IP and when that IP last made a request.
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	// Once a minute, drop the buckets of clients that have been quiet for more
	// than three minutes so the map does not grow without bound.
	go func() {
		for {
			time.Sleep(time.Minute)

			// Hold the lock for the whole sweep; checks in the handler wait for it.
			mu.Lock()
			for ip, c := range clients {
				if time.Since(c.lastSeen) > 3*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.config.limiter.enabled {
			next.ServeHTTP(w, r)
			return
		}

		// Buckets are keyed on the IP part of the remote address only, so
		// several connections from one host share a bucket.
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		mu.Lock()

		// First request from this IP: give it a fresh bucket sized from the
		// -limiter-rps and -limiter-burst settings.
		c, found := clients[ip]
		if !found {
			c = &client{
				limiter: rate.NewLimiter(rate.Limit(app.config.limiter.rps), app.config.limiter.burst),
			}
			clients[ip] = c
		}

		// Record the visit, then take a token if one is available.
		c.lastSeen = time.Now()
		allowed := c.limiter.Allow()

		// Unlock by hand rather than with defer: the lock must not be held while
		// the rest of the chain runs.
		mu.Unlock()

		// Out of tokens: reply 429 Too Many Requests and stop here.
		if !allowed {
			app.rateLimitExceededResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
