package app

import (
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/fieldkeep/fieldkeep/internal/auth"
	"github.com/fieldkeep/fieldkeep/internal/config"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// publicPrefixes are reachable without a session.
var publicPrefixes = []string{
	"/api/health",
	"/api/auth/login",
}

// gatedPrefixes are the path families subject to the access policy.
var gatedPrefixes = []string{
	"/api",
	"/dashboard",
	"/admin",
}

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Resolve the session cookie into a request-scoped session.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			if cookie, err := req.Cookie(auth.SessionCookie); err == nil {
				session, err := deps.Tokens.Verify(cookie.Value)
				if err != nil {
					log.Debugf("rejecting session cookie: %v", err)
				} else {
					ctx = auth.WithSession(ctx, session)
				}
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})

	// Gate requests through the access policy. Anything not explicitly
	// allowed for the session's role is denied.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			path := req.URL.Path
			if isPublic(path) || !isGated(path) {
				next.ServeHTTP(w, req)
				return
			}

			session, err := auth.CurrentSession(req.Context())
			if err != nil {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			if !deps.Policy.IsPathAllowed(session.Role, path) {
				log.Debugf("denying %s access to %s", session.Role, path)
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	// Throttle login attempts per client address.
	limiter := newLoginLimiter(cfg.Auth.LoginRatePerMinute)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Method == http.MethodPost && req.URL.Path == "/api/auth/login" {
				if !limiter.allow(clientAddr(req)) {
					http.Error(w, "too many login attempts", http.StatusTooManyRequests)
					return
				}
			}
			next.ServeHTTP(w, req)
		})
	})
}

func isPublic(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func isGated(path string) bool {
	for _, prefix := range gatedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func clientAddr(req *http.Request) string {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}

type loginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newLoginLimiter(perMinute int) *loginLimiter {
	return &loginLimiter{
		limiters: map[string]*rate.Limiter{},
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    perMinute,
	}
}

func (l *loginLimiter) allow(addr string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[addr]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[addr] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}
