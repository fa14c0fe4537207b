package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sells-group/climate-intel/internal/model"
	"github.com/sells-group/climate-intel/internal/store"
)

type ctxKey int

const userKey ctxKey = iota

// currentUser returns the authenticated user placed by requireAuth.
func currentUser(ctx context.Context) *model.User {
	u, _ := ctx.Value(userKey).(*model.User)
	return u
}

// requireAuth verifies the bearer token and loads the account.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.metrics.AuthFailures.Inc()
			respondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		userID, err := s.issuer.Verify(token)
		if err != nil {
			s.metrics.AuthFailures.Inc()
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		user, err := s.store.GetUserByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				s.metrics.AuthFailures.Inc()
				respondError(w, http.StatusUnauthorized, "User not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// instrument records request counts and latency per route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		timer := s.clock.Now()

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		s.metrics.HTTPDuration.WithLabelValues(route, r.Method).Observe(s.clock.Since(timer).Seconds())
	})
}
