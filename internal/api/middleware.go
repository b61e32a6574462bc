package api

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/wheelibin/glasshouse/internal/constants"
)

type contextKey string

const requestIDKey = contextKey("requestID")

func requestIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	out := s.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel}).Writer()
	return handlers.LoggingHandler(out, next)
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) isAuthenticated(r *http.Request) bool {
	return s.sessions.Exists(r.Context(), constants.SessionKeyOperator)
}

func (s *Server) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.isAuthenticated(r) {
			s.errorResponse(w, r, errUnauthorised)
			return
		}
		w.Header().Add("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// authenticateStream loads the session without LoadAndSave, which would hold
// back the response until the stream ends
func (s *Server) authenticateStream(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.sessions.Cookie.Name)
		if err != nil {
			s.errorResponse(w, r, errUnauthorised)
			return
		}
		ctx, err := s.sessions.Load(r.Context(), cookie.Value)
		if err != nil {
			s.errorResponse(w, r, err)
			return
		}
		if !s.sessions.Exists(ctx, constants.SessionKeyOperator) {
			s.errorResponse(w, r, errUnauthorised)
			return
		}
		next.ServeHTTP(w, r)
	})
}
