package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// TokenIdentifier resolves a bearer token to a user identity.
type TokenIdentifier interface {
	Identify(token string) (string, error)
}

type contextKeyUserID struct{}

// UserIDFromContext returns the identity set by RequireAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(contextKeyUserID{}).(string)
	return userID, ok && userID != ""
}

// WithUserID stores userID in ctx the same way RequireAuth does.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKeyUserID{}, userID)
}

// RequireAuth rejects requests without a valid "Authorization: Bearer" token
// with 401. The reason is logged, never returned to the client.
func RequireAuth(identifier TokenIdentifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "unauthorized access - missing bearer token",
					"request_id", chimw.GetReqID(ctx),
				)
				writeUnauthorized(w, "Not authorized, no token")
				return
			}

			userID, err := identifier.Identify(strings.TrimSpace(token))
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", chimw.GetReqID(ctx),
				)
				writeUnauthorized(w, "Not authorized, token failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(ctx, userID)))
		})
	}
}

type unauthorizedResponse struct {
	Message string `json:"message"`
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(unauthorizedResponse{Message: message})
}
