package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/meetlens/backend/pkg/json"
	"github.com/meetlens/backend/pkg/jwt"
	"github.com/meetlens/backend/pkg/logger"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// RequireSession rejects requests without a valid bearer session token.
func RequireSession(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, err := jwt.ParseTokenFromHeader(r)
			if err != nil {
				logger.Warn(ctx, "request without session token")
				json.WriteMessage(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			userID, err := jwt.ParseUserID(ctx, token, secret)
			if err != nil {
				logger.Warn(ctx, "invalid session token", slog.String("error", err.Error()))
				json.WriteMessage(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx = context.WithValue(ctx, userIDKey, userID)
			ctx = logger.WithContext(ctx, logger.With(ctx, slog.String("user_id", userID)))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
