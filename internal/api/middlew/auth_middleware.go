package middlew

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/service"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/pkg/response"
)

func RequireAuth(verifier service.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthorized", "Authorization header is required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				log.Warn("invalid authorization header format")
				response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthorized", "Invalid authorization header format")
				return
			}

			claims, err := verifier.ValidateToken(parts[1])
			if err != nil {
				switch {
				case errors.Is(err, custom_err.ErrTokenExpired):
					response.WriteJSONError(w, log, http.StatusUnauthorized, "token_expired", "Token has expired")
				case errors.Is(err, custom_err.ErrInvalidToken):
					response.WriteJSONError(w, log, http.StatusUnauthorized, "invalid_token", "Invalid token")
				default:
					log.Error("failed to validate token", slog.String("error", err.Error()))
					response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Internal error")
				}
				return
			}

			actor := models.Actor{
				UserID:  claims.UserID,
				AgentID: claims.AgentID,
				Role:    claims.Role,
			}

			ctx := WithActor(r.Context(), actor)

			loggerWithActor := log.With(
				slog.String("user_id", actor.UserID.String()),
				slog.String("role", string(actor.Role)))
			ctx = context.WithValue(ctx, loggerKey, loggerWithActor)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must be mounted after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := GetLogger(r.Context())

		actor := GetActor(r.Context())
		if !actor.IsAdmin() {
			response.WriteJSONError(w, log, http.StatusForbidden, "forbidden", "Admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// OptionalAuth attaches the actor when a valid bearer token is present and
// lets anonymous requests through untouched. Malformed tokens are still
// rejected so a caller cannot probe with garbage credentials.
func OptionalAuth(verifier service.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			RequireAuth(verifier)(next).ServeHTTP(w, r)
		})
	}
}

// WithActor returns a context carrying the authenticated actor.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func GetActor(ctx context.Context) models.Actor {
	actor, ok := ctx.Value(actorKey).(models.Actor)
	if !ok {
		panic("actor not found in context - RequireAuth middleware not applied?")
	}
	return actor
}

// ActorFromContext is the non-panicking variant for optionally authenticated
// routes.
func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(models.Actor)
	return actor, ok
}
