package middleware

import (
	"context"
	"net/http"
	"strings"

	"bicycle-odyssey/repository"
	"bicycle-odyssey/utils"

	"go.uber.org/zap"
)

// Key type for context
type contextKey string

const IdentityContextKey = contextKey("identity")

// Identity is the decoded requester attached to the request context
type Identity struct {
	Email string
}

// IdentityFromContext returns the identity set by Guard.Authenticate
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(IdentityContextKey).(Identity)
	return id, ok
}

// Guard verifies bearer tokens and answers admin checks
type Guard struct {
	tokens *utils.TokenService
	users  *repository.UserRepository
}

func NewGuard(tokens *utils.TokenService, users *repository.UserRepository) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// Authenticate rejects requests without a bearer token (401) or with one that
// fails verification (403). On success the identity is put in the context.
func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := g.tokens.Verify(tokenStr)
		if err != nil {
			utils.LoggerFrom(r.Context()).Info("token rejected", zap.Error(err))
			utils.RespondError(w, http.StatusForbidden, "Access Expired")
			return
		}

		ctx := context.WithValue(r.Context(), IdentityContextKey, Identity{Email: claims.Email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthorizeAdmin reports whether the requester's own stored role is admin.
// A requester without a user record is not an admin.
func (g *Guard) AuthorizeAdmin(ctx context.Context, id Identity) (bool, error) {
	user, err := g.users.FindByEmail(ctx, id.Email)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
