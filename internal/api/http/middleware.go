package http

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"casetrack-backend/internal/authz"
	"casetrack-backend/internal/domain"
	"casetrack-backend/internal/repository"
	"casetrack-backend/internal/security"
)

type contextKey string

const actorKey contextKey = "actor"

// AuthMiddleware resolves the session token into an Actor. The role is
// loaded from the store on every request rather than trusted from the token,
// so role changes take effect immediately.
type AuthMiddleware struct {
	tokenManager security.TokenManager
	userRepo     repository.UserRepository
}

func NewAuthMiddleware(tokenManager security.TokenManager, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokenManager: tokenManager,
		userRepo:     userRepo,
	}
}

// extractToken pulls the session token from the auth cookie or the
// Authorization header.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie("auth-token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return auth[7:]
	}
	return ""
}

// Authenticate rejects requests without a valid session.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := m.userRepo.GetByID(r.Context(), claims.UserID)
		if err != nil || user.Status != domain.UserStatusApproved {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		actor := authz.Actor{ID: user.ID, Role: user.Role}
		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin layers an admin check on top of Authenticate.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok || actor.Role != domain.UserRoleAdmin {
			respondError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// ActorFromContext returns the authenticated actor placed by Authenticate.
func ActorFromContext(ctx context.Context) (authz.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(authz.Actor)
	return actor, ok
}

// CronAuth guards the dispatch trigger with a shared secret. Not a user
// session: the trigger is for trusted schedulers only.
func CronAuth(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provided := r.Header.Get("X-Cron-Secret")
		if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
