package middleware

import (
	"context"
	"net/http"
	"strings"

	"simpeg/internal/domain/auth"
	"simpeg/internal/transport/http/api"
)

type ctxKey int

const ctxKeyUser ctxKey = iota

// SessionChecker reports whether the session carried by a token is
// still live. Revoking sessions is how logout and forced logout work.
type SessionChecker interface {
	SessionValid(ctx context.Context, userID int64, tokenHash string) (bool, error)
}

// Auth resolves the bearer token into an identity. Requests without a
// valid token pass through unauthenticated; route guards decide
// whether that matters.
func Auth(secret string, sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if sessions != nil && claims.SessionID != "" {
				valid, err := sessions.SessionValid(r.Context(), claims.UserID, auth.HashToken(claims.SessionID))
				if err != nil || !valid {
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, auth.Identity{
				UserID:    claims.UserID,
				IsStaff:   claims.IsStaff,
				SessionID: claims.SessionID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (auth.Identity, bool) {
	user, ok := ctx.Value(ctxKeyUser).(auth.Identity)
	return user, ok
}

// RequireAuth rejects unauthenticated requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireStaff rejects requests unless the caller is a staff account.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		if !user.IsStaff {
			api.Fail(w, http.StatusForbidden, "forbidden", "staff access required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
