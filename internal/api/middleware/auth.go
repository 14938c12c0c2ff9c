package middleware

import (
	"context"
	"edu_platform/internal/common"
	"edu_platform/internal/common/security"
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey     contextKey = "userID"
	TokenErrorCtxKey contextKey = "tokenError"
)

// Identify runs after jwtauth.Verifier. A valid token attaches the user id.
// Requests without a token, or with one that fails verification, continue
// anonymously; the verification error is kept for Authenticator.
func Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if errors.Is(err, jwtauth.ErrNoTokenFound) || (err == nil && token == nil) {
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			next.ServeHTTP(w, r.WithContext(withTokenError(r.Context(), "Invalid token: "+err.Error())))
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			next.ServeHTTP(w, r.WithContext(withTokenError(r.Context(), "Invalid token claims: "+err.Error())))
			return
		}

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func withTokenError(ctx context.Context, message string) context.Context {
	return context.WithValue(ctx, TokenErrorCtxKey, message)
}

// Authenticator requires Identify to have resolved a user.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserIDFromContext(r.Context()); !ok {
			if message, bad := r.Context().Value(TokenErrorCtxKey).(string); bad {
				common.RespondWithError(w, http.StatusUnauthorized, message)
				return
			}
			common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int)
	return userID, ok && userID > 0
}

// UserIDOrAnonymous returns 0 for anonymous callers.
func UserIDOrAnonymous(ctx context.Context) int {
	userID, _ := GetUserIDFromContext(ctx)
	return userID
}
