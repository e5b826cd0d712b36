// Package api implements the Marketrun REST API using chi.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey int

const userKey ctxKey = iota

// AuthMiddleware resolves the caller's identity before any handler runs.
//
// With jwtEnabled false (dev mode), the identity comes from the X-User header
// and defaults to "local". With jwtEnabled true, requests must carry
// "Authorization: Bearer <token>" where token is an HS256 JWT signed with
// secret; the identity is the token's "sub" claim. Invalid or missing
// credentials are rejected with 401 before any state can be touched.
func AuthMiddleware(jwtEnabled bool, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !jwtEnabled {
				user := strings.TrimSpace(r.Header.Get("X-User"))
				if user == "" {
					user = "local"
				}
				next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
				return
			}
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			user, err := verifyToken(strings.TrimPrefix(auth, "Bearer "), secret)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

func verifyToken(raw, secret string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unexpected claims type")
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}

func withUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// UserFrom returns the authenticated user ID set by AuthMiddleware.
func UserFrom(ctx context.Context) string {
	user, _ := ctx.Value(userKey).(string)
	return user
}
