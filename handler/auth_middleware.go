package handler

import (
	"context"
	"go-auth-api/common"
	"go-auth-api/model"
	"go-auth-api/service"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
	ClaimsKey contextKey = "claims"
)

// AuthMiddleware verifies the bearer access token and puts the decoded
// claims into the request context. Stateless: no registry lookup happens
// on this path.
func AuthMiddleware(codec *service.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				err := common.NewAppError(http.StatusUnauthorized, "Authorization header is required", nil)
				err.Send(w)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				err := common.NewAppError(http.StatusUnauthorized, "Invalid authorization header format", nil)
				err.Send(w)
				return
			}

			claims, err := codec.VerifyAccess(headerParts[1])
			if err != nil {
				appErr := common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", nil)
				appErr.Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, ClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission gates a route on a capability. Admins pass every gate.
func RequirePermission(capability string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(ClaimsKey).(*model.AccessClaims)
			if !ok || !service.ClaimsHavePermission(claims, capability) {
				err := common.NewAppError(http.StatusForbidden, "Access denied. Missing permission: "+capability, nil)
				err.Send(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
