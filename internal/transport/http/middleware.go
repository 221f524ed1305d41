package http

import (
	"context"
	"net/http"
)

// Identity arrives from the upstream gateway as headers; this service
// does not authenticate credentials itself.
const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
	roleAdmin      = "admin"
)

type contextKey string

const userIDKey contextKey = "userID"

// requireUser rejects requests without a caller identity.
func requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Header.Get(headerUserID)
		if uid == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "authentication required"})
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, uid)))
	}
}

// requireAdmin rejects requests without an admin identity.
func requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return requireUser(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(headerUserRole) != roleAdmin {
			writeJSON(w, http.StatusForbidden, errorResponse{Message: "admin privileges required"})
			return
		}
		next(w, r)
	})
}

func userID(r *http.Request) string {
	uid, _ := r.Context().Value(userIDKey).(string)
	return uid
}
