// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, rate limiting and CSRF protection.
package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/omarket-go/internal/engine"
	"github.com/olegiv/omarket-go/internal/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser is the context key for the signed-in user.
const ContextKeyUser ContextKey = "user"

// SessionKeyUserID is the session key holding the signed-in user's id.
const SessionKeyUserID = "user_id"

// LoadUser resolves the session cookie against the engine's current
// session. The engine is the single source of truth: a cookie whose
// user id does not match the engine's signed-in user is stale and gets
// destroyed.
func LoadUser(sm *scs.SessionManager, eng *engine.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetString(r.Context(), SessionKeyUserID)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, signedIn := eng.CurrentUser()
			if !signedIn || user.ID != userID {
				_ = sm.Destroy(r.Context())
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests without a signed-in user.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r) == nil {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Sign in required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests unless the signed-in user is the admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r)
		if user == nil {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Sign in required", nil)
			return
		}
		if !user.IsAdmin {
			WriteAPIError(w, http.StatusForbidden, "forbidden", "Admin access required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(model.User)
	if !ok {
		return nil
	}
	return &user
}
