// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/omarket-go/internal/model"
)

func withUser(req *http.Request, user model.User) *http.Request {
	ctx := context.WithValue(req.Context(), ContextKeyUser, user)
	return req.WithContext(ctx)
}

func TestGetUser(t *testing.T) {
	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if user := GetUser(req); user != nil {
			t.Errorf("GetUser() = %v, want nil", user)
		}
	})

	t.Run("user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = withUser(req, model.User{ID: "u1", Email: "test@example.com"})

		user := GetUser(req)
		if user == nil {
			t.Fatal("GetUser() = nil, want user")
		}
		if user.ID != "u1" {
			t.Errorf("GetUser().ID = %q, want %q", user.ID, "u1")
		}
		if user.Email != "test@example.com" {
			t.Errorf("GetUser().Email = %q, want %q", user.Email, "test@example.com")
		}
	})
}

func TestRequireUser(t *testing.T) {
	handler := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("rejects anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
	})

	t.Run("passes signed-in user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = withUser(req, model.User{ID: "u1"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name string
		user *model.User
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"regular user", &model.User{ID: "u1"}, http.StatusForbidden},
		{"admin", &model.User{ID: "u1", IsAdmin: true}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.user != nil {
				req = withUser(req, *tt.user)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
