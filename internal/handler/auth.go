// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/olegiv/omarket-go/internal/engine"
	"github.com/olegiv/omarket-go/internal/middleware"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email string `json:"email"`
}

// Login signs a user in by email. Any email is accepted; a sign-in
// with the configured admin address yields the admin role. The new
// session replaces whichever user was signed in before.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.eng.SignIn(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, engine.ErrEmptyEmail) {
			WriteValidationError(w, map[string]string{"email": "Email is required"})
			return
		}
		h.log.Error("sign-in failed", "error", err)
		WriteInternalError(w, "Sign in failed")
		return
	}

	// Rotate the session token on privilege change.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		h.log.Error("session renewal failed", "error", err)
		WriteInternalError(w, "Sign in failed")
		return
	}
	h.sessions.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	WriteSuccess(w, user, nil)
}

// Logout signs the current user out. Signing out while signed out is
// not an error.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.eng.SignOut(r.Context())
	if err := h.sessions.Destroy(r.Context()); err != nil {
		h.log.Error("session destroy failed", "error", err)
	}
	WriteSuccess(w, map[string]string{"status": "signed_out"}, nil)
}

// Me returns the signed-in user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Not signed in")
		return
	}
	WriteSuccess(w, user, nil)
}
