// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package engine

import (
	"context"
	"net/url"
	"strings"

	"github.com/olegiv/omarket-go/internal/model"
	"github.com/olegiv/omarket-go/internal/store"
)

// SignIn creates a session for the given email and replaces any
// existing one. This is the sole authentication mechanism: any
// non-empty email is accepted as authentic, and the admin flag is set
// iff the email matches the configured administrator address
// case-insensitively.
func (e *Engine) SignIn(ctx context.Context, email string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return model.User{}, ErrEmptyEmail
	}

	u := model.User{
		ID:      e.newID(),
		Email:   email,
		Name:    model.DisplayNameFromEmail(email),
		Avatar:  avatarURL(email),
		IsAdmin: model.IsAdminEmail(email, e.adminEmail),
	}

	e.mu.Lock()
	e.user = &u
	e.mu.Unlock()

	e.persist(ctx, map[string]any{store.SlotUser: u})
	e.log.Info("user signed in", "user_id", u.ID, "admin", u.IsAdmin)
	return u, nil
}

// SignOut clears the session unconditionally. Idempotent.
func (e *Engine) SignOut(ctx context.Context) {
	e.mu.Lock()
	signedIn := e.user != nil
	e.user = nil
	e.mu.Unlock()

	if err := e.snaps.Delete(ctx, store.SlotUser); err != nil {
		e.log.Warn("clearing user snapshot failed", "error", err)
	}
	if signedIn {
		e.log.Info("user signed out")
	}
}

// CurrentUser returns the signed-in user, if any.
func (e *Engine) CurrentUser() (model.User, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.user == nil {
		return model.User{}, false
	}
	return *e.user, true
}

// avatarURL builds a generated avatar reference for an email.
func avatarURL(email string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(email) + "&background=random"
}
