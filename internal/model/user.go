// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strings"

// User is the currently signed-in actor. There is at most one at a
// time; sign-in replaces it and sign-out clears it. The IsAdmin flag
// is derived at sign-in time from the configured administrator address
// and stored on the record.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
	IsAdmin bool   `json:"is_admin"`
}

// DisplayNameFromEmail derives a display name from the local part of
// an email address. Addresses without "@" are used as-is.
func DisplayNameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// IsAdminEmail reports whether an email matches the administrator
// address, case-insensitively.
func IsAdminEmail(email, adminEmail string) bool {
	return adminEmail != "" && strings.EqualFold(email, adminEmail)
}
