// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NotificationsResponse is the admin inbox with its unread count.
type NotificationsResponse struct {
	Notifications any `json:"notifications"`
	Unread        int `json:"unread"`
}

// ListNotifications returns the admin inbox, most recent first.
func (h *Handler) ListNotifications(w http.ResponseWriter, _ *http.Request) {
	notifications := h.eng.Notifications()
	WriteSuccess(w, NotificationsResponse{
		Notifications: notifications,
		Unread:        h.eng.UnreadCount(),
	}, &Meta{Total: len(notifications)})
}

// MarkNotificationRead marks one notification as read. Marking an
// unknown or already-read notification succeeds without effect.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	h.eng.MarkNotificationRead(r.Context(), chi.URLParam(r, "id"))
	WriteSuccess(w, map[string]int{"unread": h.eng.UnreadCount()}, nil)
}

// ClearNotifications empties the admin inbox.
func (h *Handler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	h.eng.ClearNotifications(r.Context())
	WriteSuccess(w, map[string]string{"status": "cleared"}, nil)
}
