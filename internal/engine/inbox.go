// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package engine

import (
	"context"

	"github.com/olegiv/omarket-go/internal/model"
	"github.com/olegiv/omarket-go/internal/store"
)

// Notifications returns the admin inbox, most recent first.
func (e *Engine) Notifications() []model.Notification {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshotNotifications(e.notifications)
}

// UnreadCount returns the number of unread notifications.
func (e *Engine) UnreadCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n := 0
	for _, nt := range e.notifications {
		if !nt.Read {
			n++
		}
	}
	return n
}

// MarkNotificationRead flips the read flag on the matching
// notification. An unknown id is a silent no-op.
func (e *Engine) MarkNotificationRead(ctx context.Context, id string) {
	e.mu.Lock()
	found := false
	for i := range e.notifications {
		if e.notifications[i].ID == id {
			e.notifications[i].Read = true
			found = true
			break
		}
	}
	notifications := snapshotNotifications(e.notifications)
	e.mu.Unlock()

	if !found {
		return
	}
	e.persist(ctx, map[string]any{store.SlotNotifications: notifications})
}

// ClearNotifications empties the inbox. Irreversible and independent
// of purchase history.
func (e *Engine) ClearNotifications(ctx context.Context) {
	e.mu.Lock()
	e.notifications = []model.Notification{}
	e.mu.Unlock()

	e.persist(ctx, map[string]any{store.SlotNotifications: []model.Notification{}})
	e.log.Info("notifications cleared")
}

func snapshotNotifications(src []model.Notification) []model.Notification {
	out := make([]model.Notification, len(src))
	copy(out, src)
	return out
}
