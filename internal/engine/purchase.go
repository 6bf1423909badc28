// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package engine

import (
	"context"
	"fmt"

	"github.com/olegiv/omarket-go/internal/model"
	"github.com/olegiv/omarket-go/internal/store"
)

// Purchase records the signed-in user acquiring the given project. It
// captures the effective price and the project name at call time,
// creates a PENDING purchase plus exactly one unread notification to
// the configured contact email, and writes both records in a single
// transaction. Returns ErrAuthRequired without a session and
// ErrNotFound for an unknown project.
func (e *Engine) Purchase(ctx context.Context, projectID string) (model.Purchase, model.Notification, error) {
	e.mu.Lock()

	if e.user == nil {
		e.mu.Unlock()
		return model.Purchase{}, model.Notification{}, ErrAuthRequired
	}
	user := *e.user

	var project model.Project
	found := false
	for _, p := range e.projects {
		if p.ID == projectID {
			project = p
			found = true
			break
		}
	}
	if !found {
		e.mu.Unlock()
		return model.Purchase{}, model.Notification{}, fmt.Errorf("project %q: %w", projectID, ErrNotFound)
	}

	now := e.now()
	purchase := model.Purchase{
		ID:              e.newID(),
		ProjectID:       project.ID,
		ProjectName:     project.Name,
		UserID:          user.ID,
		UserEmail:       user.Email,
		PriceAtPurchase: e.config.EffectivePrice(project.Price),
		Status:          model.PurchaseStatusPending,
		CreatedAt:       now,
	}

	notification := model.Notification{
		ID:        e.newID(),
		Subject:   "New purchase: " + project.Name,
		Recipient: e.config.ContactEmail,
		Body:      orderSummary(e.config.SiteName, project.Name, user, purchase),
		Read:      false,
		CreatedAt: now,
	}

	e.purchases = append([]model.Purchase{purchase}, e.purchases...)
	e.notifications = append([]model.Notification{notification}, e.notifications...)
	purchases := snapshotPurchases(e.purchases)
	notifications := snapshotNotifications(e.notifications)
	e.mu.Unlock()

	e.persist(ctx, map[string]any{
		store.SlotPurchases:     purchases,
		store.SlotNotifications: notifications,
	})
	e.log.Info("purchase recorded",
		"purchase_id", purchase.ID,
		"project_id", project.ID,
		"amount", purchase.PriceAtPurchase,
	)
	return purchase, notification, nil
}

// UpdatePurchaseStatus overwrites the status of the purchase with the
// given id; every other field is untouched. An unknown id is a silent
// no-op. Transitions are not enforced: PENDING→COMPLETED and
// PENDING→DECLINED are the intended uses, but the engine accepts any
// status for any purchase.
func (e *Engine) UpdatePurchaseStatus(ctx context.Context, id, status string) {
	e.mu.Lock()
	found := false
	for i := range e.purchases {
		if e.purchases[i].ID == id {
			e.purchases[i].Status = status
			found = true
			break
		}
	}
	purchases := snapshotPurchases(e.purchases)
	e.mu.Unlock()

	if !found {
		return
	}
	e.persist(ctx, map[string]any{store.SlotPurchases: purchases})
	e.log.Info("purchase status updated", "purchase_id", id, "status", status)
}

// Purchases returns all purchases, most recent first.
func (e *Engine) Purchases() []model.Purchase {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshotPurchases(e.purchases)
}

// PurchasesForUser returns the purchases whose buyer matches the given
// user id, most recent first.
func (e *Engine) PurchasesForUser(userID string) []model.Purchase {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]model.Purchase, 0)
	for _, p := range e.purchases {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

// GrossRevenue sums price-at-purchase over COMPLETED purchases.
func (e *Engine) GrossRevenue() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var total float64
	for _, p := range e.purchases {
		if p.Status == model.PurchaseStatusCompleted {
			total += p.PriceAtPurchase
		}
	}
	return total
}

// orderSummary formats the simulated email body for a purchase.
func orderSummary(siteName, projectName string, user model.User, p model.Purchase) string {
	return fmt.Sprintf(`Hello Admin,

A new purchase has been recorded on %s.

--- Order Summary ---
Project: %s
Buyer: %s (%s)
Amount Paid: $%.2f
Order ID: %s

Please review the purchase in the admin dashboard.

Best regards,
%s System`,
		siteName, projectName, user.Email, user.Name, p.PriceAtPurchase, p.ID, siteName)
}

func snapshotPurchases(src []model.Purchase) []model.Purchase {
	out := make([]model.Purchase, len(src))
	copy(out, src)
	return out
}
