// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Purchase statuses. PENDING is the only non-terminal status; the
// intended transitions are PENDING→COMPLETED and PENDING→DECLINED.
// The engine does not mechanically enforce terminality.
const (
	PurchaseStatusPending   = "PENDING"
	PurchaseStatusCompleted = "COMPLETED"
	PurchaseStatusDeclined  = "DECLINED"
)

// IsValidPurchaseStatus checks if a string is a known purchase status.
func IsValidPurchaseStatus(s string) bool {
	switch s {
	case PurchaseStatusPending, PurchaseStatusCompleted, PurchaseStatusDeclined:
		return true
	}
	return false
}

// Purchase records one user acquiring one project at a point in time.
// ProjectName and PriceAtPurchase are captured at purchase time and
// never change afterwards, so order history survives catalog edits and
// deletions.
type Purchase struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	ProjectName     string    `json:"project_name"`
	UserID          string    `json:"user_id"`
	UserEmail       string    `json:"user_email"`
	PriceAtPurchase float64   `json:"price_at_purchase"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// IsTerminal reports whether the purchase has reached a final status.
func (p *Purchase) IsTerminal() bool {
	return p.Status == PurchaseStatusCompleted || p.Status == PurchaseStatusDeclined
}
