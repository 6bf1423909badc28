// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Notification is a simulated outbound email to the storefront
// administrator, generated alongside its triggering purchase. It keeps
// no reference back to the purchase; the body carries the summary.
type Notification struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Recipient string    `json:"recipient"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
