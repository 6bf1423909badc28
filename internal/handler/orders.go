// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/omarket-go/internal/cache"
	"github.com/olegiv/omarket-go/internal/engine"
	"github.com/olegiv/omarket-go/internal/middleware"
	"github.com/olegiv/omarket-go/internal/model"
)

// PurchaseResponse pairs the recorded purchase with the admin
// notification it produced.
type PurchaseResponse struct {
	Purchase     model.Purchase     `json:"purchase"`
	Notification model.Notification `json:"notification"`
}

// Purchase records an order for the signed-in user at the current
// effective price.
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	purchase, notification, err := h.eng.Purchase(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrAuthRequired):
			WriteUnauthorized(w, "Sign in required")
		case errors.Is(err, engine.ErrNotFound):
			WriteNotFound(w, "Project not found")
		default:
			h.log.Error("purchase failed", "error", err)
			WriteInternalError(w, "Purchase failed")
		}
		return
	}

	WriteCreated(w, PurchaseResponse{Purchase: purchase, Notification: notification})
}

// MyOrders returns the signed-in user's purchases, most recent first.
func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	orders := h.eng.PurchasesForUser(user.ID)
	WriteSuccess(w, orders, &Meta{Total: len(orders)})
}

// ListOrders returns every purchase, most recent first.
func (h *Handler) ListOrders(w http.ResponseWriter, _ *http.Request) {
	orders := h.eng.Purchases()
	WriteSuccess(w, orders, &Meta{Total: len(orders)})
}

// UpdateOrderStatusRequest is the body of PUT /api/admin/orders/{id}/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus sets a purchase's status. Any transition between
// known statuses is allowed, including reopening a terminal order.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if !model.IsValidPurchaseStatus(req.Status) {
		WriteValidationError(w, map[string]string{"status": "Unknown status"})
		return
	}

	id := chi.URLParam(r, "id")
	found := false
	for _, p := range h.eng.Purchases() {
		if p.ID == id {
			found = true
			break
		}
	}
	if !found {
		WriteNotFound(w, "Order not found")
		return
	}

	h.eng.UpdatePurchaseStatus(r.Context(), id, req.Status)
	WriteSuccess(w, map[string]string{"status": req.Status}, nil)
}

// StatsResponse summarizes the store for the admin dashboard.
type StatsResponse struct {
	Projects            int     `json:"projects"`
	Orders              int     `json:"orders"`
	GrossRevenue        float64 `json:"gross_revenue"`
	UnreadNotifications int     `json:"unread_notifications"`
	Cache               any     `json:"cache,omitempty"`
}

// Stats returns store totals. Gross revenue counts COMPLETED orders
// only.
func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	stats := StatsResponse{
		Projects:            len(h.eng.Projects()),
		Orders:              len(h.eng.Purchases()),
		GrossRevenue:        h.eng.GrossRevenue(),
		UnreadNotifications: h.eng.UnreadCount(),
	}
	if provider, ok := h.cache.(cache.StatsProvider); ok {
		stats.Cache = provider.Stats()
	}
	WriteSuccess(w, stats, nil)
}
