// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/omarket-go/internal/model"
)

// GetConfig returns the marketplace configuration. The storefront uses
// it for theming and sale banners.
func (h *Handler) GetConfig(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, h.eng.Config(), nil)
}

// UpdateConfig replaces the marketplace configuration wholesale. Out
// of range discounts are accepted; the storefront is trusted to show
// sensible values and captured purchase prices are never recomputed.
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg model.MarketplaceConfig
	if err := decodeJSON(r, &cfg); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	h.eng.UpdateConfig(r.Context(), cfg)
	WriteSuccess(w, h.eng.Config(), nil)
}
