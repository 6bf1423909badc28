// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package engine

import (
	"context"

	"github.com/olegiv/omarket-go/internal/model"
	"github.com/olegiv/omarket-go/internal/store"
)

// Config returns the current marketplace configuration.
func (e *Engine) Config() model.MarketplaceConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config
}

// UpdateConfig replaces the configuration record as a whole. Callers
// supply a complete record; fields are not merged or range-validated.
func (e *Engine) UpdateConfig(ctx context.Context, cfg model.MarketplaceConfig) {
	e.mu.Lock()
	e.config = cfg
	e.mu.Unlock()

	e.persist(ctx, map[string]any{store.SlotConfig: cfg})
	e.log.Info("marketplace config updated", "site_name", cfg.SiteName, "sale_active", cfg.SaleActive)
}

// EffectivePrice applies the current discount policy to a base price.
func (e *Engine) EffectivePrice(base float64) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config.EffectivePrice(base)
}
