// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// MarketplaceConfig is the single mutable storefront configuration
// record. It is initialized to DefaultMarketplaceConfig on first run
// and only ever overwritten as a whole.
type MarketplaceConfig struct {
	SiteName        string  `json:"site_name"`
	HeroTitle       string  `json:"hero_title"`
	HeroSubtitle    string  `json:"hero_subtitle"`
	AccentColor     string  `json:"accent_color"`
	ContactEmail    string  `json:"contact_email"`
	SaleActive      bool    `json:"sale_active"`
	DiscountPercent float64 `json:"discount_percent"`
}

// DefaultMarketplaceConfig returns the configuration used when no
// config snapshot exists. The contact email defaults to the
// administrator address.
func DefaultMarketplaceConfig(adminEmail string) MarketplaceConfig {
	return MarketplaceConfig{
		SiteName:        "omarket",
		HeroTitle:       "Level up your Workflow",
		HeroSubtitle:    "Professional grade Python scripts and pixel-perfect HTML templates for developers and entrepreneurs.",
		AccentColor:     "#4f46e5",
		ContactEmail:    adminEmail,
		SaleActive:      false,
		DiscountPercent: 50,
	}
}

// EffectivePrice applies the active discount policy to a base price.
// When the sale flag is off the stored discount has no effect. The
// discount passes through arithmetically without range validation,
// and the result is not rounded; display rounding is a presentation
// concern.
func (c MarketplaceConfig) EffectivePrice(base float64) float64 {
	if !c.SaleActive {
		return base
	}
	return base * (1 - c.DiscountPercent/100)
}
