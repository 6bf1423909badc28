// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the storefront domain entities: Project,
// Purchase, Notification, MarketplaceConfig and User, together with
// their enumerations and documented defaults.
package model

// Project types (catalog categories).
const (
	ProjectTypePython = "PYTHON"
	ProjectTypeHTML   = "HTML"
)

// ProjectTypes lists all valid catalog categories.
var ProjectTypes = []string{ProjectTypePython, ProjectTypeHTML}

// IsValidProjectType checks if a string is a known catalog category.
func IsValidProjectType(t string) bool {
	for _, v := range ProjectTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Project is a purchasable catalog listing. Price is the undiscounted
// base value; sales never mutate it.
type Project struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	Type            string   `json:"type"`
	Price           float64  `json:"price"`
	Description     string   `json:"description"`
	LongDescription string   `json:"long_description"`
	ImageURL        string   `json:"image_url"`
	DemoURL         string   `json:"demo_url,omitempty"`
	Features        []string `json:"features"`
}

// Defaults applied by the catalog when a draft leaves fields unset.
const (
	DefaultProjectName     = "Unnamed Project"
	DefaultProjectImageURL = "https://picsum.photos/seed/new/800/600"
)

// DefaultProjectFeatures returns the feature list used for drafts that
// do not specify their own.
func DefaultProjectFeatures() []string {
	return []string{"Digital delivery", "Support included"}
}

// ProjectDraft carries the fields an administrator may set when
// creating a listing. Unset fields receive the documented defaults.
type ProjectDraft struct {
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Price           float64  `json:"price"`
	Description     string   `json:"description"`
	LongDescription string   `json:"long_description"`
	ImageURL        string   `json:"image_url"`
	DemoURL         string   `json:"demo_url"`
	Features        []string `json:"features"`
}
