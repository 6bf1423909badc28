// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the REST API for the storefront and the
// admin dashboard.
package handler

import (
	"log/slog"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/omarket-go/internal/ai"
	"github.com/olegiv/omarket-go/internal/cache"
	"github.com/olegiv/omarket-go/internal/engine"
	"github.com/olegiv/omarket-go/internal/imaging"
	"github.com/olegiv/omarket-go/internal/middleware"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	eng      *engine.Engine
	ai       *ai.Generator
	sessions *scs.SessionManager
	images   *imaging.Processor
	cache    cache.Cache
	log      *slog.Logger
	version  string
}

// Options configures a Handler.
type Options struct {
	Engine   *engine.Engine
	AI       *ai.Generator
	Sessions *scs.SessionManager
	Images   *imaging.Processor
	Cache    cache.Cache
	Logger   *slog.Logger
	Version  string
}

// New creates a Handler.
func New(opts Options) *Handler {
	h := &Handler{
		eng:      opts.Engine,
		ai:       opts.AI,
		sessions: opts.Sessions,
		images:   opts.Images,
		cache:    opts.Cache,
		log:      opts.Logger,
		version:  opts.Version,
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	if h.version == "" {
		h.version = "dev"
	}
	return h
}

// Routes registers all API routes. The router must already run the
// session and LoadUser middleware.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		// Public storefront
		r.Get("/status", h.Status)
		r.Get("/projects", h.ListProjects)
		r.Get("/projects/{id}", h.GetProject)
		r.Get("/config", h.GetConfig)

		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/me", h.Me)

		// Signed-in buyers
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Post("/projects/{id}/purchase", h.Purchase)
			r.Get("/orders", h.MyOrders)
		})

		// Admin dashboard
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/orders", h.ListOrders)
			r.Put("/orders/{id}/status", h.UpdateOrderStatus)
			r.Get("/stats", h.Stats)

			r.Post("/projects", h.CreateProject)
			r.Put("/projects/{id}", h.UpdateProject)
			r.Delete("/projects/{id}", h.DeleteProject)
			r.Post("/projects/{id}/image", h.UploadProjectImage)
			r.Post("/projects/suggest-price", h.SuggestPrice)

			r.Get("/notifications", h.ListNotifications)
			r.Post("/notifications/{id}/read", h.MarkNotificationRead)
			r.Delete("/notifications", h.ClearNotifications)

			r.Get("/config", h.GetConfig)
			r.Put("/config", h.UpdateConfig)
		})
	})
}
