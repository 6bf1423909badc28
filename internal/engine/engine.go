// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package engine implements the storefront state engine. It owns the
// five persisted state slots (projects, purchases, notifications,
// marketplace config and the current user) and exposes every operation
// that reads or mutates them. One engine is constructed per process;
// it is safe for concurrent use by the HTTP layer.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/omarket-go/internal/model"
	"github.com/olegiv/omarket-go/internal/store"
)

// Engine errors surfaced to callers. Update operations that target an
// unknown id are silent no-ops rather than errors.
var (
	ErrAuthRequired = errors.New("engine: authentication required")
	ErrEmptyEmail   = errors.New("engine: email must not be empty")
	ErrNotFound     = errors.New("engine: not found")
)

// Engine holds the in-memory state and flushes a whole-collection
// snapshot to the store after every mutation. Snapshot write failures
// are logged and absorbed; durable storage is best effort by contract
// while the in-memory state remains authoritative for the session.
type Engine struct {
	mu    sync.RWMutex
	snaps *store.Snapshots
	log   *slog.Logger

	adminEmail string
	now        func() time.Time
	newID      func() string

	projects      []model.Project
	purchases     []model.Purchase
	notifications []model.Notification
	config        model.MarketplaceConfig
	user          *model.User
}

// Options configures a new Engine. AdminEmail is the fixed
// administrator address; Now and NewID default to time.Now and UUID
// generation and exist so tests can pin them.
type Options struct {
	AdminEmail string
	Logger     *slog.Logger
	Now        func() time.Time
	NewID      func() string
}

// New loads all five state slots and returns a ready engine. An absent
// or unparseable snapshot is replaced by its documented default: empty
// collections, the default marketplace config, no signed-in user.
func New(ctx context.Context, snaps *store.Snapshots, opts Options) (*Engine, error) {
	if snaps == nil {
		return nil, errors.New("engine: snapshot store is required")
	}

	e := &Engine{
		snaps:      snaps,
		log:        opts.Logger,
		adminEmail: opts.AdminEmail,
		now:        opts.Now,
		newID:      opts.NewID,
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.now == nil {
		// UTC keeps timestamps stable across the JSON round trip.
		e.now = func() time.Time { return time.Now().UTC() }
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}

	e.projects = []model.Project{}
	e.purchases = []model.Purchase{}
	e.notifications = []model.Notification{}
	e.config = model.DefaultMarketplaceConfig(opts.AdminEmail)

	e.loadSlot(ctx, store.SlotProjects, &e.projects)
	e.loadSlot(ctx, store.SlotPurchases, &e.purchases)
	e.loadSlot(ctx, store.SlotNotifications, &e.notifications)
	e.loadSlot(ctx, store.SlotConfig, &e.config)

	var u model.User
	if e.loadSlot(ctx, store.SlotUser, &u) && u.ID != "" {
		e.user = &u
	}

	return e, nil
}

// loadSlot decodes a snapshot into dst. It reports whether a snapshot
// was present and valid; on a malformed snapshot dst is reset to its
// prior (default) value and the corruption is logged, never fatal.
func (e *Engine) loadSlot(ctx context.Context, slot string, dst any) bool {
	data, err := e.snaps.Get(ctx, slot)
	if errors.Is(err, store.ErrNoSnapshot) {
		return false
	}
	if err != nil {
		e.log.Warn("reading snapshot failed, using default", "slot", slot, "error", err)
		return false
	}

	raw, _ := json.Marshal(dst)
	if err := json.Unmarshal(data, dst); err != nil {
		e.log.Warn("malformed snapshot, using default", "slot", slot, "error", err)
		// Restore whatever default was in dst before the failed decode.
		_ = json.Unmarshal(raw, dst)
		return false
	}
	return true
}

// persist writes one or more slots. Multi-slot writes go through a
// single transaction. Failures are logged and absorbed.
func (e *Engine) persist(ctx context.Context, slots map[string]any) {
	encoded := make(map[string][]byte, len(slots))
	for slot, v := range slots {
		data, err := json.Marshal(v)
		if err != nil {
			e.log.Warn("encoding snapshot failed", "slot", slot, "error", err)
			return
		}
		encoded[slot] = data
	}

	var err error
	if len(encoded) == 1 {
		for slot, data := range encoded {
			err = e.snaps.Put(ctx, slot, data)
		}
	} else {
		err = e.snaps.PutMany(ctx, encoded)
	}
	if err != nil {
		e.log.Warn("writing snapshot failed", "error", err)
	}
}
