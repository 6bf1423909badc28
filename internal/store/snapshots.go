// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Slot keys for the five persisted state snapshots.
const (
	SlotUser          = "marketplace_user"
	SlotProjects      = "marketplace_projects"
	SlotPurchases     = "marketplace_purchases"
	SlotNotifications = "marketplace_notifications"
	SlotConfig        = "marketplace_config"
)

// ErrNoSnapshot indicates the requested slot holds no snapshot.
var ErrNoSnapshot = errors.New("store: no snapshot")

// Snapshots reads and writes whole-collection state snapshots. Each
// slot holds one serialized value which is overwritten in full after
// every mutation, never patched incrementally.
type Snapshots struct {
	db *sql.DB
}

// NewSnapshots creates a snapshot store over the given database.
func NewSnapshots(db *sql.DB) *Snapshots {
	return &Snapshots{db: db}
}

// Get returns the snapshot stored in a slot, or ErrNoSnapshot.
func (s *Snapshots) Get(ctx context.Context, slot string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM snapshots WHERE slot = ?`, slot,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %q: %w", slot, err)
	}
	return data, nil
}

// Put overwrites the snapshot in a slot.
func (s *Snapshots) Put(ctx context.Context, slot string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (slot, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		slot, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing snapshot %q: %w", slot, err)
	}
	return nil
}

// PutMany overwrites several slots in a single transaction, so paired
// state changes (a purchase and its notification) are durable together
// or not at all.
func (s *Snapshots) PutMany(ctx context.Context, slots map[string][]byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for slot, data := range slots {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshots (slot, data, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT (slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
			slot, data, now,
		); err != nil {
			return fmt.Errorf("writing snapshot %q: %w", slot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshots: %w", err)
	}
	return nil
}

// Delete removes the snapshot in a slot. Deleting an absent slot is
// not an error.
func (s *Snapshots) Delete(ctx context.Context, slot string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("deleting snapshot %q: %w", slot, err)
	}
	return nil
}
