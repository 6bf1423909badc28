// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic database maintenance.
package scheduler

import (
	"database/sql"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler handles periodic maintenance jobs for the snapshot store.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the maintenance jobs and starts the scheduler. The
// WAL checkpoint runs hourly; snapshots are small but write-heavy, so
// without it the WAL file grows unbounded. VACUUM runs nightly to
// reclaim space from overwritten snapshots.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 * * * *", s.checkpointWAL); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("30 3 * * *", s.vacuum); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) checkpointWAL() {
	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		s.logger.Error("WAL checkpoint failed", "error", err)
		return
	}
	s.logger.Debug("WAL checkpoint completed")
}

func (s *Scheduler) vacuum() {
	if _, err := s.db.Exec("VACUUM"); err != nil {
		s.logger.Error("vacuum failed", "error", err)
		return
	}
	s.logger.Debug("vacuum completed")
}
