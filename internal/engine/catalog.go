// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package engine

import (
	"context"

	"github.com/olegiv/omarket-go/internal/model"
	"github.com/olegiv/omarket-go/internal/store"
	"github.com/olegiv/omarket-go/internal/util"
)

// AddProject creates a catalog listing from a draft, filling unset
// fields with the documented defaults, and prepends it to the catalog.
func (e *Engine) AddProject(ctx context.Context, draft model.ProjectDraft) model.Project {
	p := model.Project{
		ID:              e.newID(),
		Name:            draft.Name,
		Type:            draft.Type,
		Price:           draft.Price,
		Description:     draft.Description,
		LongDescription: draft.LongDescription,
		ImageURL:        draft.ImageURL,
		DemoURL:         draft.DemoURL,
		Features:        draft.Features,
	}
	if p.Name == "" {
		p.Name = model.DefaultProjectName
	}
	if p.Type == "" {
		p.Type = model.ProjectTypePython
	}
	if p.ImageURL == "" {
		p.ImageURL = model.DefaultProjectImageURL
	}
	if p.Features == nil {
		p.Features = model.DefaultProjectFeatures()
	}
	p.Slug = slugFor(p)

	e.mu.Lock()
	e.projects = append([]model.Project{p}, e.projects...)
	projects := snapshotProjects(e.projects)
	e.mu.Unlock()

	e.persist(ctx, map[string]any{store.SlotProjects: projects})
	e.log.Info("project added", "project_id", p.ID, "name", p.Name)
	return p
}

// UpdateProject overwrites the catalog entry matching the project's
// id. An unknown id is a silent no-op.
func (e *Engine) UpdateProject(ctx context.Context, p model.Project) {
	p.Slug = slugFor(p)

	e.mu.Lock()
	found := false
	for i := range e.projects {
		if e.projects[i].ID == p.ID {
			e.projects[i] = p
			found = true
			break
		}
	}
	projects := snapshotProjects(e.projects)
	e.mu.Unlock()

	if !found {
		return
	}
	e.persist(ctx, map[string]any{store.SlotProjects: projects})
	e.log.Info("project updated", "project_id", p.ID)
}

// DeleteProject removes the entry by id unconditionally. Purchases
// keep their denormalized name and price, so order history survives.
func (e *Engine) DeleteProject(ctx context.Context, id string) {
	e.mu.Lock()
	found := false
	kept := e.projects[:0]
	for _, p := range e.projects {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	e.projects = kept
	projects := snapshotProjects(e.projects)
	e.mu.Unlock()

	if !found {
		return
	}
	e.persist(ctx, map[string]any{store.SlotProjects: projects})
	e.log.Info("project deleted", "project_id", id)
}

// Projects returns the catalog, most recently added first.
func (e *Engine) Projects() []model.Project {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshotProjects(e.projects)
}

// ProjectsByType returns catalog entries of one category.
func (e *Engine) ProjectsByType(t string) []model.Project {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]model.Project, 0, len(e.projects))
	for _, p := range e.projects {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

// ProjectByID returns the catalog entry with the given id.
func (e *Engine) ProjectByID(id string) (model.Project, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, p := range e.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

// slugFor derives a URL slug from the project name, falling back to
// the id for names that slugify to nothing.
func slugFor(p model.Project) string {
	if s := util.Slugify(p.Name); s != "" {
		return s
	}
	return p.ID
}

// snapshotProjects copies the catalog for safe hand-off.
func snapshotProjects(src []model.Project) []model.Project {
	out := make([]model.Project, len(src))
	copy(out, src)
	return out
}
