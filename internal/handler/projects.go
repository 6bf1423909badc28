// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"path"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/omarket-go/internal/model"
	"github.com/olegiv/omarket-go/internal/render"
)

// maxImageUploadSize caps project image uploads at 10 MB.
const maxImageUploadSize = 10 << 20

// ProjectDetail is a catalog project enriched for the detail page.
type ProjectDetail struct {
	model.Project
	LongDescriptionHTML string  `json:"long_description_html,omitempty"`
	Pitch               string  `json:"pitch,omitempty"`
	EffectivePrice      float64 `json:"effective_price"`
}

// ListProjects returns the catalog, optionally filtered by type.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	var projects []model.Project
	if t := r.URL.Query().Get("type"); t != "" {
		if !model.IsValidProjectType(t) {
			WriteBadRequest(w, "Unknown project type", map[string]string{"type": t})
			return
		}
		projects = h.eng.ProjectsByType(t)
	} else {
		projects = h.eng.Projects()
	}

	WriteSuccess(w, projects, &Meta{Total: len(projects)})
}

// GetProject returns one project with its rendered long description
// and a generated sales pitch.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, ok := h.eng.ProjectByID(chi.URLParam(r, "id"))
	if !ok {
		WriteNotFound(w, "Project not found")
		return
	}

	detail := ProjectDetail{
		Project:        project,
		EffectivePrice: h.eng.EffectivePrice(project.Price),
	}

	if project.LongDescription != "" {
		html, err := render.Markdown(project.LongDescription)
		if err != nil {
			h.log.Error("rendering long description failed", "project_id", project.ID, "error", err)
		} else {
			detail.LongDescriptionHTML = html
		}
	}

	if h.ai != nil {
		detail.Pitch = h.ai.ProjectPitch(r.Context(), project.ID, project.Name, project.Description)
	}

	WriteSuccess(w, detail, nil)
}

// CreateProject adds a catalog project. Missing fields get storefront
// defaults.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var draft model.ProjectDraft
	if err := decodeJSON(r, &draft); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if draft.Type != "" && !model.IsValidProjectType(draft.Type) {
		WriteValidationError(w, map[string]string{"type": "Unknown project type"})
		return
	}

	project := h.eng.AddProject(r.Context(), draft)
	WriteCreated(w, project)
}

// UpdateProject replaces a project record. Updating an unknown id is a
// silent no-op, matching the engine's semantics, so the handler reports
// not found without touching anything.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.eng.ProjectByID(id); !ok {
		WriteNotFound(w, "Project not found")
		return
	}

	var project model.Project
	if err := decodeJSON(r, &project); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if project.Type != "" && !model.IsValidProjectType(project.Type) {
		WriteValidationError(w, map[string]string{"type": "Unknown project type"})
		return
	}
	project.ID = id

	h.eng.UpdateProject(r.Context(), project)
	if h.ai != nil {
		h.ai.InvalidatePitch(r.Context(), id)
	}

	updated, _ := h.eng.ProjectByID(id)
	WriteSuccess(w, updated, nil)
}

// DeleteProject removes a project from the catalog. Purchases that
// reference it keep their captured name and price.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.eng.ProjectByID(id); !ok {
		WriteNotFound(w, "Project not found")
		return
	}

	h.eng.DeleteProject(r.Context(), id)
	if h.ai != nil {
		h.ai.InvalidatePitch(r.Context(), id)
	}
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}

// SuggestPriceRequest is the body of POST /api/admin/projects/suggest-price.
type SuggestPriceRequest struct {
	Name     string   `json:"name"`
	Features []string `json:"features"`
}

// SuggestPrice returns an AI price suggestion for a draft project.
func (h *Handler) SuggestPrice(w http.ResponseWriter, r *http.Request) {
	var req SuggestPriceRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	price := h.ai.SuggestPrice(r.Context(), req.Name, req.Features)
	WriteSuccess(w, map[string]float64{"price": price}, nil)
}

// UploadProjectImage accepts a multipart image upload and points the
// project's image at the processed card variant.
func (h *Handler) UploadProjectImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	project, ok := h.eng.ProjectByID(id)
	if !ok {
		WriteNotFound(w, "Project not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadSize)
	if err := r.ParseMultipartForm(maxImageUploadSize); err != nil {
		WriteBadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteBadRequest(w, "Missing image file", nil)
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.images.Process(file, id, header.Filename)
	if err != nil {
		h.log.Error("image processing failed", "project_id", id, "error", err)
		WriteBadRequest(w, "Could not process image", nil)
		return
	}

	project.ImageURL = fmt.Sprintf("/uploads/cards/%s/%s", id, path.Base(filepath.ToSlash(result.CardPath)))
	h.eng.UpdateProject(r.Context(), project)

	WriteSuccess(w, map[string]any{
		"image_url": project.ImageURL,
		"width":     result.Width,
		"height":    result.Height,
		"mime_type": result.MimeType,
	}, nil)
}
