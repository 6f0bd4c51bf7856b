package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"musubi/internal/models"
	"musubi/internal/store"
)

// Projects handles the portfolio project endpoints.
type Projects struct {
	projects *store.ProjectStore
}

// NewProjects creates a new Projects handler group.
func NewProjects(projects *store.ProjectStore) *Projects {
	return &Projects{projects: projects}
}

type projectPayload struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags"`
	Link        string   `json:"link"`
	Image       string   `json:"image"`
}

func (p projectPayload) toModel() *models.Project {
	link := p.Link
	if link == "" {
		link = "#"
	}
	return &models.Project{
		Title:       p.Title,
		Description: p.Description,
		Tags:        p.Tags,
		Link:        link,
		Image:       p.Image,
	}
}

// List returns all projects, newest first. Public.
func (h *Projects) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		slog.Error("project list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load projects")
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// Create adds a new project. Session-gated.
func (h *Projects) Create(w http.ResponseWriter, r *http.Request) {
	var payload projectPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(payload); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	project := payload.toModel()
	if err := h.projects.Create(r.Context(), project); err != nil {
		slog.Error("project create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create project")
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

// Update replaces a project's editable fields. Session-gated.
func (h *Projects) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}

	var payload projectPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(payload); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	updated, err := h.projects.Update(r.Context(), id, payload.toModel())
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		slog.Error("project update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update project")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes a project. Session-gated.
func (h *Projects) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}

	err = h.projects.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		slog.Error("project delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete project")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "project deleted"})
}
