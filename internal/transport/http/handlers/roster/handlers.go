package rosterhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"simpeg/internal/domain/roster"
	"simpeg/internal/transport/http/api"
	"simpeg/internal/transport/http/middleware"
	"simpeg/internal/transport/http/shared"
)

type Handler struct {
	Store *roster.Store
}

func NewHandler(store *roster.Store) *Handler {
	return &Handler{Store: store}
}

// RegisterPublicRoutes mounts the unauthenticated team page.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/team", h.handlePublicList)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/team", func(r chi.Router) {
		r.Get("/", h.handleAdminList)
		r.Post("/", h.handleCreate)
		r.Put("/{developerID}", h.handleUpdate)
		r.Delete("/{developerID}", h.handleDelete)
	})
}

func (h *Handler) handlePublicList(w http.ResponseWriter, r *http.Request) {
	devs, err := h.Store.ListActive(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "team_list_failed", "failed to list team members", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"developers": devs}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAdminList(w http.ResponseWriter, r *http.Request) {
	devs, err := h.Store.ListAll(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "team_list_failed", "failed to list team members", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"developers": devs}, middleware.GetRequestID(r.Context()))
}

type developerRequest struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
	PhotoURL  string `json:"photoUrl"`
	GithubURL string `json:"githubUrl"`
	Rank      int    `json:"rank"`
	IsActive  *bool  `json:"isActive"`
}

func (h *Handler) decodeDeveloper(w http.ResponseWriter, r *http.Request) (roster.Input, bool) {
	var payload developerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return roster.Input{}, false
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("role", payload.Role, "role is required")
	if payload.Rank < 0 {
		v.Add("rank", "must not be negative")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return roster.Input{}, false
	}

	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}
	return roster.Input{
		Name:      payload.Name,
		Role:      payload.Role,
		Bio:       payload.Bio,
		PhotoURL:  payload.PhotoURL,
		GithubURL: payload.GithubURL,
		Rank:      payload.Rank,
		IsActive:  active,
	}, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeDeveloper(w, r)
	if !ok {
		return
	}

	dev, err := h.Store.Create(r.Context(), input)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "team_create_failed", "failed to create team member", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, dev, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "developerID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid developer id", middleware.GetRequestID(r.Context()))
		return
	}

	input, ok := h.decodeDeveloper(w, r)
	if !ok {
		return
	}

	dev, err := h.Store.Update(r.Context(), id, input)
	if errors.Is(err, roster.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "team member not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "team_update_failed", "failed to update team member", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, dev, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "developerID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid developer id", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, roster.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "team member not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "team_delete_failed", "failed to delete team member", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
