package attendancehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"simpeg/internal/domain/attendance"
	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/employee"
	"simpeg/internal/transport/http/api"
	"simpeg/internal/transport/http/middleware"
	"simpeg/internal/transport/http/shared"
)

type Handler struct {
	Store     *attendance.Store
	Employees *employee.Store
	Auth      *auth.Store
}

func NewHandler(store *attendance.Store, employees *employee.Store, authStore *auth.Store) *Handler {
	return &Handler{Store: store, Employees: employees, Auth: authStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Post("/", h.handleMarkToday)
		r.Get("/today", h.handleToday)
		r.Get("/history", h.handleHistory)
	})
}

type markRequest struct {
	CheckIn  *string `json:"checkIn"`
	CheckOut *string `json:"checkOut"`
	Status   string  `json:"status"`
	Notes    string  `json:"notes"`
	Location string  `json:"location"`
}

// handleMarkToday records or updates today's attendance. Past days are
// not writable through this endpoint.
func (h *Handler) handleMarkToday(w http.ResponseWriter, r *http.Request) {
	emp, _, ok := shared.ResolveEmployee(w, r, h.Employees, h.Auth)
	if !ok {
		return
	}

	var payload markRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	payload.Status = strings.ToLower(strings.TrimSpace(payload.Status))
	v.Required("status", payload.Status, "status is required")
	v.Enum("status", payload.Status, attendance.Statuses, "must be one of present, late, absent, permission, sick")
	if payload.CheckIn != nil && *payload.CheckIn != "" {
		if _, err := attendance.ParseClock(*payload.CheckIn); err != nil {
			v.Add("checkIn", "must be a clock time in HH:MM or HH:MM:SS format")
		}
	}
	if payload.CheckOut != nil && *payload.CheckOut != "" {
		if _, err := attendance.ParseClock(*payload.CheckOut); err != nil {
			v.Add("checkOut", "must be a clock time in HH:MM or HH:MM:SS format")
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	record, err := h.Store.UpsertForDate(r.Context(), emp.ID, today, attendance.Mark{
		CheckIn:  payload.CheckIn,
		CheckOut: payload.CheckOut,
		Status:   payload.Status,
		Notes:    payload.Notes,
		Location: payload.Location,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_save_failed", "failed to save attendance", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleToday(w http.ResponseWriter, r *http.Request) {
	emp, _, ok := shared.ResolveEmployee(w, r, h.Employees, h.Auth)
	if !ok {
		return
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	record, err := h.Store.ForDate(r.Context(), emp.ID, today)
	if errors.Is(err, attendance.ErrNotFound) {
		api.Success(w, nil, middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_lookup_failed", "failed to load attendance", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	emp, _, ok := shared.ResolveEmployee(w, r, h.Employees, h.Auth)
	if !ok {
		return
	}

	page := shared.ParsePagination(r, 31, 100)
	records, total, err := h.Store.History(r.Context(), emp.ID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_lookup_failed", "failed to load attendance history", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"records": records,
		"total":   total,
		"limit":   page.Limit,
		"offset":  page.Offset,
	}, middleware.GetRequestID(r.Context()))
}
