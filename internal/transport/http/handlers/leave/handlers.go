package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/employee"
	"simpeg/internal/domain/leave"
	"simpeg/internal/transport/http/api"
	"simpeg/internal/transport/http/middleware"
	"simpeg/internal/transport/http/shared"
)

type Handler struct {
	Service   *leave.Service
	Employees *employee.Store
	Auth      *auth.Store
}

func NewHandler(service *leave.Service, employees *employee.Store, authStore *auth.Store) *Handler {
	return &Handler{Service: service, Employees: employees, Auth: authStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.Post("/requests", h.handleSubmit)
		r.Get("/requests", h.handleListOwn)
	})
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.Get("/requests", h.handleAdminList)
		r.Post("/requests/{requestID}/decision", h.handleDecide)
	})
}

type submitRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	emp, _, ok := shared.ResolveEmployee(w, r, h.Employees, h.Auth)
	if !ok {
		return
	}

	var payload submitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	payload.Type = strings.ToLower(strings.TrimSpace(payload.Type))
	v.Required("type", payload.Type, "leave type is required")
	v.Required("reason", payload.Reason, "reason is required")
	start, startOK := v.Date("startDate", payload.StartDate)
	end, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	req, err := h.Service.Submit(r.Context(), leave.NewRequest{
		EmployeeID: emp.ID,
		LeaveType:  payload.Type,
		StartDate:  start,
		EndDate:    end,
		Reason:     payload.Reason,
	})
	switch {
	case errors.Is(err, leave.ErrInvalidType):
		api.Fail(w, http.StatusBadRequest, "invalid_leave_type", "unknown leave type", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, leave.ErrInvalidRange):
		api.Fail(w, http.StatusBadRequest, "invalid_range", "end date must not be before start date", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "leave_submit_failed", "failed to submit leave request", middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListOwn(w http.ResponseWriter, r *http.Request) {
	emp, _, ok := shared.ResolveEmployee(w, r, h.Employees, h.Auth)
	if !ok {
		return
	}

	page := shared.ParsePagination(r, 20, 100)
	requests, total, err := h.Service.Store.ListByEmployee(r.Context(), emp.ID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list leave requests", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"requests": requests,
		"total":    total,
		"limit":    page.Limit,
		"offset":   page.Offset,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAdminList(w http.ResponseWriter, r *http.Request) {
	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	if status == "" {
		status = leave.StatusPending
	}
	switch status {
	case leave.StatusPending, leave.StatusApproved, leave.StatusRejected:
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_status", "status must be pending, approved, or rejected", middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 20, 100)
	requests, total, err := h.Service.Store.ListByStatus(r.Context(), status, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list leave requests", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"requests": requests,
		"total":    total,
		"limit":    page.Limit,
		"offset":   page.Offset,
	}, middleware.GetRequestID(r.Context()))
}

type decisionRequest struct {
	Decision string `json:"decision"`
	Notes    string `json:"notes"`
}

func (h *Handler) handleDecide(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	requestID, err := strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid request id", middleware.GetRequestID(r.Context()))
		return
	}

	var payload decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	req, err := h.Service.Decide(r.Context(), requestID, strings.ToLower(strings.TrimSpace(payload.Decision)), payload.Notes, user.UserID)
	switch {
	case errors.Is(err, leave.ErrInvalidDecision):
		api.Fail(w, http.StatusBadRequest, "invalid_decision", "decision must be approve or reject", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, leave.ErrAlreadyDecided):
		api.Fail(w, http.StatusConflict, "already_decided", "leave request has already been decided", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "leave_decision_failed", "failed to record decision", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, req, middleware.GetRequestID(r.Context()))
}
