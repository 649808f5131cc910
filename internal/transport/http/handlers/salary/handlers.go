package salaryhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/employee"
	"simpeg/internal/domain/salary"
	"simpeg/internal/transport/http/api"
	"simpeg/internal/transport/http/middleware"
	"simpeg/internal/transport/http/shared"
)

type Handler struct {
	Store     *salary.Store
	Service   *salary.Service
	Employees *employee.Store
	Auth      *auth.Store
}

func NewHandler(store *salary.Store, service *salary.Service, employees *employee.Store, authStore *auth.Store) *Handler {
	return &Handler{Store: store, Service: service, Employees: employees, Auth: authStore}
}

// RegisterRoutes mounts the employee's own salary history.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/salary", h.handleOwnHistory)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/salaries", func(r chi.Router) {
		r.Post("/", h.handleUpsert)
		r.Get("/", h.handleList)
		r.Get("/{salaryID}/slip", h.handleSlip)
	})
}

func (h *Handler) handleOwnHistory(w http.ResponseWriter, r *http.Request) {
	emp, _, ok := shared.ResolveEmployee(w, r, h.Employees, h.Auth)
	if !ok {
		return
	}

	page := shared.ParsePagination(r, 12, 60)
	salaries, err := h.Store.List(r.Context(), salary.ListFilter{
		EmployeeID: emp.ID,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_list_failed", "failed to list salary history", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{"salaries": salaries}, middleware.GetRequestID(r.Context()))
}

type upsertRequest struct {
	EmployeeID  int64   `json:"employeeId"`
	Month       string  `json:"month"`
	BasicSalary float64 `json:"basicSalary"`
	Allowance   float64 `json:"allowance"`
	Bonus       float64 `json:"bonus"`
	Deduction   float64 `json:"deduction"`
	PaymentDate string  `json:"paymentDate"`
	Notes       string  `json:"notes"`
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var payload upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	if payload.EmployeeID <= 0 {
		v.Add("employeeId", "must reference an employee")
	}
	month, err := shared.ParseMonth(strings.TrimSpace(payload.Month))
	if err != nil {
		v.Add("month", "must be a month in YYYY-MM format")
	}
	if payload.BasicSalary < 0 {
		v.Add("basicSalary", "must not be negative")
	}
	var paymentDate *time.Time
	if strings.TrimSpace(payload.PaymentDate) != "" {
		if parsed, ok := v.Date("paymentDate", payload.PaymentDate); ok {
			paymentDate = &parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if _, err := h.Employees.GetByID(r.Context(), payload.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_lookup_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Store.UpsertForMonth(r.Context(), salary.Input{
		EmployeeID:  payload.EmployeeID,
		Month:       month,
		BasicSalary: payload.BasicSalary,
		Allowance:   payload.Allowance,
		Bonus:       payload.Bonus,
		Deduction:   payload.Deduction,
		PaymentDate: paymentDate,
		Notes:       payload.Notes,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_save_failed", "failed to save salary", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 20, 100)
	filter := salary.ListFilter{Limit: page.Limit, Offset: page.Offset}

	if raw := r.URL.Query().Get("employeeId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
			return
		}
		filter.EmployeeID = id
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		month, err := shared.ParseMonth(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be in YYYY-MM format", middleware.GetRequestID(r.Context()))
			return
		}
		filter.Month = &month
	}

	salaries, err := h.Store.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_list_failed", "failed to list salaries", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{"salaries": salaries}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSlip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "salaryID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid salary id", middleware.GetRequestID(r.Context()))
		return
	}

	pdf, err := h.Service.RenderSlipPDF(r.Context(), id)
	if errors.Is(err, salary.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "salary record not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "slip_failed", "failed to render salary slip", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=salary-slip-%d.pdf", id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
