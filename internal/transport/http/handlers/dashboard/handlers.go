package dashboardhandler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/employee"
	"simpeg/internal/domain/reports"
	"simpeg/internal/transport/http/api"
	"simpeg/internal/transport/http/middleware"
	"simpeg/internal/transport/http/shared"
)

type Handler struct {
	Reports   *reports.Service
	Employees *employee.Store
	Auth      *auth.Store
}

func NewHandler(reportsSvc *reports.Service, employees *employee.Store, authStore *auth.Store) *Handler {
	return &Handler{Reports: reportsSvc, Employees: employees, Auth: authStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.handleEmployeeDashboard)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/dashboard", h.handleAdminDashboard)
	r.Get("/attendance/export", h.handleAttendanceExport)
}

func (h *Handler) handleEmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	emp, _, ok := shared.ResolveEmployee(w, r, h.Employees, h.Auth)
	if !ok {
		return
	}

	dash, err := h.Reports.EmployeeDashboard(r.Context(), emp, time.Now().UTC())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to build dashboard", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, dash, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Reports.AdminDashboard(r.Context(), time.Now().UTC())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to build dashboard", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, dash, middleware.GetRequestID(r.Context()))
}

// handleAttendanceExport streams a month of attendance as CSV or XLSX.
func (h *Handler) handleAttendanceExport(w http.ResponseWriter, r *http.Request) {
	monthRaw := strings.TrimSpace(r.URL.Query().Get("month"))
	month, err := shared.ParseMonth(monthRaw)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be in YYYY-MM format", middleware.GetRequestID(r.Context()))
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		api.Fail(w, http.StatusBadRequest, "invalid_format", "format must be csv or xlsx", middleware.GetRequestID(r.Context()))
		return
	}

	rows, err := h.Reports.MonthlyAttendanceRows(r.Context(), month)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to collect attendance", middleware.GetRequestID(r.Context()))
		return
	}

	var body []byte
	contentType := "text/csv"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		body, err = reports.WriteXLSX(rows, month)
	} else {
		body, err = reports.WriteCSV(rows)
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render export", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", reports.ExportFilename(month, format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
