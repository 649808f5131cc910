package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/employee"
	"simpeg/internal/platform/config"
	"simpeg/internal/transport/http/api"
	"simpeg/internal/transport/http/middleware"
	"simpeg/internal/transport/http/shared"
)

type Handler struct {
	Store *employee.Store
	Auth  *auth.Store
	Cfg   config.Config
}

func NewHandler(store *employee.Store, authStore *auth.Store, cfg config.Config) *Handler {
	return &Handler{Store: store, Auth: authStore, Cfg: cfg}
}

// RegisterRoutes mounts the employee self-service profile route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/me", h.handleOwnProfile)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Post("/", h.handleProvision)
		r.Get("/", h.handleList)
		r.Get("/{employeeID}", h.handleGet)
		r.Put("/{employeeID}", h.handleUpdate)
		r.Post("/{employeeID}/deactivate", h.handleDeactivate)
	})
}

func (h *Handler) handleOwnProfile(w http.ResponseWriter, r *http.Request) {
	emp, _, ok := shared.ResolveEmployee(w, r, h.Store, h.Auth)
	if !ok {
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

type provisionRequest struct {
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Password   string  `json:"password"`
	Phone      string  `json:"phone"`
	Address    string  `json:"address"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
	JoinDate   string  `json:"joinDate"`
	PhotoPath  string  `json:"photoPath"`
}

func (h *Handler) handleProvision(w http.ResponseWriter, r *http.Request) {
	var payload provisionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("username", payload.Username, "username is required")
	v.Required("email", payload.Email, "email is required")
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("position", payload.Position, "position is required")
	v.Required("department", payload.Department, "department is required")
	if len(payload.Password) < 8 {
		v.Add("password", "must be at least 8 characters")
	}
	if payload.Salary < 0 {
		v.Add("salary", "must not be negative")
	}
	joinDate, _ := v.Date("joinDate", payload.JoinDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp, err := h.Store.Provision(r.Context(), h.Cfg.BadgePrefix, employee.NewAccount{
		Username:   payload.Username,
		Email:      payload.Email,
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Password:   payload.Password,
		Phone:      payload.Phone,
		Address:    payload.Address,
		Position:   payload.Position,
		Department: payload.Department,
		Salary:     payload.Salary,
		JoinDate:   joinDate,
		PhotoPath:  payload.PhotoPath,
	})
	if errors.Is(err, employee.ErrDuplicate) {
		api.Fail(w, http.StatusConflict, "duplicate_account", "username or email already in use", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "provision_failed", "failed to provision employee", middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 20, 100)
	filter := employee.ListFilter{
		Search:     strings.TrimSpace(r.URL.Query().Get("search")),
		Department: strings.TrimSpace(r.URL.Query().Get("department")),
		ActiveOnly: r.URL.Query().Get("includeInactive") != "true",
		Limit:      page.Limit,
		Offset:     page.Offset,
	}

	employees, total, err := h.Store.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"employees": employees,
		"total":     total,
		"limit":     page.Limit,
		"offset":    page.Offset,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Store.GetByID(r.Context(), id)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_lookup_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

type updateRequest struct {
	Phone      string  `json:"phone"`
	Address    string  `json:"address"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
	JoinDate   string  `json:"joinDate"`
	PhotoPath  string  `json:"photoPath"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}

	var payload updateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("position", payload.Position, "position is required")
	v.Required("department", payload.Department, "department is required")
	if payload.Salary < 0 {
		v.Add("salary", "must not be negative")
	}
	joinDate, _ := v.Date("joinDate", payload.JoinDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp, err := h.Store.UpdateProfile(r.Context(), id, employee.ProfileUpdate{
		Phone:      payload.Phone,
		Address:    payload.Address,
		Position:   payload.Position,
		Department: payload.Department,
		Salary:     payload.Salary,
		JoinDate:   joinDate,
		PhotoPath:  payload.PhotoPath,
	})
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

// handleDeactivate disables the profile and its login without deleting
// history rows.
func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "deactivate_failed", "failed to deactivate employee", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"status": "deactivated"}, middleware.GetRequestID(r.Context()))
}
