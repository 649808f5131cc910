package shared

import (
	"errors"
	"log/slog"
	"net/http"

	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/employee"
	"simpeg/internal/platform/requestctx"
	"simpeg/internal/transport/http/api"
	"simpeg/internal/transport/http/middleware"
)

// ResolveEmployee maps the authenticated caller to their employee
// record. Staff accounts are rejected from employee-scoped routes, and
// an authenticated user with no employee row gets every session
// revoked so the stale account cannot keep probing.
func ResolveEmployee(w http.ResponseWriter, r *http.Request, employees *employee.Store, sessions *auth.Store) (employee.Employee, auth.Identity, bool) {
	reqID := requestctx.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return employee.Employee{}, auth.Identity{}, false
	}
	if user.IsStaff {
		api.Fail(w, http.StatusForbidden, "staff_account", "staff accounts do not have an employee profile", reqID)
		return employee.Employee{}, user, false
	}

	emp, err := employees.GetByUserID(r.Context(), user.UserID)
	if errors.Is(err, employee.ErrNotFound) {
		if err := sessions.RevokeAllSessions(r.Context(), user.UserID); err != nil {
			slog.Warn("revoke sessions for unlinked user failed", "userId", user.UserID, "err", err)
		}
		api.Fail(w, http.StatusUnauthorized, "employee_not_linked", "no employee profile is linked to this account", reqID)
		return employee.Employee{}, user, false
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "lookup_failed", "failed to load employee profile", reqID)
		return employee.Employee{}, user, false
	}

	return emp, user, true
}
