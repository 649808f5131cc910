package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"simpeg/internal/domain/attendance"
	"simpeg/internal/domain/employee"
	"simpeg/internal/domain/leave"
	"simpeg/internal/domain/salary"
)

// Service aggregates cross-domain counts for the dashboard pages.
type Service struct {
	DB         *pgxpool.Pool
	Employees  *employee.Store
	Attendance *attendance.Store
	Leaves     *leave.Store
	Salaries   *salary.Store
}

func NewService(db *pgxpool.Pool, employees *employee.Store, att *attendance.Store, leaves *leave.Store, salaries *salary.Store) *Service {
	return &Service{DB: db, Employees: employees, Attendance: att, Leaves: leaves, Salaries: salaries}
}

// StatusCounts tallies attendance rows per status between from and to
// inclusive. employeeID of zero means all employees.
type StatusCounts struct {
	Present    int `json:"present"`
	Late       int `json:"late"`
	Absent     int `json:"absent"`
	Permission int `json:"permission"`
	Sick       int `json:"sick"`
	Total      int `json:"total"`
}

func (s *Service) AttendanceStatusCounts(ctx context.Context, employeeID int64, from, to time.Time) (StatusCounts, error) {
	query := `
    SELECT COUNT(*) FILTER (WHERE status = 'present'),
           COUNT(*) FILTER (WHERE status = 'late'),
           COUNT(*) FILTER (WHERE status = 'absent'),
           COUNT(*) FILTER (WHERE status = 'permission'),
           COUNT(*) FILTER (WHERE status = 'sick'),
           COUNT(*)
    FROM attendance
    WHERE date >= $1 AND date <= $2
  `
	args := []any{from, to}
	if employeeID != 0 {
		query += ` AND employee_id = $3`
		args = append(args, employeeID)
	}

	var counts StatusCounts
	err := s.DB.QueryRow(ctx, query, args...).Scan(&counts.Present, &counts.Late,
		&counts.Absent, &counts.Permission, &counts.Sick, &counts.Total)
	return counts, err
}

// EmployeeDashboard is the landing payload for a signed-in employee.
type EmployeeDashboard struct {
	Employee      employee.Employee  `json:"employee"`
	Today         *attendance.Record `json:"today,omitempty"`
	MonthCounts   StatusCounts       `json:"monthAttendance"`
	PendingLeaves []leave.Request    `json:"pendingLeaves"`
	LatestSalary  *salary.Salary     `json:"latestSalary,omitempty"`
}

func (s *Service) EmployeeDashboard(ctx context.Context, emp employee.Employee, now time.Time) (EmployeeDashboard, error) {
	dash := EmployeeDashboard{Employee: emp}

	today, err := s.Attendance.ForDate(ctx, emp.ID, now)
	switch err {
	case nil:
		dash.Today = &today
	case attendance.ErrNotFound:
	default:
		return dash, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	dash.MonthCounts, err = s.AttendanceStatusCounts(ctx, emp.ID, monthStart, monthEnd)
	if err != nil {
		return dash, err
	}

	pending, _, err := s.Leaves.ListByEmployee(ctx, emp.ID, 5, 0)
	if err != nil {
		return dash, err
	}
	for _, req := range pending {
		if req.Status == leave.StatusPending {
			dash.PendingLeaves = append(dash.PendingLeaves, req)
		}
	}

	salaries, err := s.Salaries.List(ctx, salary.ListFilter{EmployeeID: emp.ID, Limit: 1})
	if err != nil {
		return dash, err
	}
	if len(salaries) > 0 {
		dash.LatestSalary = &salaries[0]
	}

	return dash, nil
}

// AdminDashboard summarises the whole organisation for staff users.
type AdminDashboard struct {
	ActiveEmployees  int                    `json:"activeEmployees"`
	PendingLeaves    int                    `json:"pendingLeaves"`
	PendingRequests  []leave.Request        `json:"pendingRequests"`
	TodayCounts      StatusCounts           `json:"todayAttendance"`
	MonthCounts      StatusCounts           `json:"monthAttendance"`
	MonthSalaryTotal float64                `json:"monthSalaryTotal"`
	RecentAttendance []attendance.RecentRow `json:"recentAttendance"`
	RecentHires      []employee.Employee    `json:"recentHires"`
}

func (s *Service) AdminDashboard(ctx context.Context, now time.Time) (AdminDashboard, error) {
	var dash AdminDashboard
	var err error

	dash.ActiveEmployees, err = s.Employees.CountActive(ctx)
	if err != nil {
		return dash, err
	}

	dash.PendingLeaves, err = s.Leaves.CountByStatus(ctx, leave.StatusPending)
	if err != nil {
		return dash, err
	}

	dash.PendingRequests, _, err = s.Leaves.ListByStatus(ctx, leave.StatusPending, 10, 0)
	if err != nil {
		return dash, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dash.TodayCounts, err = s.AttendanceStatusCounts(ctx, 0, today, today)
	if err != nil {
		return dash, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	dash.MonthCounts, err = s.AttendanceStatusCounts(ctx, 0, monthStart, monthEnd)
	if err != nil {
		return dash, err
	}

	dash.MonthSalaryTotal, err = s.Salaries.MonthTotal(ctx, salary.NormalizeMonth(now))
	if err != nil {
		return dash, err
	}

	dash.RecentAttendance, err = s.Attendance.Recent(ctx, 10)
	if err != nil {
		return dash, err
	}

	dash.RecentHires, err = s.Employees.Recent(ctx, 5)
	if err != nil {
		return dash, err
	}

	return dash, nil
}
