package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("leave request not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const requestColumns = `
    id, employee_id, leave_type, start_date, end_date, reason,
    COALESCE(attachment_path, ''), status, COALESCE(admin_notes, ''),
    decided_by, decided_at, created_at, updated_at`

func scanRequest(row pgx.Row) (Request, error) {
	var r Request
	err := row.Scan(&r.ID, &r.EmployeeID, &r.LeaveType, &r.StartDate, &r.EndDate, &r.Reason,
		&r.AttachmentPath, &r.Status, &r.AdminNotes, &r.DecidedBy, &r.DecidedAt, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	if err != nil {
		return Request{}, err
	}
	r.DurationDays, _ = DurationDays(r.StartDate, r.EndDate)
	return r, nil
}

func (s *Store) Create(ctx context.Context, req NewRequest) (Request, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, reason, attachment_path, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING `+requestColumns+`
  `, req.EmployeeID, req.LeaveType, req.StartDate, req.EndDate, req.Reason,
		nullIfEmpty(req.AttachmentPath), StatusPending)
	return scanRequest(row)
}

func (s *Store) Get(ctx context.Context, id int64) (Request, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+requestColumns+`
    FROM leave_requests
    WHERE id = $1
  `, id)
	return scanRequest(row)
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID int64, limit, offset int) ([]Request, int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM leave_requests WHERE employee_id = $1", employeeID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
    SELECT ` + requestColumns + `
    FROM leave_requests
    WHERE employee_id = $1
    ORDER BY created_at DESC
  `
	args := []any{employeeID}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	return s.queryRequests(ctx, query, args, total)
}

func (s *Store) ListByStatus(ctx context.Context, status string, limit, offset int) ([]Request, int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM leave_requests WHERE status = $1", status).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
    SELECT ` + requestColumns + `
    FROM leave_requests
    WHERE status = $1
    ORDER BY created_at DESC
  `
	args := []any{status}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	return s.queryRequests(ctx, query, args, total)
}

func (s *Store) queryRequests(ctx context.Context, query string, args []any, total int) ([]Request, int, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, r)
	}
	return requests, total, rows.Err()
}

func (s *Store) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM leave_requests WHERE status = $1", status).Scan(&count)
	return count, err
}

func (s *Store) updateDecision(ctx context.Context, id int64, status, notes string, adminUserID int64) (Request, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE leave_requests
    SET status = $1, admin_notes = $2, decided_by = $3, decided_at = now(), updated_at = now()
    WHERE id = $4
    RETURNING `+requestColumns+`
  `, status, notes, adminUserID, id)
	return scanRequest(row)
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
