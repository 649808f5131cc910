package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("attendance record not found")

type Store struct {
	DB           *pgxpool.Pool
	WorkdayStart string
}

func NewStore(db *pgxpool.Pool, workdayStart string) *Store {
	if workdayStart == "" {
		workdayStart = DefaultWorkdayStart
	}
	return &Store{DB: db, WorkdayStart: workdayStart}
}

const recordColumns = `
    id, employee_id, date, check_in, check_out, status, COALESCE(notes, ''), COALESCE(location, ''), created_at`

func (s *Store) scanRecord(row pgx.Row) (Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.EmployeeID, &r.Date, &r.CheckIn, &r.CheckOut, &r.Status, &r.Notes, &r.Location, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	r.IsLate = IsLate(r.CheckIn, s.WorkdayStart)
	return r, nil
}

// UpsertForDate writes the day's record with replace-on-conflict
// semantics: the unique (employee_id, date) key turns a concurrent
// second insert into an update, never a duplicate row. Nil clock
// fields keep whatever was stored before.
func (s *Store) UpsertForDate(ctx context.Context, employeeID int64, date time.Time, mark Mark) (Record, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO attendance (employee_id, date, check_in, check_out, status, notes, location)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    ON CONFLICT (employee_id, date) DO UPDATE SET
      check_in = COALESCE(EXCLUDED.check_in, attendance.check_in),
      check_out = COALESCE(EXCLUDED.check_out, attendance.check_out),
      status = EXCLUDED.status,
      notes = EXCLUDED.notes,
      location = EXCLUDED.location
    RETURNING `+recordColumns+`
  `, employeeID, date, mark.CheckIn, mark.CheckOut, mark.Status, mark.Notes, mark.Location)
	return s.scanRecord(row)
}

func (s *Store) ForDate(ctx context.Context, employeeID int64, date time.Time) (Record, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+recordColumns+`
    FROM attendance
    WHERE employee_id = $1 AND date = $2
  `, employeeID, date)
	return s.scanRecord(row)
}

func (s *Store) History(ctx context.Context, employeeID int64, limit, offset int) ([]Record, int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM attendance WHERE employee_id = $1", employeeID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
    SELECT ` + recordColumns + `
    FROM attendance
    WHERE employee_id = $1
    ORDER BY date DESC, check_in DESC NULLS LAST
  `
	args := []any{employeeID}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := s.scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, r)
	}
	return records, total, rows.Err()
}

// Recent returns the newest records across all employees for the admin
// dashboard, employee name included.
type RecentRow struct {
	Record
	EmployeeName string `json:"employeeName"`
	BadgeNo      string `json:"badgeNo"`
}

func (s *Store) Recent(ctx context.Context, limit int) ([]RecentRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.id, a.employee_id, a.date, a.check_in, a.check_out, a.status,
           COALESCE(a.notes, ''), COALESCE(a.location, ''), a.created_at,
           TRIM(u.first_name || ' ' || u.last_name), e.badge_no
    FROM attendance a
    JOIN employees e ON a.employee_id = e.id
    JOIN users u ON e.user_id = u.id
    ORDER BY a.created_at DESC
    LIMIT $1
  `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecentRow
	for rows.Next() {
		var r RecentRow
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.Date, &r.CheckIn, &r.CheckOut, &r.Status,
			&r.Notes, &r.Location, &r.CreatedAt, &r.EmployeeName, &r.BadgeNo); err != nil {
			return nil, err
		}
		r.IsLate = IsLate(r.CheckIn, s.WorkdayStart)
		out = append(out, r)
	}
	return out, rows.Err()
}
