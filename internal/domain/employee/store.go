package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"simpeg/internal/domain/auth"
)

var (
	ErrNotFound  = errors.New("employee not found")
	ErrDuplicate = errors.New("username or email already in use")
)

func mapConstraintErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    e.id, e.user_id, e.badge_no, u.username, u.first_name, u.last_name, u.email,
    e.phone, e.address, e.position, e.department, e.salary, e.join_date,
    COALESCE(e.photo_path, ''), e.is_active, e.created_at, e.updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.UserID, &e.BadgeNo, &e.Username, &e.FirstName, &e.LastName, &e.Email,
		&e.Phone, &e.Address, &e.Position, &e.Department, &e.Salary, &e.JoinDate,
		&e.PhotoPath, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

// Provision creates the login identity and the employee profile in one
// transaction; the badge number is derived from the new user id so a
// failed profile insert also rolls the identity back.
func (s *Store) Provision(ctx context.Context, badgePrefix string, account NewAccount) (Employee, error) {
	hash, err := auth.HashPassword(account.Password)
	if err != nil {
		return Employee{}, err
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Employee{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var userID int64
	if err := tx.QueryRow(ctx, `
    INSERT INTO users (username, email, first_name, last_name, password_hash, is_staff, is_active)
    VALUES ($1, $2, $3, $4, $5, false, true)
    RETURNING id
  `, account.Username, account.Email, account.FirstName, account.LastName, hash).Scan(&userID); err != nil {
		return Employee{}, mapConstraintErr(err)
	}

	badgeNo := BadgeNumber(badgePrefix, userID)
	var employeeID int64
	if err := tx.QueryRow(ctx, `
    INSERT INTO employees (user_id, badge_no, phone, address, position, department, salary, join_date, photo_path, is_active)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true)
    RETURNING id
  `, userID, badgeNo, account.Phone, account.Address, account.Position, account.Department,
		account.Salary, account.JoinDate, nullIfEmpty(account.PhotoPath)).Scan(&employeeID); err != nil {
		return Employee{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Employee{}, err
	}
	return s.GetByID(ctx, employeeID)
}

func (s *Store) GetByID(ctx context.Context, id int64) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees e
    JOIN users u ON e.user_id = u.id
    WHERE e.id = $1
  `, id)
	return scanEmployee(row)
}

func (s *Store) GetByUserID(ctx context.Context, userID int64) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees e
    JOIN users u ON e.user_id = u.id
    WHERE e.user_id = $1
  `, userID)
	return scanEmployee(row)
}

type ListFilter struct {
	Search     string
	Department string
	ActiveOnly bool
	Limit      int
	Offset     int
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Employee, int, error) {
	query := `
    SELECT ` + employeeColumns + `
    FROM employees e
    JOIN users u ON e.user_id = u.id
    WHERE 1=1
  `
	countQuery := `
    SELECT COUNT(1)
    FROM employees e
    JOIN users u ON e.user_id = u.id
    WHERE 1=1
  `
	var args []any
	var clauses string

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		clauses += ` AND (LOWER(u.first_name || ' ' || u.last_name) LIKE $1 OR LOWER(e.badge_no) LIKE $1 OR LOWER(u.username) LIKE $1)`
	}
	if dept := strings.TrimSpace(filter.Department); dept != "" {
		args = append(args, dept)
		clauses += fmt.Sprintf(" AND e.department = $%d", len(args))
	}
	if filter.ActiveOnly {
		clauses += " AND e.is_active"
	}

	var total int
	if err := s.DB.QueryRow(ctx, countQuery+clauses, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += clauses + " ORDER BY e.created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

func (s *Store) Recent(ctx context.Context, limit int) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees e
    JOIN users u ON e.user_id = u.id
    ORDER BY e.join_date DESC
    LIMIT $1
  `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (Employee, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET phone = $1, address = $2, position = $3, department = $4, salary = $5, join_date = $6,
        photo_path = $7, updated_at = now()
    WHERE id = $8
  `, update.Phone, update.Address, update.Position, update.Department, update.Salary,
		update.JoinDate, nullIfEmpty(update.PhotoPath), id)
	if err != nil {
		return Employee{}, err
	}
	if tag.RowsAffected() == 0 {
		return Employee{}, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// Deactivate soft-disables both the profile and its login identity.
// Attendance, leave and salary history stay in place.
func (s *Store) Deactivate(ctx context.Context, id int64) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var userID int64
	if err := tx.QueryRow(ctx, `
    UPDATE employees SET is_active = false, updated_at = now() WHERE id = $1
    RETURNING user_id
  `, id).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if _, err := tx.Exec(ctx, "UPDATE users SET is_active = false WHERE id = $1", userID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) CountActive(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE is_active").Scan(&count)
	return count, err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
