package salary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("salary record not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const salaryColumns = `
    id, employee_id, month, basic_salary, allowance, bonus, deduction, total_salary,
    payment_date, COALESCE(notes, ''), created_at`

func scanSalary(row pgx.Row) (Salary, error) {
	var s Salary
	err := row.Scan(&s.ID, &s.EmployeeID, &s.Month, &s.BasicSalary, &s.Allowance, &s.Bonus,
		&s.Deduction, &s.TotalSalary, &s.PaymentDate, &s.Notes, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Salary{}, ErrNotFound
	}
	return s, err
}

// UpsertForMonth saves one month's pay, recomputing total_salary on
// every write. The unique (employee_id, month) key makes a repeat save
// a replace, not a second row.
func (s *Store) UpsertForMonth(ctx context.Context, input Input) (Salary, error) {
	month := NormalizeMonth(input.Month)
	total := ComputeTotal(input.BasicSalary, input.Allowance, input.Bonus, input.Deduction)

	row := s.DB.QueryRow(ctx, `
    INSERT INTO salaries (employee_id, month, basic_salary, allowance, bonus, deduction, total_salary, payment_date, notes)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    ON CONFLICT (employee_id, month) DO UPDATE SET
      basic_salary = EXCLUDED.basic_salary,
      allowance = EXCLUDED.allowance,
      bonus = EXCLUDED.bonus,
      deduction = EXCLUDED.deduction,
      total_salary = EXCLUDED.total_salary,
      payment_date = EXCLUDED.payment_date,
      notes = EXCLUDED.notes
    RETURNING `+salaryColumns+`
  `, input.EmployeeID, month, input.BasicSalary, input.Allowance, input.Bonus, input.Deduction,
		total, input.PaymentDate, input.Notes)
	return scanSalary(row)
}

func (s *Store) Get(ctx context.Context, id int64) (Salary, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+salaryColumns+`
    FROM salaries
    WHERE id = $1
  `, id)
	return scanSalary(row)
}

type ListFilter struct {
	EmployeeID int64
	Month      *time.Time
	Limit      int
	Offset     int
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Salary, error) {
	query := `
    SELECT ` + salaryColumns + `
    FROM salaries
    WHERE 1=1
  `
	var args []any
	if filter.EmployeeID > 0 {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Month != nil {
		args = append(args, NormalizeMonth(*filter.Month))
		query += fmt.Sprintf(" AND month = $%d", len(args))
	}
	query += " ORDER BY month DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var salaries []Salary
	for rows.Next() {
		record, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		salaries = append(salaries, record)
	}
	return salaries, rows.Err()
}

// MonthTotal sums total_salary for a month; an empty month reports 0.
func (s *Store) MonthTotal(ctx context.Context, month time.Time) (float64, error) {
	var total float64
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(total_salary), 0)
    FROM salaries
    WHERE month = $1
  `, NormalizeMonth(month)).Scan(&total)
	return total, err
}
