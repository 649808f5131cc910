package salary

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jung-kurt/gofpdf"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

type SlipData struct {
	Salary
	EmployeeName string
	BadgeNo      string
	Position     string
	Department   string
}

func (s *Service) SlipData(ctx context.Context, salaryID int64) (SlipData, error) {
	var data SlipData
	err := s.Store.DB.QueryRow(ctx, `
    SELECT s.id, s.employee_id, s.month, s.basic_salary, s.allowance, s.bonus, s.deduction,
           s.total_salary, s.payment_date, COALESCE(s.notes, ''), s.created_at,
           TRIM(u.first_name || ' ' || u.last_name), e.badge_no, e.position, e.department
    FROM salaries s
    JOIN employees e ON s.employee_id = e.id
    JOIN users u ON e.user_id = u.id
    WHERE s.id = $1
  `, salaryID).Scan(&data.ID, &data.EmployeeID, &data.Month, &data.BasicSalary, &data.Allowance,
		&data.Bonus, &data.Deduction, &data.TotalSalary, &data.PaymentDate, &data.Notes,
		&data.CreatedAt, &data.EmployeeName, &data.BadgeNo, &data.Position, &data.Department)
	if err == pgx.ErrNoRows {
		return SlipData{}, ErrNotFound
	}
	return data, err
}

// RenderSlipPDF produces a one-page salary slip.
func (s *Service) RenderSlipPDF(ctx context.Context, salaryID int64) ([]byte, error) {
	data, err := s.SlipData(ctx, salaryID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Salary Slip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", data.EmployeeName, data.BadgeNo))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Position: %s, %s", data.Position, data.Department))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Month: %s", data.Month.Format("January 2006")))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Basic salary: %.2f", data.BasicSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Allowance: %.2f", data.Allowance))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Bonus: %.2f", data.Bonus))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deduction: %.2f", data.Deduction))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f", data.TotalSalary))
	if data.PaymentDate != nil {
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Paid on: %s", data.PaymentDate.Format("2006-01-02")))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
