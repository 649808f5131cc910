package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"simpeg/internal/domain/attendance"
)

// ExportRow is one line of the monthly attendance export.
type ExportRow struct {
	BadgeNo  string
	Name     string
	Date     string
	CheckIn  string
	CheckOut string
	Status   string
	IsLate   bool
	Notes    string
}

var exportHeader = []string{"Badge", "Name", "Date", "Check in", "Check out", "Status", "Late", "Notes"}

// MonthlyAttendanceRows collects every attendance row in the given
// month joined with the employee identity, ordered by date then badge.
func (s *Service) MonthlyAttendanceRows(ctx context.Context, month time.Time) ([]ExportRow, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := s.DB.Query(ctx, `
    SELECT e.badge_no, TRIM(u.first_name || ' ' || u.last_name), a.date,
           COALESCE(a.check_in, ''), COALESCE(a.check_out, ''),
           a.status, COALESCE(a.notes, '')
    FROM attendance a
    JOIN employees e ON a.employee_id = e.id
    JOIN users u ON e.user_id = u.id
    WHERE a.date >= $1 AND a.date < $2
    ORDER BY a.date ASC, e.badge_no ASC
  `, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExportRow
	for rows.Next() {
		var row ExportRow
		var date time.Time
		if err := rows.Scan(&row.BadgeNo, &row.Name, &date, &row.CheckIn, &row.CheckOut,
			&row.Status, &row.Notes); err != nil {
			return nil, err
		}
		row.Date = date.Format("2006-01-02")
		// Lateness is never stored, only derived from the check-in clock.
		row.IsLate = attendance.IsLate(&row.CheckIn, s.Attendance.WorkdayStart)
		out = append(out, row)
	}
	return out, rows.Err()
}

func lateLabel(isLate bool) string {
	if isLate {
		return "yes"
	}
	return "no"
}

// WriteCSV renders export rows with a header line.
func WriteCSV(rows []ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{row.BadgeNo, row.Name, row.Date, row.CheckIn, row.CheckOut,
			row.Status, lateLabel(row.IsLate), row.Notes}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteXLSX renders export rows as a single-sheet workbook.
func WriteXLSX(rows []ExportRow, month time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance " + month.Format("2006-01")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := []any{row.BadgeNo, row.Name, row.Date, row.CheckIn, row.CheckOut,
			row.Status, lateLabel(row.IsLate), row.Notes}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFilename builds the download name for a monthly export.
func ExportFilename(month time.Time, format string) string {
	return fmt.Sprintf("attendance-%s.%s", month.Format("2006-01"), format)
}
