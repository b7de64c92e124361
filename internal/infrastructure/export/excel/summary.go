// Package excel writes the session summary as an XLSX workbook.
package excel

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// Sheet names of the summary workbook.
const (
	SheetStudents   = "Students"
	SheetStatistics = "Statistics"
)

// ErrNoPath is returned when the exporter has nowhere to write.
var ErrNoPath = errors.New("excel: export path is empty")

var studentHeader = []any{
	"Student Name", "Math", "Science", "English", "Social", "Arts", "Total", "Average", "Grade",
}

// Exporter writes summaries to a fixed file path.
type Exporter struct {
	path string
}

// NewExporter creates an Exporter for path.
func NewExporter(path string) *Exporter {
	return &Exporter{path: path}
}

// Path returns the target file.
func (e *Exporter) Path() string {
	return e.path
}

// WriteSummary builds the workbook and saves it to the exporter's path.
// stats may be nil for an empty roster.
func (e *Exporter) WriteSummary(ctx context.Context, students []*student.Student, stats *roster.Statistics) error {
	if e.path == "" {
		return ErrNoPath
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := Build(students, stats)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(e.path); err != nil {
		return fmt.Errorf("excel: save %s: %w", e.path, err)
	}
	return nil
}

// Write builds the workbook and streams it to w.
func Write(w io.Writer, students []*student.Student, stats *roster.Statistics) error {
	f, err := Build(students, stats)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("excel: write workbook: %w", err)
	}
	return nil
}

// Build creates the in-memory workbook. The caller closes it.
func Build(students []*student.Student, stats *roster.Statistics) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetStudents); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("excel: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetStatistics); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("excel: add sheet: %w", err)
	}

	if err := writeStudents(f, students); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeStatistics(f, stats); err != nil {
		_ = f.Close()
		return nil, err
	}

	return f, nil
}

func writeStudents(f *excelize.File, students []*student.Student) error {
	if err := setRow(f, SheetStudents, 1, studentHeader); err != nil {
		return err
	}
	if err := boldRow(f, SheetStudents, 1, len(studentHeader)); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetStudents, "A", "A", 24); err != nil {
		return fmt.Errorf("excel: column width: %w", err)
	}

	for i, s := range students {
		row := []any{s.Name}
		for _, mark := range s.Scores.Slice() {
			row = append(row, mark)
		}
		row = append(row, s.Total, s.Average, s.Grade.String())

		if err := setRow(f, SheetStudents, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeStatistics(f *excelize.File, stats *roster.Statistics) error {
	if stats == nil {
		return setRow(f, SheetStatistics, 1, []any{"No students found!"})
	}

	rows := [][]any{
		{"Total Students", stats.TotalStudents},
		{"Class Average", student.RoundAverage(stats.ClassAverage)},
		{"Class Average Grade", stats.ClassGrade.String()},
		{},
		{"Grade", "Students", "Percentage"},
	}
	for _, share := range stats.Distribution {
		rows = append(rows, []any{share.Grade.String(), share.Count, share.Percentage})
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := setRow(f, SheetStatistics, i+1, row); err != nil {
			return err
		}
	}
	if err := boldRow(f, SheetStatistics, 5, 3); err != nil {
		return err
	}
	return f.SetColWidth(SheetStatistics, "A", "A", 22)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("excel: cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("excel: %s row %d: %w", sheet, row, err)
	}
	return nil
}

func boldRow(f *excelize.File, sheet string, row, cols int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("excel: style: %w", err)
	}

	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}
