// Package presenter formats roster data for the text console.
// Presenters turn domain objects and query results into the exact strings the
// menu prints; they never read input or touch the roster.
package presenter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alem-hub/gradebook/internal/application/query"
	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

const (
	tableWidth = 110
	menuWidth  = 50
)

// Messages shown by the menu.
const (
	MsgNoStudents    = "No students found!"
	MsgEmptyName     = "Name cannot be empty!"
	MsgInvalidMarks  = "Error: Please enter valid numbers for marks!"
	MsgInvalidChoice = "Invalid choice! Please select 1-6."
	MsgGoodbye       = "Thank you for using Student Marks & Grades Calculator!"
	MsgScoreCount    = "Error: Please provide marks for all 5 subjects (Math, Science, English, Social, Arts)"
	MsgScoreRange    = "Error: Marks should be between 0 and 100"
)

// ─────────────────────────────────────────────────────────────────────────────
// MENU
// ─────────────────────────────────────────────────────────────────────────────

// Menu renders the main menu without the input prompt.
func Menu() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", menuWidth) + "\n")
	sb.WriteString("STUDENT MARKS & GRADES CALCULATOR\n")
	sb.WriteString(strings.Repeat("=", menuWidth) + "\n")
	sb.WriteString("1. Add New Student\n")
	sb.WriteString("2. Display All Students\n")
	sb.WriteString("3. Find Student\n")
	sb.WriteString("4. Class Statistics\n")
	sb.WriteString("5. Top Performers\n")
	sb.WriteString("6. Exit\n")
	sb.WriteString(strings.Repeat("-", menuWidth) + "\n")
	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// STUDENTS
// ─────────────────────────────────────────────────────────────────────────────

const tableFormat = "%-15s %-6s %-8s %-8s %-7s %-6s %-7s %-8s %-5s\n"

// StudentTable renders all students as a fixed-width table.
func StudentTable(students []*student.Student) string {
	if len(students) == 0 {
		return MsgNoStudents + "\n"
	}

	var sb strings.Builder
	sb.WriteString("\n" + strings.Repeat("=", tableWidth) + "\n")
	sb.WriteString("STUDENT MARKS & GRADES SUMMARY\n")
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")

	fmt.Fprintf(&sb, tableFormat,
		"Student Name", "Math", "Science", "English", "Social", "Arts", "Total", "Average", "Grade")
	sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

	for _, s := range students {
		fmt.Fprintf(&sb, tableFormat,
			s.Name,
			Number(s.Scores.Get(student.Math)),
			Number(s.Scores.Get(student.Science)),
			Number(s.Scores.Get(student.English)),
			Number(s.Scores.Get(student.Social)),
			Number(s.Scores.Get(student.Arts)),
			Number(s.Total),
			Number(s.Average),
			s.Grade,
		)
	}

	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")
	return sb.String()
}

// StudentDetails renders one student's card.
func StudentDetails(s *student.Student) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nStudent Details for %s:\n", s.Name)
	for _, subj := range student.Subjects() {
		fmt.Fprintf(&sb, "%s: %s\n", subj.DisplayName(), Number(s.Scores.Get(subj)))
	}
	fmt.Fprintf(&sb, "Total Marks: %s/%d\n", Number(s.Total), int(student.MaxScore)*student.SubjectCount)
	fmt.Fprintf(&sb, "Average: %s%%\n", Number(s.Average))
	fmt.Fprintf(&sb, "Grade: %s\n", s.Grade)
	return sb.String()
}

// NotFound renders the lookup miss message.
func NotFound(name string) string {
	return fmt.Sprintf("Student '%s' not found!\n", name)
}

// Added renders the confirmation after a successful add.
func Added(s *student.Student) string {
	return fmt.Sprintf("Student %s added successfully!\n", s.Name)
}

// ─────────────────────────────────────────────────────────────────────────────
// STATISTICS
// ─────────────────────────────────────────────────────────────────────────────

// Statistics renders the class statistics block.
func Statistics(stats *roster.Statistics) string {
	var sb strings.Builder
	sb.WriteString("\nCLASS STATISTICS:\n")
	fmt.Fprintf(&sb, "Total Students: %d\n", stats.TotalStudents)
	fmt.Fprintf(&sb, "Class Average: %.2f/100\n", stats.ClassAverage)
	fmt.Fprintf(&sb, "Class Average Grade: %s\n", stats.ClassGrade)

	sb.WriteString("\nGrade Distribution:\n")
	for _, share := range stats.Distribution {
		fmt.Fprintf(&sb, "Grade %s: %d students (%.1f%%)\n", share.Grade, share.Count, share.Percentage)
	}
	return sb.String()
}

// TopPerformers renders the ranked list.
func TopPerformers(res *query.TopPerformersResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nTOP %d PERFORMERS:\n", res.Requested)
	sb.WriteString(strings.Repeat("-", menuWidth) + "\n")
	for i, s := range res.Students {
		fmt.Fprintf(&sb, "%d. %s - %s%% (Grade: %s)\n", i+1, s.Name, Number(s.Average), s.Grade)
	}
	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// ERRORS
// ─────────────────────────────────────────────────────────────────────────────

// Error maps a use-case error to the message shown to the user.
func Error(err error) string {
	switch {
	case errors.Is(err, student.ErrInvalidScoreCount):
		return MsgScoreCount + "\n"
	case errors.Is(err, student.ErrScoreOutOfRange):
		return MsgScoreRange + "\n"
	case errors.Is(err, student.ErrEmptyName):
		return MsgEmptyName + "\n"
	case errors.Is(err, roster.ErrEmptyRoster):
		return MsgNoStudents + "\n"
	default:
		return fmt.Sprintf("Error: %v\n", err)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// NUMBERS
// ─────────────────────────────────────────────────────────────────────────────

// Number formats a score the way a person writes it: rounded to two
// decimals, trailing zeros dropped, at least one decimal kept (89 -> "89.0").
func Number(v float64) string {
	s := strconv.FormatFloat(student.RoundAverage(v), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
