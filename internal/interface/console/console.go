// Package console implements the interactive text menu of the gradebook.
// It reads choices line by line, dispatches them to the application handlers
// and prints what the presenter renders.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alem-hub/gradebook/internal/application/command"
	"github.com/alem-hub/gradebook/internal/application/query"
	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/internal/interface/console/presenter"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// DEPENDENCIES
// ══════════════════════════════════════════════════════════════════════════════

// Dependencies contains the use cases the menu dispatches to.
type Dependencies struct {
	// Commands
	AddStudent *command.AddStudentHandler

	// Queries
	ListStudents    *query.ListStudentsHandler
	FindStudent     *query.FindStudentHandler
	ClassStatistics *query.ClassStatisticsHandler
	TopPerformers   *query.TopPerformersHandler
}

// errEndOfInput signals that stdin was closed mid-session.
var errEndOfInput = errors.New("console: end of input")

// ══════════════════════════════════════════════════════════════════════════════
// CONSOLE
// ══════════════════════════════════════════════════════════════════════════════

// Console is the menu loop bound to one input and one output stream.
type Console struct {
	in   *bufio.Reader
	out  io.Writer
	deps Dependencies
	log  *logger.Logger
}

// New creates a Console. A nil log discards everything.
func New(in io.Reader, out io.Writer, deps Dependencies, log *logger.Logger) *Console {
	if log == nil {
		log = logger.Nop()
	}
	return &Console{
		in:   bufio.NewReader(in),
		out:  out,
		deps: deps,
		log:  log.With(logger.Component("console")),
	}
}

// Run shows the menu until the user picks Exit, input ends or ctx is
// cancelled. Only a cancelled context is reported as an error.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.print(presenter.Menu())
		choice, err := c.prompt("Enter your choice (1-6): ")
		if err != nil {
			c.println(presenter.MsgGoodbye)
			return nil
		}

		start := time.Now()
		done, err := c.dispatch(ctx, strings.TrimSpace(choice))
		c.log.Debug("menu option handled",
			logger.Operation(strings.TrimSpace(choice)),
			logger.Latency(time.Since(start)),
		)

		switch {
		case errors.Is(err, errEndOfInput):
			c.println(presenter.MsgGoodbye)
			return nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		case err != nil:
			c.log.Warn("menu option failed", logger.Err(err))
			c.print(presenter.Error(err))
		}

		if done {
			return nil
		}
	}
}

// dispatch runs one menu option and reports whether the session is over.
func (c *Console) dispatch(ctx context.Context, choice string) (bool, error) {
	switch choice {
	case "1":
		return false, c.addStudent(ctx)
	case "2":
		return false, c.listStudents(ctx)
	case "3":
		return false, c.findStudent(ctx)
	case "4":
		return false, c.classStatistics(ctx)
	case "5":
		return false, c.topPerformers(ctx)
	case "6":
		c.println(presenter.MsgGoodbye)
		return true, nil
	default:
		c.println(presenter.MsgInvalidChoice)
		return false, nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// MENU OPTIONS
// ─────────────────────────────────────────────────────────────────────────────

func (c *Console) addStudent(ctx context.Context) error {
	c.println("\nADD NEW STUDENT")
	name, err := c.prompt("Enter student name: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		c.println(presenter.MsgEmptyName)
		return nil
	}

	c.println("Enter marks for each subject (0-100):")
	marks := make([]float64, 0, student.SubjectCount)
	for _, subj := range student.Subjects() {
		raw, err := c.prompt(subj.DisplayName() + ": ")
		if err != nil {
			return err
		}
		mark, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			c.println(presenter.MsgInvalidMarks)
			return nil
		}
		marks = append(marks, mark)
	}

	res, err := c.deps.AddStudent.Handle(ctx, command.AddStudentCommand{Name: name, Marks: marks})
	if err != nil {
		return err
	}
	c.print(presenter.Added(res.Student))
	return nil
}

func (c *Console) listStudents(ctx context.Context) error {
	res, err := c.deps.ListStudents.Handle(ctx)
	if err != nil {
		return err
	}
	c.print(presenter.StudentTable(res.Students))
	return nil
}

func (c *Console) findStudent(ctx context.Context) error {
	name, err := c.prompt("Enter student name to search: ")
	if err != nil {
		return err
	}

	s, err := c.deps.FindStudent.Handle(ctx, query.FindStudentQuery{Name: name})
	if errors.Is(err, roster.ErrStudentNotFound) {
		c.print(presenter.NotFound(strings.TrimSpace(name)))
		return nil
	}
	if err != nil {
		return err
	}
	c.print(presenter.StudentDetails(s))
	return nil
}

func (c *Console) classStatistics(ctx context.Context) error {
	stats, err := c.deps.ClassStatistics.Handle(ctx)
	if err != nil {
		return err
	}
	c.print(presenter.Statistics(stats))
	return nil
}

func (c *Console) topPerformers(ctx context.Context) error {
	raw, err := c.prompt(fmt.Sprintf(
		"Enter number of top performers to display (default %d): ",
		c.deps.TopPerformers.DefaultTop(),
	))
	if err != nil {
		return err
	}

	// Blank or malformed input keeps the default.
	n, _ := strconv.Atoi(strings.TrimSpace(raw))

	res, err := c.deps.TopPerformers.Handle(ctx, query.TopPerformersQuery{N: n})
	if err != nil {
		return err
	}
	c.print(presenter.TopPerformers(res))
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// IO HELPERS
// ─────────────────────────────────────────────────────────────────────────────

// prompt prints label and reads one line without its terminator.
func (c *Console) prompt(label string) (string, error) {
	c.print(label)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", errEndOfInput
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) print(s string) {
	_, _ = io.WriteString(c.out, s)
}

func (c *Console) println(s string) {
	_, _ = io.WriteString(c.out, s+"\n")
}
