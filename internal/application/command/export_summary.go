package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// EXPORT SUMMARY COMMAND
// Writes the roster and its statistics to an external summary, typically on
// exit. An empty roster still produces a summary, with no statistics.
// ══════════════════════════════════════════════════════════════════════════════

// SummaryWriter persists a roster summary. stats is nil for an empty roster.
type SummaryWriter interface {
	WriteSummary(ctx context.Context, students []*student.Student, stats *roster.Statistics) error
}

// ExportSummaryResult describes what was exported.
type ExportSummaryResult struct {
	Students int
}

// ExportSummaryHandler handles the export.
type ExportSummaryHandler struct {
	repo   roster.Repository
	writer SummaryWriter
	log    *logger.Logger
}

// NewExportSummaryHandler creates a new ExportSummaryHandler.
func NewExportSummaryHandler(repo roster.Repository, writer SummaryWriter, log *logger.Logger) *ExportSummaryHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ExportSummaryHandler{
		repo:   repo,
		writer: writer,
		log:    log.With(logger.Component("export_summary")),
	}
}

// Handle reads the roster, computes statistics and hands both to the writer.
func (h *ExportSummaryHandler) Handle(ctx context.Context) (*ExportSummaryResult, error) {
	students, err := h.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("export_summary: list: %w", err)
	}

	stats, err := roster.ComputeStatistics(students)
	if err != nil && !errors.Is(err, roster.ErrEmptyRoster) {
		return nil, fmt.Errorf("export_summary: statistics: %w", err)
	}

	if err := h.writer.WriteSummary(ctx, students, stats); err != nil {
		h.log.Error("summary export failed", logger.Err(err))
		return nil, fmt.Errorf("export_summary: write: %w", err)
	}

	h.log.Info("summary exported", logger.RosterSize(len(students)))
	return &ExportSummaryResult{Students: len(students)}, nil
}
