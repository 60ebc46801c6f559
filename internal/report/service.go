package report

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/zeitwerk/zeitwerk/internal"
	"github.com/zeitwerk/zeitwerk/internal/auth"
	"github.com/zeitwerk/zeitwerk/internal/observability/metrics"
	"github.com/zeitwerk/zeitwerk/internal/timeentry"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Domain errors
var (
	ErrInvalidGroupBy = internal.NewValidationError("Invalid groupBy dimension", internal.ErrCodeInvalidGroupBy)
	ErrInvalidFormat  = internal.NewValidationError("Invalid export format", internal.ErrCodeValidationFailed)
)

// Repository is the entry read surface the report service needs.
type Repository interface {
	Search(query timeentry.ListQuery) ([]*timeentry.TimeEntry, error)
}

// Query holds the decoded parameters of a report request. The date
// range is mandatory for reports, unlike the entry list.
type Query struct {
	StartDate    *time.Time
	EndDate      *time.Time
	GroupBy      string
	Format       string
	UserID       *int64
	IncludeCosts bool
	Detailed     bool
}

// Data is the JSON payload of GET /reports/data.
type Data struct {
	Data         []*Group    `json:"data"`
	Details      []DetailRow `json:"details,omitempty"`
	IsAdmin      bool        `json:"is_admin"`
	TotalEntries int         `json:"total_entries"`
}

// ExportFile is a rendered report ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Service produces aggregated report data and file exports.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new report service
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ReportData aggregates entries in the requested window. Cost figures
// and the line-level detail view are admin-only; non-admin queries are
// silently narrowed to the caller's own entries.
func (s *Service) ReportData(actor *auth.User, query Query) (*Data, error) {
	query, err := s.gate(actor, query)
	if err != nil {
		return nil, err
	}

	entries, err := s.loadEntries(query)
	if err != nil {
		return nil, err
	}

	data := &Data{
		Data:         Aggregate(entries, query.GroupBy, query.IncludeCosts),
		IsAdmin:      actor.IsAdmin(),
		TotalEntries: len(entries),
	}
	if query.Detailed {
		data.Details = Flatten(entries, query.IncludeCosts)
	}
	return data, nil
}

// Export renders the report in the requested file format.
func (s *Service) Export(actor *auth.User, query Query) (*ExportFile, error) {
	query, err := s.gate(actor, query)
	if err != nil {
		return nil, err
	}
	if query.Format != FormatCSV && query.Format != FormatXLSX && query.Format != FormatPDF {
		return nil, ErrInvalidFormat
	}

	entries, err := s.loadEntries(query)
	if err != nil {
		metrics.ObserveReportExport(query.Format, "error")
		return nil, err
	}

	groups := Aggregate(entries, query.GroupBy, query.IncludeCosts)
	var details []DetailRow
	if query.Detailed {
		details = Flatten(entries, query.IncludeCosts)
	}

	var content []byte
	var contentType string
	switch query.Format {
	case FormatCSV:
		content, err = renderCSV(groups, details, query.IncludeCosts)
		contentType = "text/csv; charset=utf-8"
	case FormatXLSX:
		content, err = renderXLSX(groups, details, query.IncludeCosts)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		content, err = renderPDF(groups, details, query)
		contentType = "application/pdf"
	}
	if err != nil {
		metrics.ObserveReportExport(query.Format, "error")
		s.logger.Error("report rendering failed", "error", err, "format", query.Format)
		return nil, err
	}

	metrics.ObserveReportExport(query.Format, "ok")
	s.logger.Info("report exported",
		"format", query.Format,
		"group_by", query.GroupBy,
		"entries", len(entries),
		"actor_id", actor.ID)

	return &ExportFile{
		Filename:    exportFilename(query),
		ContentType: contentType,
		Content:     content,
	}, nil
}

// gate validates the query and applies the role restrictions.
func (s *Service) gate(actor *auth.User, query Query) (Query, error) {
	if query.StartDate == nil || query.EndDate == nil {
		return query, internal.ErrMissingDateRange
	}
	if query.GroupBy == "" {
		query.GroupBy = GroupByDay
	}
	if !ValidGroupBy(query.GroupBy) {
		return query, ErrInvalidGroupBy
	}

	if !actor.IsAdmin() {
		uid := actor.ID
		query.UserID = &uid
		query.IncludeCosts = false
		query.Detailed = false
	}
	return query, nil
}

func (s *Service) loadEntries(query Query) ([]*timeentry.TimeEntry, error) {
	entries, err := s.repo.Search(timeentry.ListQuery{
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		UserID:    query.UserID,
	})
	if err != nil {
		s.logger.Error("failed to load report entries", "error", err)
		return nil, err
	}
	return entries, nil
}

func exportFilename(query Query) string {
	return fmt.Sprintf("report_%s_%s.%s",
		query.StartDate.Format("2006-01-02"),
		query.EndDate.Format("2006-01-02"),
		query.Format)
}
