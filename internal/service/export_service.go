package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/acadhub/faculty-timetable-api/internal/schedule"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
	"github.com/acadhub/faculty-timetable-api/pkg/export"
)

var rosterExportHeaders = []string{"Date", "Day", "Time", "Subject", "Faculty", "Room"}

// ExportService renders roster and conflict views as downloadable files.
type ExportService struct {
	roster *RosterService
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(roster *RosterService, csv *export.CSVExporter, pdf *export.PDFExporter, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{roster: roster, csv: csv, pdf: pdf, logger: logger}
}

// RosterCSV renders the admin roster window as CSV.
func (s *ExportService) RosterCSV(ctx context.Context, windowDays int) ([]byte, string, error) {
	roster, err := s.roster.AdminRoster(ctx, windowDays)
	if err != nil {
		return nil, "", err
	}
	data, err := s.csv.Render(rosterDataset(roster.Occurrences))
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster csv")
	}
	return data, fmt.Sprintf("roster_%s.csv", roster.WindowStart), nil
}

// RosterPDF renders the admin roster window as a tabular PDF.
func (s *ExportService) RosterPDF(ctx context.Context, windowDays int) ([]byte, string, error) {
	roster, err := s.roster.AdminRoster(ctx, windowDays)
	if err != nil {
		return nil, "", err
	}
	title := fmt.Sprintf("Lecture Roster from %s (%d days)", roster.WindowStart, roster.WindowDays)
	data, err := s.pdf.Render(rosterDataset(roster.Occurrences), title)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster pdf")
	}
	return data, fmt.Sprintf("roster_%s.pdf", roster.WindowStart), nil
}

// FacultyRosterCSV renders one faculty member's roster as CSV.
func (s *ExportService) FacultyRosterCSV(ctx context.Context, facultyEmail string, windowDays int) ([]byte, string, error) {
	roster, err := s.roster.FacultyRoster(ctx, facultyEmail, windowDays)
	if err != nil {
		return nil, "", err
	}
	data, err := s.csv.Render(rosterDataset(roster.Occurrences))
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render faculty roster csv")
	}
	return data, fmt.Sprintf("roster_%s_%s.csv", roster.FacultyEmail, roster.WindowStart), nil
}

// ConflictReportCSV renders detected conflicts over the admin window as CSV.
func (s *ExportService) ConflictReportCSV(ctx context.Context, windowDays int) ([]byte, string, error) {
	roster, err := s.roster.AdminRoster(ctx, windowDays)
	if err != nil {
		return nil, "", err
	}
	headers := []string{"Kind", "Date", "Time", "Subject A", "Faculty A", "Room A", "Subject B", "Faculty B", "Room B"}
	rows := make([]map[string]string, 0, len(roster.Conflicts))
	for _, c := range roster.Conflicts {
		rows = append(rows, map[string]string{
			"Kind":      string(c.Kind),
			"Date":      c.A.Date,
			"Time":      c.A.Time,
			"Subject A": c.A.Subject,
			"Faculty A": c.A.FacultyName,
			"Room A":    c.A.Room,
			"Subject B": c.B.Subject,
			"Faculty B": c.B.FacultyName,
			"Room B":    c.B.Room,
		})
	}
	data, err := s.csv.Render(export.Dataset{Headers: headers, Rows: rows})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render conflict report")
	}
	return data, fmt.Sprintf("conflicts_%s.csv", roster.WindowStart), nil
}

func rosterDataset(occurrences []schedule.Occurrence) export.Dataset {
	rows := make([]map[string]string, 0, len(occurrences))
	for _, occ := range occurrences {
		day := ""
		if parsed, err := occ.ParsedDate(); err == nil {
			day = parsed.Weekday().String()
		}
		rows = append(rows, map[string]string{
			"Date":    occ.Date,
			"Day":     day,
			"Time":    occ.Time,
			"Subject": occ.Subject,
			"Faculty": occ.FacultyName,
			"Room":    occ.Room,
		})
	}
	return export.Dataset{Headers: rosterExportHeaders, Rows: rows}
}
