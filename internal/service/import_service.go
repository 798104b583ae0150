package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
)

var templateImportColumns = []string{
	"day_of_week", "time_slot", "faculty_id", "faculty_email", "faculty_name", "subject", "room",
}

// ImportService parses uploaded CSV timetables into lecture templates.
type ImportService struct {
	templates *TemplateService
	logger    *zap.Logger
}

// NewImportService constructs the service.
func NewImportService(templates *TemplateService, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{templates: templates, logger: logger}
}

// ImportTemplatesCSV reads a CSV stream with a header row and bulk-creates the
// templates it contains. With partialOnError the import skips conflicting rows
// and reports them; otherwise the first conflict aborts the whole upload.
func (s *ImportService) ImportTemplatesCSV(ctx context.Context, r io.Reader, partialOnError bool) (*BulkCreateTemplatesResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "csv is empty or has no header row")
	}
	index, err := mapImportHeader(header)
	if err != nil {
		return nil, err
	}

	var items []CreateTemplateRequest
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("csv line %d is malformed", line))
		}
		items = append(items, CreateTemplateRequest{
			DayOfWeek:    field(record, index, "day_of_week"),
			TimeSlot:     field(record, index, "time_slot"),
			FacultyID:    field(record, index, "faculty_id"),
			FacultyEmail: field(record, index, "faculty_email"),
			FacultyName:  field(record, index, "faculty_name"),
			Subject:      field(record, index, "subject"),
			Room:         field(record, index, "room"),
		})
	}
	if len(items) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "csv contains no data rows")
	}

	result, err := s.templates.BulkCreate(ctx, BulkCreateTemplatesRequest{
		Items:          items,
		PartialOnError: partialOnError,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("template csv imported",
		zap.Int("rows", len(items)),
		zap.Int("created", len(result.Created)),
		zap.Int("conflicts", len(result.Conflicts)))
	return result, nil
}

func mapImportHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range templateImportColumns {
		if col == "room" {
			continue // room is optional
		}
		if _, ok := index[col]; !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("csv is missing required column %q", col))
		}
	}
	return index, nil
}

func field(record []string, index map[string]int, column string) string {
	i, ok := index[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
