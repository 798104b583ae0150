package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadhub/faculty-timetable-api/internal/models"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
)

const templateCSVHeader = "day_of_week,time_slot,faculty_id,faculty_email,faculty_name,subject,room\n"

func newImportServiceForTest(repo *mockTemplateRepo) *ImportService {
	templates := NewTemplateService(repo, nil, zap.NewNop())
	return NewImportService(templates, zap.NewNop())
}

func TestImportTemplatesCSV(t *testing.T) {
	repo := &mockTemplateRepo{}
	svc := newImportServiceForTest(repo)

	csvBody := templateCSVHeader +
		"Monday,09:00-10:00,F001,asha@college.edu,Asha Nair,Databases,R101\n" +
		"wed,11:00-12:00,F002,vikram@college.edu,Vikram Rao,Networks,R102\n"

	result, err := svc.ImportTemplatesCSV(context.Background(), strings.NewReader(csvBody), false)
	require.NoError(t, err)

	require.Len(t, result.Created, 2)
	assert.Equal(t, "MONDAY", result.Created[0].DayOfWeek)
	assert.Equal(t, "WEDNESDAY", result.Created[1].DayOfWeek)
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, 1, repo.bulkCalls)
}

func TestImportTemplatesCSVPartialReportsConflicts(t *testing.T) {
	repo := &mockTemplateRepo{templates: []models.LectureTemplate{{
		ID:           "tpl-1",
		DayOfWeek:    "MONDAY",
		TimeSlot:     "09:00-10:00",
		FacultyID:    "F010",
		FacultyEmail: "meera@college.edu",
		Room:         "R101",
	}}}
	svc := newImportServiceForTest(repo)

	csvBody := templateCSVHeader +
		"Monday,09:00-10:00,F001,asha@college.edu,Asha Nair,Databases,R101\n" +
		"Tuesday,09:00-10:00,F001,asha@college.edu,Asha Nair,Databases,R101\n"

	result, err := svc.ImportTemplatesCSV(context.Background(), strings.NewReader(csvBody), true)
	require.NoError(t, err)

	assert.Len(t, result.Created, 1)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "ROOM", result.Conflicts[0].Dimension)
}

func TestImportTemplatesCSVMissingColumn(t *testing.T) {
	svc := newImportServiceForTest(&mockTemplateRepo{})

	csvBody := "day_of_week,time_slot\nMonday,09:00-10:00\n"
	_, err := svc.ImportTemplatesCSV(context.Background(), strings.NewReader(csvBody), false)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestImportTemplatesCSVEmptyBody(t *testing.T) {
	svc := newImportServiceForTest(&mockTemplateRepo{})

	_, err := svc.ImportTemplatesCSV(context.Background(), strings.NewReader(templateCSVHeader), false)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestImportTemplatesCSVShuffledColumns(t *testing.T) {
	repo := &mockTemplateRepo{}
	svc := newImportServiceForTest(repo)

	csvBody := "room,subject,faculty_name,faculty_email,faculty_id,time_slot,day_of_week\n" +
		"R101,Databases,Asha Nair,asha@college.edu,F001,09:00-10:00,Friday\n"

	result, err := svc.ImportTemplatesCSV(context.Background(), strings.NewReader(csvBody), false)
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.Equal(t, "FRIDAY", result.Created[0].DayOfWeek)
	assert.Equal(t, "R101", result.Created[0].Room)
}
