package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadhub/faculty-timetable-api/internal/models"
)

func newDutyMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func dutyRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "exam", "exam_date", "time_slot", "venue", "faculty_email", "subject", "created_at", "updated_at"}).
		AddRow("duty-1", "Mid Semester", "2026-02-10", "10:00-12:00", "Hall A", "asha@college.edu", "Databases", now, now)
}

func TestInvigilationRepositoryListFiltersByFacultyAndDate(t *testing.T) {
	db, mock, cleanup := newDutyMock(t)
	defer cleanup()
	repo := NewInvigilationRepository(db)

	mock.ExpectQuery("SELECT id, exam, .+ FROM invigilation_duties WHERE 1=1 AND LOWER\\(faculty_email\\) = LOWER\\(\\$1\\) AND exam_date >= \\$2 ORDER BY exam_date ASC, time_slot ASC").
		WithArgs("asha@college.edu", "2026-02-02").
		WillReturnRows(dutyRows())
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM invigilation_duties WHERE 1=1 AND LOWER\\(faculty_email\\) = LOWER\\(\\$1\\) AND exam_date >= \\$2").
		WithArgs("asha@college.edu", "2026-02-02").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	duties, total, err := repo.List(context.Background(), models.DutyFilter{
		FacultyEmail: "asha@college.edu",
		FromDate:     "2026-02-02",
	})
	require.NoError(t, err)
	require.Len(t, duties, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Mid Semester", duties[0].Exam)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvigilationRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newDutyMock(t)
	defer cleanup()
	repo := NewInvigilationRepository(db)

	mock.ExpectExec("INSERT INTO invigilation_duties").
		WithArgs(sqlmock.AnyArg(), "Mid Semester", "2026-02-10", "10:00-12:00", "Hall A", "asha@college.edu", "Databases", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	duty := &models.InvigilationDuty{
		Exam:         "Mid Semester",
		ExamDate:     "2026-02-10",
		TimeSlot:     "10:00-12:00",
		Venue:        "Hall A",
		FacultyEmail: "asha@college.edu",
		Subject:      "Databases",
	}
	require.NoError(t, repo.Create(context.Background(), duty))
	assert.NotEmpty(t, duty.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvigilationRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newDutyMock(t)
	defer cleanup()
	repo := NewInvigilationRepository(db)

	mock.ExpectExec("DELETE FROM invigilation_duties WHERE id = \\$1").
		WithArgs("duty-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "duty-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
