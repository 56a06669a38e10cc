package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func grade(studentID, subjectID int64, value, maxValue string) *models.Grade {
	return &models.Grade{
		StudentID: studentID,
		SubjectID: subjectID,
		Value:     dec(value),
		MaxValue:  dec(maxValue),
	}
}

func newStatsService(grades *fakeGrades, subjects *fakeSubjects, enrollments *fakeEnrollments) *StatisticsService {
	return NewStatisticsService(grades, subjects, enrollments, zerolog.Nop())
}

func TestSubjectAverage(t *testing.T) {
	grades := newFakeGrades()
	subjects := newFakeSubjects()
	subjects.add(&models.Subject{ID: 1, Name: "Algebra", DepartmentID: 1})

	// 16.5/20 and 14/20 average out to 15.25 on the 0-20 scale.
	grades.add(grade(1, 1, "16.5", "20"))
	grades.add(grade(1, 1, "14", "20"))

	svc := newStatsService(grades, subjects, newFakeEnrollments())

	average, err := svc.SubjectAverage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "15.25", average.String())
}

func TestSubjectAverageRescalesMaxValue(t *testing.T) {
	grades := newFakeGrades()
	subjects := newFakeSubjects()
	subjects.add(&models.Subject{ID: 1, Name: "Algebra", DepartmentID: 1})

	// 45/50 is 18/20 once normalized.
	grades.add(grade(1, 1, "45", "50"))

	svc := newStatsService(grades, subjects, newFakeEnrollments())

	average, err := svc.SubjectAverage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "18", average.String())
}

func TestSubjectAverageZeroMaxValue(t *testing.T) {
	grades := newFakeGrades()
	subjects := newFakeSubjects()
	subjects.add(&models.Subject{ID: 1, Name: "Algebra", DepartmentID: 1})

	// A grade recorded against a zero maximum cannot be scaled and counts
	// as zero instead of blowing up the division.
	grades.add(grade(1, 1, "10", "0"))
	grades.add(grade(1, 1, "20", "20"))

	svc := newStatsService(grades, subjects, newFakeEnrollments())

	average, err := svc.SubjectAverage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "10", average.String())
}

func TestSubjectAverageNoGrades(t *testing.T) {
	subjects := newFakeSubjects()
	subjects.add(&models.Subject{ID: 1, Name: "Algebra", DepartmentID: 1})

	svc := newStatsService(newFakeGrades(), subjects, newFakeEnrollments())

	average, err := svc.SubjectAverage(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, average.IsZero())
}

func TestSubjectAverageUnknownSubject(t *testing.T) {
	svc := newStatsService(newFakeGrades(), newFakeSubjects(), newFakeEnrollments())

	_, err := svc.SubjectAverage(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrSubjectNotFound)
}

func TestStudentGeneralAverageRounding(t *testing.T) {
	grades := newFakeGrades()
	// 1/3 normalizes to 6.666..., rounded to 6.67.
	grades.add(grade(1, 1, "1", "3"))

	svc := newStatsService(grades, newFakeSubjects(), newFakeEnrollments())

	average, err := svc.StudentGeneralAverage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "6.67", average.String())
}

func TestStudentSubjectAverageIgnoresOtherSubjects(t *testing.T) {
	grades := newFakeGrades()
	grades.add(grade(1, 1, "10", "20"))
	grades.add(grade(1, 2, "20", "20"))

	svc := newStatsService(grades, newFakeSubjects(), newFakeEnrollments())

	average, err := svc.StudentSubjectAverage(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "10", average.String())
}

func TestDepartmentAverageExcludesUngradedSubjects(t *testing.T) {
	grades := newFakeGrades()
	subjects := newFakeSubjects()
	subjects.add(&models.Subject{ID: 1, Name: "Algebra", DepartmentID: 5})
	subjects.add(&models.Subject{ID: 2, Name: "Geometry", DepartmentID: 5})
	subjects.add(&models.Subject{ID: 3, Name: "Chemistry", DepartmentID: 6})

	// Algebra averages 15, Geometry has no grades and must not drag the
	// department down to 7.5. Chemistry belongs to another department.
	grades.add(grade(1, 1, "15", "20"))
	grades.add(grade(2, 3, "5", "20"))

	svc := newStatsService(grades, subjects, newFakeEnrollments())

	average, err := svc.DepartmentAverage(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "15", average.String())
}

func TestDepartmentAverageNoSubjects(t *testing.T) {
	svc := newStatsService(newFakeGrades(), newFakeSubjects(), newFakeEnrollments())

	average, err := svc.DepartmentAverage(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, average.IsZero())
}

func TestSubjectStatistics(t *testing.T) {
	grades := newFakeGrades()
	subjects := newFakeSubjects()
	subjects.add(&models.Subject{ID: 1, Name: "Algebra", DepartmentID: 1})

	grades.add(grade(1, 1, "16.5", "20"))
	grades.add(grade(2, 1, "14", "20"))
	grades.add(grade(3, 1, "9", "10"))

	svc := newStatsService(grades, subjects, newFakeEnrollments())

	stats, err := svc.SubjectStatistics(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "16.17", stats.Average.String())
	assert.Equal(t, "14", stats.Min.String())
	assert.Equal(t, "18", stats.Max.String())
	assert.Equal(t, 3, stats.Count)
}

func TestSubjectStatisticsNoGrades(t *testing.T) {
	subjects := newFakeSubjects()
	subjects.add(&models.Subject{ID: 1, Name: "Algebra", DepartmentID: 1})

	svc := newStatsService(newFakeGrades(), subjects, newFakeEnrollments())

	stats, err := svc.SubjectStatistics(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, stats.Average.IsZero())
	assert.True(t, stats.Min.IsZero())
	assert.True(t, stats.Max.IsZero())
	assert.Zero(t, stats.Count)
}

func TestStudentRank(t *testing.T) {
	grades := newFakeGrades()
	enrollments := newFakeEnrollments()
	enrollments.add(1, 10)
	enrollments.add(2, 10)
	enrollments.add(3, 10)

	// Student 1 averages 18, student 3 averages 12, student 2 has a zero
	// average and drops out of the ranking entirely.
	grades.add(grade(1, 10, "18", "20"))
	grades.add(grade(2, 10, "0", "20"))
	grades.add(grade(3, 10, "12", "20"))

	svc := newStatsService(grades, newFakeSubjects(), enrollments)

	rank, err := svc.StudentRank(context.Background(), 1, 10)
	require.NoError(t, err)
	require.NotNil(t, rank)
	assert.Equal(t, 1, rank.Rank)
	assert.Equal(t, 2, rank.Total)

	rank, err = svc.StudentRank(context.Background(), 3, 10)
	require.NoError(t, err)
	require.NotNil(t, rank)
	assert.Equal(t, 2, rank.Rank)
	assert.Equal(t, 2, rank.Total)
}

func TestStudentRankExcludedStudentHasNoRank(t *testing.T) {
	grades := newFakeGrades()
	enrollments := newFakeEnrollments()
	enrollments.add(1, 10)
	enrollments.add(2, 10)

	grades.add(grade(1, 10, "18", "20"))
	// Student 2 is enrolled but ungraded.

	svc := newStatsService(grades, newFakeSubjects(), enrollments)

	rank, err := svc.StudentRank(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Nil(t, rank)
}

func TestStudentRankTieBreaksOnStudentID(t *testing.T) {
	grades := newFakeGrades()
	enrollments := newFakeEnrollments()
	enrollments.add(5, 10)
	enrollments.add(4, 10)

	grades.add(grade(4, 10, "15", "20"))
	grades.add(grade(5, 10, "15", "20"))

	svc := newStatsService(grades, newFakeSubjects(), enrollments)

	rank, err := svc.StudentRank(context.Background(), 4, 10)
	require.NoError(t, err)
	require.NotNil(t, rank)
	assert.Equal(t, 1, rank.Rank)

	rank, err = svc.StudentRank(context.Background(), 5, 10)
	require.NoError(t, err)
	require.NotNil(t, rank)
	assert.Equal(t, 2, rank.Rank)
}

func TestMissingGrades(t *testing.T) {
	grades := newFakeGrades()
	subjects := newFakeSubjects()
	subjects.add(&models.Subject{ID: 1, Name: "Algebra", DepartmentID: 1})
	subjects.add(&models.Subject{ID: 2, Name: "Geometry", DepartmentID: 1})

	enrollments := newFakeEnrollments()
	enrollments.add(1, 1)
	enrollments.add(1, 2)

	grades.add(grade(1, 1, "12", "20"))

	svc := newStatsService(grades, subjects, enrollments)

	resp, err := svc.MissingGrades(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Subjects, 1)
	assert.Equal(t, int64(2), resp.Subjects[0].ID)
}

func TestMissingGradesNoneMissing(t *testing.T) {
	grades := newFakeGrades()
	subjects := newFakeSubjects()
	subjects.add(&models.Subject{ID: 1, Name: "Algebra", DepartmentID: 1})

	enrollments := newFakeEnrollments()
	enrollments.add(1, 1)
	grades.add(grade(1, 1, "12", "20"))

	svc := newStatsService(grades, subjects, enrollments)

	resp, err := svc.MissingGrades(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, resp.Subjects)
}
