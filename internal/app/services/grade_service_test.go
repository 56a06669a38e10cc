package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davnat/scolaris/internal/app/auth"
	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
)

type gradeFixture struct {
	grades      *fakeGrades
	subjects    *fakeSubjects
	students    *fakeStudents
	enrollments *fakeEnrollments
	authz       *stubAuthz
	svc         *GradeService
}

func newGradeFixture(allow bool) *gradeFixture {
	f := &gradeFixture{
		grades:      newFakeGrades(),
		subjects:    newFakeSubjects(),
		students:    newFakeStudents(),
		enrollments: newFakeEnrollments(),
		authz:       &stubAuthz{allow: allow},
	}
	f.subjects.add(&models.Subject{ID: 1, Name: "Algebra", Code: "ALG-1", DepartmentID: 7})
	f.students.add(&models.Student{ID: 1, LastName: "Moreau", FirstName: "Claire"})
	f.svc = NewGradeService(f.grades, f.subjects, f.students, f.enrollments, f.authz, zerolog.Nop())
	return f
}

func TestCreateGrade(t *testing.T) {
	f := newGradeFixture(true)
	f.enrollments.add(1, 1)

	grade, err := f.svc.CreateGrade(context.Background(), adminPrincipal(), &dto.CreateGradeRequest{
		StudentID: 1,
		SubjectID: 1,
		Value:     dec("16.5"),
		MaxValue:  dec("20"),
	})
	require.NoError(t, err)
	assert.NotZero(t, grade.ID)
	assert.False(t, grade.Date.IsZero(), "date defaults to now when omitted")

	// The scope of the check is the subject's department, not anything the
	// caller supplied.
	assert.Equal(t, auth.ResourceGrade, f.authz.lastKind)
	assert.Equal(t, int64(7), f.authz.lastScope)
}

func TestCreateGradeKeepsSuppliedDate(t *testing.T) {
	f := newGradeFixture(true)
	f.enrollments.add(1, 1)

	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	grade, err := f.svc.CreateGrade(context.Background(), adminPrincipal(), &dto.CreateGradeRequest{
		StudentID: 1,
		SubjectID: 1,
		Value:     dec("10"),
		MaxValue:  dec("20"),
		Date:      &date,
	})
	require.NoError(t, err)
	assert.True(t, grade.Date.Equal(date))
}

func TestCreateGradeDenied(t *testing.T) {
	f := newGradeFixture(false)
	f.enrollments.add(1, 1)

	_, err := f.svc.CreateGrade(context.Background(), adminPrincipal(), &dto.CreateGradeRequest{
		StudentID: 1,
		SubjectID: 1,
		Value:     dec("10"),
		MaxValue:  dec("20"),
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestCreateGradeRequiresEnrollment(t *testing.T) {
	f := newGradeFixture(true)

	_, err := f.svc.CreateGrade(context.Background(), adminPrincipal(), &dto.CreateGradeRequest{
		StudentID: 1,
		SubjectID: 1,
		Value:     dec("10"),
		MaxValue:  dec("20"),
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.EqualError(t, err, "student is not enrolled in this subject")
}

func TestCreateGradeUnknownSubject(t *testing.T) {
	f := newGradeFixture(true)

	_, err := f.svc.CreateGrade(context.Background(), adminPrincipal(), &dto.CreateGradeRequest{
		StudentID: 1,
		SubjectID: 99,
		Value:     dec("10"),
		MaxValue:  dec("20"),
	})
	assert.ErrorIs(t, err, apperrors.ErrSubjectNotFound)
}

func TestCreateGradeBounds(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		maxValue string
	}{
		{name: "negative value", value: "-1", maxValue: "20"},
		{name: "zero max value", value: "0", maxValue: "0"},
		{name: "value above max", value: "21", maxValue: "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGradeFixture(true)
			f.enrollments.add(1, 1)

			_, err := f.svc.CreateGrade(context.Background(), adminPrincipal(), &dto.CreateGradeRequest{
				StudentID: 1,
				SubjectID: 1,
				Value:     dec(tt.value),
				MaxValue:  dec(tt.maxValue),
			})
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestUpdateGradeRechecksMergedBounds(t *testing.T) {
	f := newGradeFixture(true)
	existing := f.grades.add(grade(1, 1, "15", "20"))

	// Lowering only the maximum would leave value 15 > max 10.
	newMax := dec("10")
	_, err := f.svc.UpdateGrade(context.Background(), adminPrincipal(), existing.ID, &dto.UpdateGradeRequest{
		MaxValue: &newMax,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateGrade(t *testing.T) {
	f := newGradeFixture(true)
	existing := f.grades.add(grade(1, 1, "15", "20"))

	newValue := dec("18")
	updated, err := f.svc.UpdateGrade(context.Background(), adminPrincipal(), existing.ID, &dto.UpdateGradeRequest{
		Value: &newValue,
	})
	require.NoError(t, err)
	assert.Equal(t, "18", updated.Value.String())
	assert.Equal(t, "20", updated.MaxValue.String())
}

func TestDeleteGrade(t *testing.T) {
	f := newGradeFixture(true)
	existing := f.grades.add(grade(1, 1, "15", "20"))

	require.NoError(t, f.svc.DeleteGrade(context.Background(), adminPrincipal(), existing.ID))
	assert.Equal(t, int64(7), f.authz.lastScope)

	_, err := f.svc.GetGrade(context.Background(), existing.ID)
	assert.ErrorIs(t, err, apperrors.ErrGradeNotFound)
}

func TestDeleteGradeDenied(t *testing.T) {
	f := newGradeFixture(false)
	existing := f.grades.add(grade(1, 1, "15", "20"))

	err := f.svc.DeleteGrade(context.Background(), adminPrincipal(), existing.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
