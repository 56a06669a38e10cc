package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
)

type enrollmentFixture struct {
	enrollments *fakeEnrollments
	students    *fakeStudents
	subjects    *fakeSubjects
	grades      *fakeGrades
	authz       *stubAuthz
	svc         *EnrollmentService
}

func newEnrollmentFixture(allow bool) *enrollmentFixture {
	f := &enrollmentFixture{
		enrollments: newFakeEnrollments(),
		students:    newFakeStudents(),
		subjects:    newFakeSubjects(),
		grades:      newFakeGrades(),
		authz:       &stubAuthz{allow: allow},
	}
	f.students.add(&models.Student{ID: 1, LastName: "Moreau", FirstName: "Claire"})
	f.subjects.add(&models.Subject{ID: 1, Name: "Algebra", DepartmentID: 1})
	f.svc = NewEnrollmentService(f.enrollments, f.students, f.subjects, f.grades, f.authz, zerolog.Nop())
	return f
}

func TestEnroll(t *testing.T) {
	f := newEnrollmentFixture(true)

	enrollment, err := f.svc.Enroll(context.Background(), adminPrincipal(), 1, 1)
	require.NoError(t, err)
	assert.NotZero(t, enrollment.ID)
}

func TestEnrollTwice(t *testing.T) {
	f := newEnrollmentFixture(true)

	_, err := f.svc.Enroll(context.Background(), adminPrincipal(), 1, 1)
	require.NoError(t, err)

	_, err = f.svc.Enroll(context.Background(), adminPrincipal(), 1, 1)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestEnrollUnknownStudent(t *testing.T) {
	f := newEnrollmentFixture(true)

	_, err := f.svc.Enroll(context.Background(), adminPrincipal(), 99, 1)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestEnrollUnknownSubject(t *testing.T) {
	f := newEnrollmentFixture(true)

	_, err := f.svc.Enroll(context.Background(), adminPrincipal(), 1, 99)
	assert.ErrorIs(t, err, apperrors.ErrSubjectNotFound)
}

func TestEnrollDenied(t *testing.T) {
	f := newEnrollmentFixture(false)

	_, err := f.svc.Enroll(context.Background(), adminPrincipal(), 1, 1)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestUnenroll(t *testing.T) {
	f := newEnrollmentFixture(true)
	f.enrollments.add(1, 1)

	require.NoError(t, f.svc.Unenroll(context.Background(), adminPrincipal(), 1, 1))

	enrollments, err := f.svc.ListByStudent(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, enrollments)
}

func TestUnenrollWithGrades(t *testing.T) {
	f := newEnrollmentFixture(true)
	f.enrollments.add(1, 1)
	f.grades.add(grade(1, 1, "12", "20"))

	err := f.svc.Unenroll(context.Background(), adminPrincipal(), 1, 1)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.EqualError(t, err, "student has grades in this subject and cannot be unenrolled")
}

func TestUnenrollUnknownPair(t *testing.T) {
	f := newEnrollmentFixture(true)

	err := f.svc.Unenroll(context.Background(), adminPrincipal(), 1, 1)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}
