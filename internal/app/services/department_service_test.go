package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davnat/scolaris/internal/app/auth"
	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
)

type departmentFixture struct {
	departments *fakeDepartments
	colleges    *fakeColleges
	teachers    *fakeTeachers
	subjects    *fakeSubjects
	authz       *stubAuthz
	svc         *DepartmentService
}

func newDepartmentFixture(allow bool) *departmentFixture {
	f := &departmentFixture{
		departments: newFakeDepartments(),
		colleges:    newFakeColleges(),
		teachers:    newFakeTeachers(),
		subjects:    newFakeSubjects(),
		authz:       &stubAuthz{allow: allow},
	}
	f.colleges.Create(context.Background(), &models.College{Name: "Sciences"})
	f.svc = NewDepartmentService(f.departments, f.colleges, f.teachers, f.subjects, f.authz, zerolog.Nop())
	return f
}

func TestCreateDepartment(t *testing.T) {
	f := newDepartmentFixture(true)

	department, err := f.svc.CreateDepartment(context.Background(), adminPrincipal(), &dto.CreateDepartmentRequest{
		Name:      "Mathematics",
		CollegeID: 1,
	})
	require.NoError(t, err)
	assert.NotZero(t, department.ID)

	// Creation has no department scope yet, so the check runs against
	// scope zero and only admins pass.
	assert.Equal(t, auth.ResourceDepartment, f.authz.lastKind)
	assert.Zero(t, f.authz.lastScope)
}

func TestCreateDepartmentUnknownCollege(t *testing.T) {
	f := newDepartmentFixture(true)

	_, err := f.svc.CreateDepartment(context.Background(), adminPrincipal(), &dto.CreateDepartmentRequest{
		Name:      "Mathematics",
		CollegeID: 99,
	})
	assert.ErrorIs(t, err, apperrors.ErrCollegeNotFound)
}

func TestCreateDepartmentDenied(t *testing.T) {
	f := newDepartmentFixture(false)

	_, err := f.svc.CreateDepartment(context.Background(), adminPrincipal(), &dto.CreateDepartmentRequest{
		Name:      "Mathematics",
		CollegeID: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestUpdateDepartmentScopedToItself(t *testing.T) {
	f := newDepartmentFixture(true)
	department := f.departments.add(&models.Department{Name: "Mathematics", CollegeID: 1})

	name := "Applied Mathematics"
	updated, err := f.svc.UpdateDepartment(context.Background(), adminPrincipal(), department.ID, &dto.UpdateDepartmentRequest{
		Name: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "Applied Mathematics", updated.Name)
	assert.Equal(t, department.ID, f.authz.lastScope)
}

func TestAssignHeadTeacher(t *testing.T) {
	f := newDepartmentFixture(true)
	department := f.departments.add(&models.Department{Name: "Mathematics", CollegeID: 1})
	teacher := f.teachers.add(&models.Teacher{LastName: "Durand", DepartmentID: department.ID})

	updated, err := f.svc.AssignHeadTeacher(context.Background(), adminPrincipal(), department.ID, teacher.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.HeadTeacherID)
	assert.Equal(t, teacher.ID, *updated.HeadTeacherID)
}

func TestAssignHeadTeacherFromOtherDepartment(t *testing.T) {
	f := newDepartmentFixture(true)
	department := f.departments.add(&models.Department{Name: "Mathematics", CollegeID: 1})
	outsider := f.teachers.add(&models.Teacher{LastName: "Durand", DepartmentID: department.ID + 1})

	_, err := f.svc.AssignHeadTeacher(context.Background(), adminPrincipal(), department.ID, outsider.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.EqualError(t, err, "head teacher must belong to the department")
}

func TestAssignHeadTeacherUnknownTeacher(t *testing.T) {
	f := newDepartmentFixture(true)
	department := f.departments.add(&models.Department{Name: "Mathematics", CollegeID: 1})

	_, err := f.svc.AssignHeadTeacher(context.Background(), adminPrincipal(), department.ID, 99)
	assert.ErrorIs(t, err, apperrors.ErrTeacherNotFound)
}

func TestDeleteDepartmentWithTeachers(t *testing.T) {
	f := newDepartmentFixture(true)
	department := f.departments.add(&models.Department{Name: "Mathematics", CollegeID: 1})
	f.teachers.add(&models.Teacher{LastName: "Durand", DepartmentID: department.ID})

	err := f.svc.DeleteDepartment(context.Background(), adminPrincipal(), department.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.EqualError(t, err, "department still has teachers attached")
}

func TestDeleteDepartmentWithSubjects(t *testing.T) {
	f := newDepartmentFixture(true)
	department := f.departments.add(&models.Department{Name: "Mathematics", CollegeID: 1})
	f.subjects.add(&models.Subject{Name: "Algebra", DepartmentID: department.ID})

	err := f.svc.DeleteDepartment(context.Background(), adminPrincipal(), department.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.EqualError(t, err, "department still has subjects attached")
}

func TestDeleteDepartment(t *testing.T) {
	f := newDepartmentFixture(true)
	department := f.departments.add(&models.Department{Name: "Mathematics", CollegeID: 1})

	require.NoError(t, f.svc.DeleteDepartment(context.Background(), adminPrincipal(), department.ID))

	_, err := f.svc.GetDepartment(context.Background(), department.ID)
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
}

func TestGetDepartmentEnrichesRelations(t *testing.T) {
	f := newDepartmentFixture(true)
	teacher := f.teachers.add(&models.Teacher{LastName: "Durand", DepartmentID: 1})
	department := f.departments.add(&models.Department{Name: "Mathematics", CollegeID: 1, HeadTeacherID: &teacher.ID})

	got, err := f.svc.GetDepartment(context.Background(), department.ID)
	require.NoError(t, err)
	require.NotNil(t, got.College)
	assert.Equal(t, "Sciences", got.College.Name)
	require.NotNil(t, got.HeadTeacher)
	assert.Equal(t, "Durand", got.HeadTeacher.LastName)
}
