package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
)

func newCollegeFixture(allow bool) (*fakeColleges, *fakeDepartments, *CollegeService) {
	colleges := newFakeColleges()
	departments := newFakeDepartments()
	svc := NewCollegeService(colleges, departments, &stubAuthz{allow: allow}, zerolog.Nop())
	return colleges, departments, svc
}

func TestCreateCollege(t *testing.T) {
	_, _, svc := newCollegeFixture(true)

	college, err := svc.CreateCollege(context.Background(), adminPrincipal(), &dto.CreateCollegeRequest{
		Name: "College of Sciences",
	})
	require.NoError(t, err)
	assert.NotZero(t, college.ID)
}

func TestCreateCollegeShortName(t *testing.T) {
	_, _, svc := newCollegeFixture(true)

	_, err := svc.CreateCollege(context.Background(), adminPrincipal(), &dto.CreateCollegeRequest{
		Name: "Ab",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateCollegeDenied(t *testing.T) {
	_, _, svc := newCollegeFixture(false)

	_, err := svc.CreateCollege(context.Background(), adminPrincipal(), &dto.CreateCollegeRequest{
		Name: "College of Sciences",
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestUpdateCollege(t *testing.T) {
	colleges, _, svc := newCollegeFixture(true)
	college := &models.College{Name: "College of Sciences"}
	require.NoError(t, colleges.Create(context.Background(), college))

	name := "College of Natural Sciences"
	updated, err := svc.UpdateCollege(context.Background(), adminPrincipal(), college.ID, &dto.UpdateCollegeRequest{
		Name: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
}

func TestDeleteCollegeWithDepartments(t *testing.T) {
	colleges, departments, svc := newCollegeFixture(true)
	college := &models.College{Name: "College of Sciences"}
	require.NoError(t, colleges.Create(context.Background(), college))
	departments.add(&models.Department{Name: "Mathematics", CollegeID: college.ID})

	err := svc.DeleteCollege(context.Background(), adminPrincipal(), college.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.EqualError(t, err, "college still has departments attached")
}

func TestDeleteCollege(t *testing.T) {
	colleges, _, svc := newCollegeFixture(true)
	college := &models.College{Name: "College of Sciences"}
	require.NoError(t, colleges.Create(context.Background(), college))

	require.NoError(t, svc.DeleteCollege(context.Background(), adminPrincipal(), college.ID))

	_, err := svc.GetCollege(context.Background(), college.ID)
	assert.ErrorIs(t, err, apperrors.ErrCollegeNotFound)
}

func TestDeleteCollegeUnknown(t *testing.T) {
	_, _, svc := newCollegeFixture(true)

	err := svc.DeleteCollege(context.Background(), adminPrincipal(), 99)
	assert.ErrorIs(t, err, apperrors.ErrCollegeNotFound)
}
