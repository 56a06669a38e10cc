package services

import (
	"context"

	"github.com/davnat/scolaris/internal/app/auth"
)

// Services in this package wrap persistence writes with authorization and
// referential-integrity guards:
//   - CollegeService, DepartmentService, ClassroomService, SubjectService,
//     TeacherService, StudentService, EnrollmentService, GradeService:
//     one integrity-guarded mutator per entity kind
//   - StatisticsService: read-only grade aggregation
//   - AuthService: login and token issuance
//
// Every mutating call takes the acting principal explicitly; no service
// reads ambient request state.

// Authorizer decides whether a principal may mutate a resource kind within
// a department scope. Implemented by auth.AuthorizationService.
type Authorizer interface {
	CanManage(ctx context.Context, principal *auth.Principal, kind auth.ResourceKind, departmentID int64) bool
}
