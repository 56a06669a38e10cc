package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx shared by the pool and a transaction, so
// insert helpers can run inside either.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repositories bundles every repository for dependency wiring.
type Repositories struct {
	UserRepository       *UserRepository
	CollegeRepository    *CollegeRepository
	DepartmentRepository *DepartmentRepository
	ClassroomRepository  *ClassroomRepository
	SubjectRepository    *SubjectRepository
	TeacherRepository    *TeacherRepository
	StudentRepository    *StudentRepository
	EnrollmentRepository *EnrollmentRepository
	GradeRepository      *GradeRepository
}

// NewRepositories initializes all repositories on one pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		CollegeRepository:    NewCollegeRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		ClassroomRepository:  NewClassroomRepository(db),
		SubjectRepository:    NewSubjectRepository(db),
		TeacherRepository:    NewTeacherRepository(db),
		StudentRepository:    NewStudentRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		GradeRepository:      NewGradeRepository(db),
	}
}
