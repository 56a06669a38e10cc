package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
)

// DepartmentRepository handles database operations for departments.
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository.
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// Create inserts a new department.
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	query := `
		INSERT INTO departments (name, college_id, head_teacher_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, department.Name, department.CollegeID, department.HeadTeacherID).Scan(&department.ID)
	if err != nil {
		return fmt.Errorf("error creating department: %w", err)
	}
	return nil
}

// GetByID retrieves a department by ID.
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	query := `
		SELECT id, name, college_id, head_teacher_id
		FROM departments
		WHERE id = $1
	`

	var department models.Department
	err := r.db.QueryRow(ctx, query, id).Scan(
		&department.ID,
		&department.Name,
		&department.CollegeID,
		&department.HeadTeacherID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return &department, nil
}

// GetByHeadTeacherID retrieves the department headed by the given teacher,
// or ErrDepartmentNotFound when the teacher heads none.
func (r *DepartmentRepository) GetByHeadTeacherID(ctx context.Context, teacherID int64) (*models.Department, error) {
	query := `
		SELECT id, name, college_id, head_teacher_id
		FROM departments
		WHERE head_teacher_id = $1
	`

	var department models.Department
	err := r.db.QueryRow(ctx, query, teacherID).Scan(
		&department.ID,
		&department.Name,
		&department.CollegeID,
		&department.HeadTeacherID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving headed department: %w", err)
	}

	return &department, nil
}

// Update updates an existing department.
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	query := `
		UPDATE departments
		SET name = $1, college_id = $2, head_teacher_id = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query,
		department.Name, department.CollegeID, department.HeadTeacherID, department.ID)
	if err != nil {
		return fmt.Errorf("error updating department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}
	return nil
}

// Delete deletes a department by ID.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}
	return nil
}

// CountByCollege returns the number of departments in a college.
func (r *DepartmentRepository) CountByCollege(ctx context.Context, collegeID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM departments WHERE college_id = $1`, collegeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting departments: %w", err)
	}
	return count, nil
}

// List retrieves departments ordered by name, optionally filtered by
// college, with teacher and subject counts, plus the filtered total.
func (r *DepartmentRepository) List(ctx context.Context, collegeID *int64, offset, limit int) ([]*models.Department, int64, error) {
	query := `
		SELECT d.id, d.name, d.college_id, d.head_teacher_id,
		       (SELECT COUNT(*) FROM teachers t WHERE t.department_id = d.id) AS teacher_count,
		       (SELECT COUNT(*) FROM subjects s WHERE s.department_id = d.id) AS subject_count
		FROM departments d
		WHERE ($1::bigint IS NULL OR d.college_id = $1)
		ORDER BY d.name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, collegeID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing departments: %w", err)
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(
			&department.ID,
			&department.Name,
			&department.CollegeID,
			&department.HeadTeacherID,
			&department.TeacherCount,
			&department.SubjectCount,
		); err != nil {
			return nil, 0, err
		}
		departments = append(departments, &department)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM departments WHERE ($1::bigint IS NULL OR college_id = $1)`,
		collegeID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting departments: %w", err)
	}

	return departments, total, nil
}
