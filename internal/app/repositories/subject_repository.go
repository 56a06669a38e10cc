package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
	"github.com/davnat/scolaris/internal/pkg/dberrors"
)

// SubjectRepository handles database operations for subjects.
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new subject repository.
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// Create inserts a new subject. A duplicate code surfaces as ErrConflict.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (name, code, classroom_id, department_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		subject.Name, subject.Code, subject.ClassroomID, subject.DepartmentID).Scan(&subject.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("subject code already in use")
		}
		return fmt.Errorf("error creating subject: %w", err)
	}
	return nil
}

// GetByID retrieves a subject by ID.
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := `
		SELECT id, name, code, classroom_id, department_id
		FROM subjects
		WHERE id = $1
	`

	var subject models.Subject
	err := r.db.QueryRow(ctx, query, id).Scan(
		&subject.ID,
		&subject.Name,
		&subject.Code,
		&subject.ClassroomID,
		&subject.DepartmentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	return &subject, nil
}

// Update updates an existing subject. A duplicate code surfaces as ErrConflict.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	query := `
		UPDATE subjects
		SET name = $1, code = $2, classroom_id = $3, department_id = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		subject.Name, subject.Code, subject.ClassroomID, subject.DepartmentID, subject.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("subject code already in use")
		}
		return fmt.Errorf("error updating subject: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// Delete deletes a subject by ID.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// CountByDepartment returns the number of subjects in a department.
func (r *SubjectRepository) CountByDepartment(ctx context.Context, departmentID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subjects WHERE department_id = $1`, departmentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting subjects: %w", err)
	}
	return count, nil
}

// CountByClassroom returns the number of subjects hosted in a classroom.
func (r *SubjectRepository) CountByClassroom(ctx context.Context, classroomID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subjects WHERE classroom_id = $1`, classroomID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting subjects: %w", err)
	}
	return count, nil
}

// GetByDepartment retrieves every subject of a department, unpaged, for
// the aggregation engine.
func (r *SubjectRepository) GetByDepartment(ctx context.Context, departmentID int64) ([]*models.Subject, error) {
	query := `
		SELECT id, name, code, classroom_id, department_id
		FROM subjects
		WHERE department_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving subjects by department: %w", err)
	}
	defer rows.Close()

	return scanSubjects(rows)
}

// List retrieves subjects ordered by name, optionally filtered by
// department, plus the filtered total.
func (r *SubjectRepository) List(ctx context.Context, departmentID *int64, offset, limit int) ([]*models.Subject, int64, error) {
	query := `
		SELECT id, name, code, classroom_id, department_id
		FROM subjects
		WHERE ($1::bigint IS NULL OR department_id = $1)
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, departmentID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing subjects: %w", err)
	}
	defer rows.Close()

	subjects, err := scanSubjects(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM subjects WHERE ($1::bigint IS NULL OR department_id = $1)`,
		departmentID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting subjects: %w", err)
	}

	return subjects, total, nil
}

func scanSubjects(rows pgx.Rows) ([]*models.Subject, error) {
	var subjects []*models.Subject
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(
			&subject.ID,
			&subject.Name,
			&subject.Code,
			&subject.ClassroomID,
			&subject.DepartmentID,
		); err != nil {
			return nil, err
		}
		subjects = append(subjects, &subject)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subjects, nil
}
