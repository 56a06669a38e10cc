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

// EnrollmentRepository handles database operations for enrollments.
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository.
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts a new enrollment. A duplicate (student, subject) pair
// surfaces as ErrConflict.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, subject_id)
		VALUES ($1, $2)
		RETURNING id, enrolled_at
	`

	err := r.db.QueryRow(ctx, query, enrollment.StudentID, enrollment.SubjectID).
		Scan(&enrollment.ID, &enrollment.EnrolledAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("student is already enrolled in this subject")
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// GetByPair retrieves the enrollment for a (student, subject) pair.
func (r *EnrollmentRepository) GetByPair(ctx context.Context, studentID, subjectID int64) (*models.Enrollment, error) {
	query := `
		SELECT id, student_id, subject_id, enrolled_at
		FROM enrollments
		WHERE student_id = $1 AND subject_id = $2
	`

	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, query, studentID, subjectID).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.SubjectID,
		&enrollment.EnrolledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &enrollment, nil
}

// DeleteByPair removes the enrollment for a (student, subject) pair.
func (r *EnrollmentRepository) DeleteByPair(ctx context.Context, studentID, subjectID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM enrollments WHERE student_id = $1 AND subject_id = $2`, studentID, subjectID)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// GetByStudent retrieves every enrollment of a student.
func (r *EnrollmentRepository) GetByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT id, student_id, subject_id, enrolled_at
		FROM enrollments
		WHERE student_id = $1
		ORDER BY enrolled_at
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments by student: %w", err)
	}
	defer rows.Close()

	return scanEnrollments(rows)
}

// GetBySubject retrieves every enrollment in a subject.
func (r *EnrollmentRepository) GetBySubject(ctx context.Context, subjectID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT id, student_id, subject_id, enrolled_at
		FROM enrollments
		WHERE subject_id = $1
		ORDER BY enrolled_at
	`

	rows, err := r.db.Query(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments by subject: %w", err)
	}
	defer rows.Close()

	return scanEnrollments(rows)
}

// CountBySubject returns the number of enrollments in a subject.
func (r *EnrollmentRepository) CountBySubject(ctx context.Context, subjectID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM enrollments WHERE subject_id = $1`, subjectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return count, nil
}

func scanEnrollments(rows pgx.Rows) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.SubjectID,
			&enrollment.EnrolledAt,
		); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, &enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return enrollments, nil
}
