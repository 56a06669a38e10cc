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

// GradeRepository handles database operations for grades.
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new grade repository.
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{db: db}
}

// Create inserts a new grade.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	query := `
		INSERT INTO grades (student_id, subject_id, value, max_value, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		grade.StudentID, grade.SubjectID, grade.Value, grade.MaxValue, grade.Date).Scan(&grade.ID)
	if err != nil {
		return fmt.Errorf("error creating grade: %w", err)
	}
	return nil
}

// GetByID retrieves a grade by ID.
func (r *GradeRepository) GetByID(ctx context.Context, id int64) (*models.Grade, error) {
	query := selectGrade + ` WHERE id = $1`

	var grade models.Grade
	err := r.db.QueryRow(ctx, query, id).Scan(gradeFields(&grade)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGradeNotFound
		}
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}

	return &grade, nil
}

// Update updates an existing grade.
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	query := `
		UPDATE grades
		SET value = $1, max_value = $2, date = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, grade.Value, grade.MaxValue, grade.Date, grade.ID)
	if err != nil {
		return fmt.Errorf("error updating grade: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}
	return nil
}

// Delete deletes a grade by ID.
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting grade: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}
	return nil
}

// GetBySubject retrieves every grade of a subject, unpaged, for the
// aggregation engine.
func (r *GradeRepository) GetBySubject(ctx context.Context, subjectID int64) ([]*models.Grade, error) {
	query := selectGrade + ` WHERE subject_id = $1 ORDER BY date DESC`

	rows, err := r.db.Query(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving grades by subject: %w", err)
	}
	defer rows.Close()

	return scanGrades(rows)
}

// GetByStudent retrieves every grade of a student across all subjects.
func (r *GradeRepository) GetByStudent(ctx context.Context, studentID int64) ([]*models.Grade, error) {
	query := selectGrade + ` WHERE student_id = $1 ORDER BY date DESC`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving grades by student: %w", err)
	}
	defer rows.Close()

	return scanGrades(rows)
}

// GetByPair retrieves every grade of a (student, subject) pair.
func (r *GradeRepository) GetByPair(ctx context.Context, studentID, subjectID int64) ([]*models.Grade, error) {
	query := selectGrade + ` WHERE student_id = $1 AND subject_id = $2 ORDER BY date DESC`

	rows, err := r.db.Query(ctx, query, studentID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving grades by pair: %w", err)
	}
	defer rows.Close()

	return scanGrades(rows)
}

// CountBySubject returns the number of grades in a subject.
func (r *GradeRepository) CountBySubject(ctx context.Context, subjectID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM grades WHERE subject_id = $1`, subjectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting grades: %w", err)
	}
	return count, nil
}

// CountByPair returns the number of grades for a (student, subject) pair.
func (r *GradeRepository) CountByPair(ctx context.Context, studentID, subjectID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM grades WHERE student_id = $1 AND subject_id = $2`,
		studentID, subjectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting grades: %w", err)
	}
	return count, nil
}

// List retrieves grades ordered by date descending, optionally filtered
// by student and/or subject, plus the filtered total.
func (r *GradeRepository) List(ctx context.Context, studentID, subjectID *int64, offset, limit int) ([]*models.Grade, int64, error) {
	query := selectGrade + `
		WHERE ($1::bigint IS NULL OR student_id = $1)
		  AND ($2::bigint IS NULL OR subject_id = $2)
		ORDER BY date DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, studentID, subjectID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing grades: %w", err)
	}
	defer rows.Close()

	grades, err := scanGrades(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM grades
		WHERE ($1::bigint IS NULL OR student_id = $1)
		  AND ($2::bigint IS NULL OR subject_id = $2)`,
		studentID, subjectID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting grades: %w", err)
	}

	return grades, total, nil
}

const selectGrade = `
	SELECT id, student_id, subject_id, value, max_value, date
	FROM grades`

func gradeFields(g *models.Grade) []any {
	return []any{&g.ID, &g.StudentID, &g.SubjectID, &g.Value, &g.MaxValue, &g.Date}
}

func scanGrades(rows pgx.Rows) ([]*models.Grade, error) {
	var grades []*models.Grade
	for rows.Next() {
		var grade models.Grade
		if err := rows.Scan(gradeFields(&grade)...); err != nil {
			return nil, err
		}
		grades = append(grades, &grade)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return grades, nil
}
