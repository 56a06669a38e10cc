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

// TeacherRepository handles database operations for teachers.
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new teacher repository.
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{db: db}
}

func insertTeacher(ctx context.Context, q querier, teacher *models.Teacher) error {
	query := `
		INSERT INTO teachers (user_id, last_name, first_name, phone, email, function_start, pay_index, department_id, subject_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		teacher.UserID, teacher.LastName, teacher.FirstName, teacher.Phone, teacher.Email,
		teacher.FunctionStart, teacher.PayIndex, teacher.DepartmentID, teacher.SubjectID).Scan(&teacher.ID)
	if err != nil {
		return fmt.Errorf("error creating teacher: %w", err)
	}
	return nil
}

// Create inserts a new teacher for an existing user.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	return insertTeacher(ctx, r.db, teacher)
}

// CreateWithUser provisions the identity and inserts the teacher record in
// one transaction, so a failed teacher insert never leaves an orphaned user.
func (r *TeacherRepository) CreateWithUser(ctx context.Context, user *models.User, teacher *models.Teacher) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertUser(ctx, tx, user); err != nil {
		return err
	}

	teacher.UserID = user.ID
	if err := insertTeacher(ctx, tx, teacher); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a teacher by ID.
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query := selectTeacher + ` WHERE id = $1`

	var teacher models.Teacher
	err := r.db.QueryRow(ctx, query, id).Scan(teacherFields(&teacher)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return &teacher, nil
}

// GetByUserID retrieves the teacher record linked to a user account.
func (r *TeacherRepository) GetByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	query := selectTeacher + ` WHERE user_id = $1`

	var teacher models.Teacher
	err := r.db.QueryRow(ctx, query, userID).Scan(teacherFields(&teacher)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher by user: %w", err)
	}

	return &teacher, nil
}

// Update updates an existing teacher.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	query := `
		UPDATE teachers
		SET last_name = $1, first_name = $2, phone = $3, email = $4,
		    function_start = $5, pay_index = $6, department_id = $7, subject_id = $8
		WHERE id = $9
	`

	cmdTag, err := r.db.Exec(ctx, query,
		teacher.LastName, teacher.FirstName, teacher.Phone, teacher.Email,
		teacher.FunctionStart, teacher.PayIndex, teacher.DepartmentID, teacher.SubjectID, teacher.ID)
	if err != nil {
		return fmt.Errorf("error updating teacher: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

// Delete deletes a teacher by ID.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting teacher: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

// CountByDepartment returns the number of teachers in a department.
func (r *TeacherRepository) CountByDepartment(ctx context.Context, departmentID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM teachers WHERE department_id = $1`, departmentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting teachers: %w", err)
	}
	return count, nil
}

// CountBySubject returns the number of teachers assigned to a subject.
func (r *TeacherRepository) CountBySubject(ctx context.Context, subjectID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM teachers WHERE subject_id = $1`, subjectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting teachers: %w", err)
	}
	return count, nil
}

// List retrieves teachers ordered by last name, optionally filtered by
// department, plus the filtered total.
func (r *TeacherRepository) List(ctx context.Context, departmentID *int64, offset, limit int) ([]*models.Teacher, int64, error) {
	query := selectTeacher + `
		WHERE ($1::bigint IS NULL OR department_id = $1)
		ORDER BY last_name, first_name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, departmentID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		var teacher models.Teacher
		if err := rows.Scan(teacherFields(&teacher)...); err != nil {
			return nil, 0, err
		}
		teachers = append(teachers, &teacher)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM teachers WHERE ($1::bigint IS NULL OR department_id = $1)`,
		departmentID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting teachers: %w", err)
	}

	return teachers, total, nil
}

const selectTeacher = `
	SELECT id, user_id, last_name, first_name, phone, email, function_start, pay_index, department_id, subject_id
	FROM teachers`

func teacherFields(t *models.Teacher) []any {
	return []any{
		&t.ID, &t.UserID, &t.LastName, &t.FirstName, &t.Phone, &t.Email,
		&t.FunctionStart, &t.PayIndex, &t.DepartmentID, &t.SubjectID,
	}
}
