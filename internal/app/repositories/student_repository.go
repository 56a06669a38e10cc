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

// StudentRepository handles database operations for students.
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

func insertStudent(ctx context.Context, q querier, student *models.Student) error {
	query := `
		INSERT INTO students (user_id, last_name, first_name, phone, email, entry_year)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		student.UserID, student.LastName, student.FirstName,
		student.Phone, student.Email, student.EntryYear).Scan(&student.ID)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// Create inserts a new student for an existing user.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	return insertStudent(ctx, r.db, student)
}

// CreateWithUser provisions the identity and inserts the student record in
// one transaction, so a failed student insert never leaves an orphaned user.
func (r *StudentRepository) CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertUser(ctx, tx, user); err != nil {
		return err
	}

	student.UserID = user.ID
	if err := insertStudent(ctx, tx, student); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, user_id, last_name, first_name, phone, email, entry_year
		FROM students
		WHERE id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.UserID,
		&student.LastName,
		&student.FirstName,
		&student.Phone,
		&student.Email,
		&student.EntryYear,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// Update updates an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET last_name = $1, first_name = $2, phone = $3, email = $4, entry_year = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.LastName, student.FirstName, student.Phone,
		student.Email, student.EntryYear, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete deletes a student by ID.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// List retrieves students ordered by last name, optionally filtered by
// entry year, plus the filtered total.
func (r *StudentRepository) List(ctx context.Context, entryYear *int, offset, limit int) ([]*models.Student, int64, error) {
	query := `
		SELECT id, user_id, last_name, first_name, phone, email, entry_year
		FROM students
		WHERE ($1::int IS NULL OR entry_year = $1)
		ORDER BY last_name, first_name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, entryYear, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.UserID,
			&student.LastName,
			&student.FirstName,
			&student.Phone,
			&student.Email,
			&student.EntryYear,
		); err != nil {
			return nil, 0, err
		}
		students = append(students, &student)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM students WHERE ($1::int IS NULL OR entry_year = $1)`,
		entryYear).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	return students, total, nil
}
