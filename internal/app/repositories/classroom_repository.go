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

// ClassroomRepository handles database operations for classrooms.
type ClassroomRepository struct {
	db *pgxpool.Pool
}

// NewClassroomRepository creates a new classroom repository.
func NewClassroomRepository(db *pgxpool.Pool) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

// Create inserts a new classroom.
func (r *ClassroomRepository) Create(ctx context.Context, classroom *models.Classroom) error {
	query := `
		INSERT INTO classrooms (name, capacity, location)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, classroom.Name, classroom.Capacity, classroom.Location).Scan(&classroom.ID)
	if err != nil {
		return fmt.Errorf("error creating classroom: %w", err)
	}
	return nil
}

// GetByID retrieves a classroom by ID.
func (r *ClassroomRepository) GetByID(ctx context.Context, id int64) (*models.Classroom, error) {
	query := `
		SELECT id, name, capacity, location
		FROM classrooms
		WHERE id = $1
	`

	var classroom models.Classroom
	err := r.db.QueryRow(ctx, query, id).Scan(
		&classroom.ID,
		&classroom.Name,
		&classroom.Capacity,
		&classroom.Location,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassroomNotFound
		}
		return nil, fmt.Errorf("error retrieving classroom: %w", err)
	}

	return &classroom, nil
}

// Update updates an existing classroom.
func (r *ClassroomRepository) Update(ctx context.Context, classroom *models.Classroom) error {
	query := `
		UPDATE classrooms
		SET name = $1, capacity = $2, location = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, classroom.Name, classroom.Capacity, classroom.Location, classroom.ID)
	if err != nil {
		return fmt.Errorf("error updating classroom: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassroomNotFound
	}
	return nil
}

// Delete deletes a classroom by ID.
func (r *ClassroomRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM classrooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting classroom: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassroomNotFound
	}
	return nil
}

// List retrieves classrooms ordered by name plus the total count.
func (r *ClassroomRepository) List(ctx context.Context, offset, limit int) ([]*models.Classroom, int64, error) {
	query := `
		SELECT id, name, capacity, location
		FROM classrooms
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing classrooms: %w", err)
	}
	defer rows.Close()

	var classrooms []*models.Classroom
	for rows.Next() {
		var classroom models.Classroom
		if err := rows.Scan(&classroom.ID, &classroom.Name, &classroom.Capacity, &classroom.Location); err != nil {
			return nil, 0, err
		}
		classrooms = append(classrooms, &classroom)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM classrooms`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting classrooms: %w", err)
	}

	return classrooms, total, nil
}
