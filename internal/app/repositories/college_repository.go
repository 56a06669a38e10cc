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

// CollegeRepository handles database operations for colleges.
type CollegeRepository struct {
	db *pgxpool.Pool
}

// NewCollegeRepository creates a new college repository.
func NewCollegeRepository(db *pgxpool.Pool) *CollegeRepository {
	return &CollegeRepository{db: db}
}

// Create inserts a new college.
func (r *CollegeRepository) Create(ctx context.Context, college *models.College) error {
	query := `
		INSERT INTO colleges (name, website_url)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, college.Name, college.WebsiteURL).Scan(&college.ID)
	if err != nil {
		return fmt.Errorf("error creating college: %w", err)
	}
	return nil
}

// GetByID retrieves a college by ID.
func (r *CollegeRepository) GetByID(ctx context.Context, id int64) (*models.College, error) {
	query := `
		SELECT id, name, website_url
		FROM colleges
		WHERE id = $1
	`

	var college models.College
	err := r.db.QueryRow(ctx, query, id).Scan(&college.ID, &college.Name, &college.WebsiteURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCollegeNotFound
		}
		return nil, fmt.Errorf("error retrieving college: %w", err)
	}

	return &college, nil
}

// Update updates an existing college.
func (r *CollegeRepository) Update(ctx context.Context, college *models.College) error {
	query := `
		UPDATE colleges
		SET name = $1, website_url = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, college.Name, college.WebsiteURL, college.ID)
	if err != nil {
		return fmt.Errorf("error updating college: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCollegeNotFound
	}
	return nil
}

// Delete deletes a college by ID.
func (r *CollegeRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM colleges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting college: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCollegeNotFound
	}
	return nil
}

// List retrieves colleges ordered by name, with each college's department
// count, plus the total number of colleges.
func (r *CollegeRepository) List(ctx context.Context, offset, limit int) ([]*models.College, int64, error) {
	query := `
		SELECT c.id, c.name, c.website_url,
		       (SELECT COUNT(*) FROM departments d WHERE d.college_id = c.id) AS department_count
		FROM colleges c
		ORDER BY c.name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing colleges: %w", err)
	}
	defer rows.Close()

	var colleges []*models.College
	for rows.Next() {
		var college models.College
		if err := rows.Scan(&college.ID, &college.Name, &college.WebsiteURL, &college.DepartmentCount); err != nil {
			return nil, 0, err
		}
		colleges = append(colleges, &college)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM colleges`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting colleges: %w", err)
	}

	return colleges, total, nil
}
