package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sukyoungshin/member-directory/internal/domain"
)

// JobTitleRepository provides read-only access to job titles.
type JobTitleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.JobTitle, error)
	List(ctx context.Context) ([]domain.JobTitle, error)
}

type jobTitleRepository struct {
	pool *pgxpool.Pool
}

// NewJobTitleRepository instantiates the repository.
func NewJobTitleRepository(pool *pgxpool.Pool) JobTitleRepository {
	return &jobTitleRepository{pool: pool}
}

// GetByID returns the single matching job title, or nil when none exists.
func (r *jobTitleRepository) GetByID(ctx context.Context, id int64) (*domain.JobTitle, error) {
	const query = `SELECT id, name FROM job_titles WHERE id=$1`

	var title domain.JobTitle
	if err := r.pool.QueryRow(ctx, query, id).Scan(&title.ID, &title.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &title, nil
}

func (r *jobTitleRepository) List(ctx context.Context) ([]domain.JobTitle, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM job_titles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.JobTitle
	for rows.Next() {
		var title domain.JobTitle
		if err := rows.Scan(&title.ID, &title.Name); err != nil {
			return nil, err
		}
		result = append(result, title)
	}
	return result, rows.Err()
}
