package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lawrencemparker/Stride4Stride/models"
	"github.com/lib/pq"
)

var (
	ErrRunNotFound    = errors.New("run not found")
	ErrRunUserInvalid = errors.New("run user conflict or invalid")
)

type RunRepository interface {
	Create(ctx context.Context, run *models.Run) error
	GetByID(ctx context.Context, id int) (*models.Run, error)
	Update(ctx context.Context, run *models.Run) error
	Delete(ctx context.Context, id int) error
	ListByUserID(ctx context.Context, userID int) ([]models.Run, error)
}

type postgresRunRepository struct {
	db *sql.DB
}

func NewPostgresRunRepository(db *sql.DB) RunRepository {
	return &postgresRunRepository{db: db}
}

func (r *postgresRunRepository) Create(ctx context.Context, run *models.Run) error {
	// shoe_id is a plain integer column, not a foreign key: the reference
	// must survive the shoe being deleted later.
	query := `
		INSERT INTO runs (user_id, date, distance, shoe_id, shoe_name, club_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		run.UserID,
		run.Date,
		run.Distance,
		run.ShoeID,
		run.ShoeName,
		run.ClubName,
	).Scan(&run.ID, &run.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "runs_user_id_fkey" {
				return ErrRunUserInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresRunRepository) GetByID(ctx context.Context, id int) (*models.Run, error) {
	query := `
		SELECT id, user_id, date, distance, shoe_id, shoe_name, club_name, created_at
		FROM runs
		WHERE id = $1`

	run := &models.Run{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&run.UserID,
		&run.Date,
		&run.Distance,
		&run.ShoeID,
		&run.ShoeName,
		&run.ClubName,
		&run.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return run, nil
}

func (r *postgresRunRepository) Update(ctx context.Context, run *models.Run) error {
	// Owner and id are immutable; only the editable fields are written.
	query := `
		UPDATE runs SET
			date = $1,
			distance = $2,
			shoe_id = $3,
			shoe_name = $4,
			club_name = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		run.Date,
		run.Distance,
		run.ShoeID,
		run.ShoeName,
		run.ClubName,
		run.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRunNotFound)
}

func (r *postgresRunRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRunNotFound)
}

func (r *postgresRunRepository) ListByUserID(ctx context.Context, userID int) ([]models.Run, error) {
	query := `
		SELECT id, user_id, date, distance, shoe_id, shoe_name, club_name, created_at
		FROM runs
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]models.Run, 0)
	for rows.Next() {
		var run models.Run
		if scanErr := rows.Scan(
			&run.ID,
			&run.UserID,
			&run.Date,
			&run.Distance,
			&run.ShoeID,
			&run.ShoeName,
			&run.ClubName,
			&run.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}
