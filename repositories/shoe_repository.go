package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lawrencemparker/Stride4Stride/models"
	"github.com/lib/pq"
)

var (
	ErrShoeNotFound    = errors.New("shoe not found")
	ErrShoeUserInvalid = errors.New("shoe user conflict or invalid")
)

type ShoeRepository interface {
	Create(ctx context.Context, shoe *models.Shoe) error
	GetByID(ctx context.Context, id int) (*models.Shoe, error)
	Update(ctx context.Context, shoe *models.Shoe) error
	Delete(ctx context.Context, id int) error
	ListByUserID(ctx context.Context, userID int) ([]models.Shoe, error)
}

type postgresShoeRepository struct {
	db *sql.DB
}

func NewPostgresShoeRepository(db *sql.DB) ShoeRepository {
	return &postgresShoeRepository{db: db}
}

func (r *postgresShoeRepository) Create(ctx context.Context, shoe *models.Shoe) error {
	query := `
		INSERT INTO shoes (user_id, name, initial_miles, mile_limit, retired)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		shoe.UserID,
		shoe.Name,
		shoe.InitialMiles,
		shoe.MileLimit,
		shoe.Retired,
	).Scan(&shoe.ID, &shoe.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "shoes_user_id_fkey" {
				return ErrShoeUserInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresShoeRepository) GetByID(ctx context.Context, id int) (*models.Shoe, error) {
	query := `
		SELECT id, user_id, name, initial_miles, mile_limit, retired, created_at
		FROM shoes
		WHERE id = $1`

	shoe := &models.Shoe{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&shoe.ID,
		&shoe.UserID,
		&shoe.Name,
		&shoe.InitialMiles,
		&shoe.MileLimit,
		&shoe.Retired,
		&shoe.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShoeNotFound
		}
		return nil, err
	}
	return shoe, nil
}

func (r *postgresShoeRepository) Update(ctx context.Context, shoe *models.Shoe) error {
	query := `
		UPDATE shoes SET
			name = $1,
			initial_miles = $2,
			mile_limit = $3,
			retired = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		shoe.Name,
		shoe.InitialMiles,
		shoe.MileLimit,
		shoe.Retired,
		shoe.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrShoeNotFound)
}

// Delete removes the shoe row only. Runs referencing it keep their stored
// shoe_id and snapshot name; live lookups on that id report not found.
func (r *postgresShoeRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shoes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrShoeNotFound)
}

func (r *postgresShoeRepository) ListByUserID(ctx context.Context, userID int) ([]models.Shoe, error) {
	query := `
		SELECT id, user_id, name, initial_miles, mile_limit, retired, created_at
		FROM shoes
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shoes := make([]models.Shoe, 0)
	for rows.Next() {
		var shoe models.Shoe
		if scanErr := rows.Scan(
			&shoe.ID,
			&shoe.UserID,
			&shoe.Name,
			&shoe.InitialMiles,
			&shoe.MileLimit,
			&shoe.Retired,
			&shoe.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		shoes = append(shoes, shoe)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shoes, nil
}
