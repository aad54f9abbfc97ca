package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lawrencemparker/Stride4Stride/models"
	"github.com/lib/pq"
)

var (
	ErrClubNotFound         = errors.New("club not found")
	ErrClubJoinCodeConflict = errors.New("club join code conflict")
)

// ClubRepository persists clubs with their members and announcements embedded
// as jsonb columns. The lists are written whole: two sessions replacing the
// same list concurrently resolve last-write-wins, which is the documented
// behavior of the app, not an accident.
type ClubRepository interface {
	Create(ctx context.Context, exec SQLExecutor, club *models.Club) error
	GetByID(ctx context.Context, id int) (*models.Club, error)
	GetByJoinCode(ctx context.Context, code string) (*models.Club, error)
	List(ctx context.Context) ([]*models.Club, error)
	UpdateMembers(ctx context.Context, id int, members []models.Member) error
	UpdateAnnouncements(ctx context.Context, id int, announcements []models.Announcement) error
	UpdatePrizeMessage(ctx context.Context, id int, message string) error
	SetLogoKey(ctx context.Context, id int, key *string) error
	Delete(ctx context.Context, id int) error
}

type postgresClubRepository struct {
	db *sql.DB
}

func NewPostgresClubRepository(db *sql.DB) ClubRepository {
	return &postgresClubRepository{db: db}
}

func (r *postgresClubRepository) Create(ctx context.Context, exec SQLExecutor, club *models.Club) error {
	if exec == nil {
		exec = r.db
	}

	membersJSON, err := json.Marshal(club.Members)
	if err != nil {
		return fmt.Errorf("failed to marshal members: %w", err)
	}
	annsJSON, err := json.Marshal(club.Announcements)
	if err != nil {
		return fmt.Errorf("failed to marshal announcements: %w", err)
	}

	query := `
		INSERT INTO clubs (name, admin_id, admin_name, join_code, members, announcements, prize_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err = exec.QueryRowContext(ctx, query,
		club.Name,
		club.AdminID,
		club.AdminName,
		club.JoinCode,
		membersJSON,
		annsJSON,
		club.PrizeMessage,
	).Scan(&club.ID, &club.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "clubs_join_code_key" {
				return ErrClubJoinCodeConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresClubRepository) GetByID(ctx context.Context, id int) (*models.Club, error) {
	query := `
		SELECT id, name, admin_id, admin_name, join_code, members, announcements, prize_message, logo_key, created_at
		FROM clubs
		WHERE id = $1`
	return r.scanClub(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresClubRepository) GetByJoinCode(ctx context.Context, code string) (*models.Club, error) {
	query := `
		SELECT id, name, admin_id, admin_name, join_code, members, announcements, prize_message, logo_key, created_at
		FROM clubs
		WHERE join_code = $1`
	return r.scanClub(r.db.QueryRowContext(ctx, query, code))
}

func (r *postgresClubRepository) List(ctx context.Context) ([]*models.Club, error) {
	query := `
		SELECT id, name, admin_id, admin_name, join_code, members, announcements, prize_message, logo_key, created_at
		FROM clubs
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clubs := make([]*models.Club, 0)
	for rows.Next() {
		club, scanErr := r.scanClub(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		clubs = append(clubs, club)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return clubs, nil
}

func (r *postgresClubRepository) UpdateMembers(ctx context.Context, id int, members []models.Member) error {
	membersJSON, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("failed to marshal members: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `UPDATE clubs SET members = $1 WHERE id = $2`, membersJSON, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func (r *postgresClubRepository) UpdateAnnouncements(ctx context.Context, id int, announcements []models.Announcement) error {
	annsJSON, err := json.Marshal(announcements)
	if err != nil {
		return fmt.Errorf("failed to marshal announcements: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `UPDATE clubs SET announcements = $1 WHERE id = $2`, annsJSON, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func (r *postgresClubRepository) UpdatePrizeMessage(ctx context.Context, id int, message string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE clubs SET prize_message = $1 WHERE id = $2`, message, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func (r *postgresClubRepository) SetLogoKey(ctx context.Context, id int, key *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE clubs SET logo_key = $1 WHERE id = $2`, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

// Delete removes the whole club record in one statement; embedded members
// and announcements go with it, nothing else needs cleaning up.
func (r *postgresClubRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clubs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *postgresClubRepository) scanClub(row rowScanner) (*models.Club, error) {
	club := &models.Club{}
	var membersJSON, annsJSON []byte

	err := row.Scan(
		&club.ID,
		&club.Name,
		&club.AdminID,
		&club.AdminName,
		&club.JoinCode,
		&membersJSON,
		&annsJSON,
		&club.PrizeMessage,
		&club.LogoKey,
		&club.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(membersJSON, &club.Members); err != nil {
		return nil, fmt.Errorf("failed to unmarshal members for club %d: %w", club.ID, err)
	}
	if err := json.Unmarshal(annsJSON, &club.Announcements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal announcements for club %d: %w", club.ID, err)
	}

	return club, nil
}
