package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lawrencemparker/Stride4Stride/models"
	"github.com/lawrencemparker/Stride4Stride/repositories"
)

type RunService interface {
	CreateRun(ctx context.Context, userID int, input RunInput) (*models.Run, error)
	UpdateRun(ctx context.Context, runID, currentUserID int, input RunInput) (*models.Run, error)
	DeleteRun(ctx context.Context, runID, currentUserID int) error
	ListRuns(ctx context.Context, userID int) ([]models.Run, error)
}

type RunInput struct {
	Date     string   `json:"date"`
	Distance *float64 `json:"distance"`
	ShoeID   *int     `json:"shoe_id"`
	ClubName string   `json:"club"`
}

type runService struct {
	runRepo  repositories.RunRepository
	shoeRepo repositories.ShoeRepository
}

func NewRunService(runRepo repositories.RunRepository, shoeRepo repositories.ShoeRepository) RunService {
	return &runService{
		runRepo:  runRepo,
		shoeRepo: shoeRepo,
	}
}

// CreateRun validates the required fields, snapshots the shoe's current name
// when a shoe is attached, and persists the run under the caller's identity.
// The snapshot is a point-in-time label: renaming or deleting the shoe later
// leaves it as-is.
func (s *runService) CreateRun(ctx context.Context, userID int, input RunInput) (*models.Run, error) {
	if input.Distance == nil || *input.Distance < 0 {
		return nil, ErrDistanceRequired
	}
	if strings.TrimSpace(input.Date) == "" {
		return nil, ErrDateRequired
	}

	run := &models.Run{
		UserID:   userID,
		Date:     strings.TrimSpace(input.Date),
		Distance: *input.Distance,
		ClubName: strings.TrimSpace(input.ClubName),
	}

	if input.ShoeID != nil {
		shoe, err := s.ownedShoe(ctx, *input.ShoeID, userID)
		if err != nil {
			return nil, err
		}
		run.ShoeID = input.ShoeID
		run.ShoeName = shoe.Name
	}

	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// UpdateRun edits distance, date, shoe, and club only; owner and id are
// immutable. If the run still points at a shoe that has since been deleted,
// re-saving with the same shoe id keeps the original snapshot name rather
// than inventing a new one.
func (s *runService) UpdateRun(ctx context.Context, runID, currentUserID int, input RunInput) (*models.Run, error) {
	run, err := s.ownedRun(ctx, runID, currentUserID)
	if err != nil {
		return nil, err
	}

	if input.Distance == nil || *input.Distance < 0 {
		return nil, ErrDistanceRequired
	}
	if strings.TrimSpace(input.Date) == "" {
		return nil, ErrDateRequired
	}

	run.Distance = *input.Distance
	run.Date = strings.TrimSpace(input.Date)
	run.ClubName = strings.TrimSpace(input.ClubName)

	switch {
	case input.ShoeID == nil:
		run.ShoeID = nil
		run.ShoeName = ""
	case run.ShoeID != nil && *run.ShoeID == *input.ShoeID:
		// Unchanged reference. Refresh the snapshot only if the shoe still
		// exists; a dangling reference keeps its point-in-time name.
		if shoe, lookupErr := s.shoeRepo.GetByID(ctx, *input.ShoeID); lookupErr == nil {
			run.ShoeName = shoe.Name
		} else if !errors.Is(lookupErr, repositories.ErrShoeNotFound) {
			return nil, fmt.Errorf("failed to get shoe %d: %w", *input.ShoeID, lookupErr)
		}
	default:
		// Switching to a different shoe requires it to exist and be owned
		// by the caller.
		shoe, lookupErr := s.ownedShoe(ctx, *input.ShoeID, currentUserID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		run.ShoeID = input.ShoeID
		run.ShoeName = shoe.Name
	}

	if err := s.runRepo.Update(ctx, run); err != nil {
		if errors.Is(err, repositories.ErrRunNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to update run %d: %w", runID, err)
	}
	return run, nil
}

// DeleteRun is an unconditional identity-keyed delete; no related records
// need cleaning up.
func (s *runService) DeleteRun(ctx context.Context, runID, currentUserID int) error {
	if _, err := s.ownedRun(ctx, runID, currentUserID); err != nil {
		return err
	}

	if err := s.runRepo.Delete(ctx, runID); err != nil {
		if errors.Is(err, repositories.ErrRunNotFound) {
			return ErrRunNotFound
		}
		return fmt.Errorf("failed to delete run %d: %w", runID, err)
	}
	return nil
}

func (s *runService) ListRuns(ctx context.Context, userID int) ([]models.Run, error) {
	runs, err := s.runRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs for user %d: %w", userID, err)
	}
	return runs, nil
}

func (s *runService) ownedRun(ctx context.Context, runID, userID int) (*models.Run, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		if errors.Is(err, repositories.ErrRunNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get run %d: %w", runID, err)
	}
	if run.UserID != userID {
		return nil, ErrForbiddenOperation
	}
	return run, nil
}

func (s *runService) ownedShoe(ctx context.Context, shoeID, userID int) (*models.Shoe, error) {
	shoe, err := s.shoeRepo.GetByID(ctx, shoeID)
	if err != nil {
		if errors.Is(err, repositories.ErrShoeNotFound) {
			return nil, ErrShoeNotFound
		}
		return nil, fmt.Errorf("failed to get shoe %d: %w", shoeID, err)
	}
	if shoe.UserID != userID {
		return nil, ErrForbiddenOperation
	}
	return shoe, nil
}
