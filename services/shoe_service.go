package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lawrencemparker/Stride4Stride/models"
	"github.com/lawrencemparker/Stride4Stride/repositories"
	"github.com/lawrencemparker/Stride4Stride/stats"
)

const defaultMileLimit = 400

type ShoeService interface {
	AddShoe(ctx context.Context, userID int, name string) (*models.Shoe, error)
	RenameShoe(ctx context.Context, shoeID, currentUserID int, newName string) (*models.Shoe, error)
	SetRetired(ctx context.Context, shoeID, currentUserID int, retired bool) (*models.Shoe, error)
	DeleteShoe(ctx context.Context, shoeID, currentUserID int) error
	ListShoes(ctx context.Context, userID int) ([]models.Shoe, error)
}

type shoeService struct {
	shoeRepo repositories.ShoeRepository
	runRepo  repositories.RunRepository
}

func NewShoeService(shoeRepo repositories.ShoeRepository, runRepo repositories.RunRepository) ShoeService {
	return &shoeService{
		shoeRepo: shoeRepo,
		runRepo:  runRepo,
	}
}

func (s *shoeService) AddShoe(ctx context.Context, userID int, name string) (*models.Shoe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrShoeNameRequired
	}

	shoe := &models.Shoe{
		UserID:       userID,
		Name:         name,
		InitialMiles: 0,
		MileLimit:    defaultMileLimit,
		Retired:      false,
	}

	if err := s.shoeRepo.Create(ctx, shoe); err != nil {
		return nil, fmt.Errorf("failed to create shoe: %w", err)
	}
	return shoe, nil
}

// RenameShoe changes the live record only. Runs that snapshotted the old
// name keep it.
func (s *shoeService) RenameShoe(ctx context.Context, shoeID, currentUserID int, newName string) (*models.Shoe, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, ErrShoeNameRequired
	}

	shoe, err := s.ownedShoe(ctx, shoeID, currentUserID)
	if err != nil {
		return nil, err
	}

	shoe.Name = newName
	if err := s.shoeRepo.Update(ctx, shoe); err != nil {
		return nil, fmt.Errorf("failed to rename shoe %d: %w", shoeID, err)
	}
	return shoe, nil
}

func (s *shoeService) SetRetired(ctx context.Context, shoeID, currentUserID int, retired bool) (*models.Shoe, error) {
	shoe, err := s.ownedShoe(ctx, shoeID, currentUserID)
	if err != nil {
		return nil, err
	}

	shoe.Retired = retired
	if err := s.shoeRepo.Update(ctx, shoe); err != nil {
		return nil, fmt.Errorf("failed to update shoe %d: %w", shoeID, err)
	}
	return shoe, nil
}

// DeleteShoe removes the shoe from the owner's rotation. Runs referencing it
// are deliberately untouched: their snapshot names stay valid and any later
// live lookup of the shoe reports not found.
func (s *shoeService) DeleteShoe(ctx context.Context, shoeID, currentUserID int) error {
	if _, err := s.ownedShoe(ctx, shoeID, currentUserID); err != nil {
		return err
	}

	if err := s.shoeRepo.Delete(ctx, shoeID); err != nil {
		if errors.Is(err, repositories.ErrShoeNotFound) {
			return ErrShoeNotFound
		}
		return fmt.Errorf("failed to delete shoe %d: %w", shoeID, err)
	}
	return nil
}

// ListShoes returns the owner's shoes with the derived mileage populated
// from the current run set.
func (s *shoeService) ListShoes(ctx context.Context, userID int) ([]models.Shoe, error) {
	shoes, err := s.shoeRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shoes for user %d: %w", userID, err)
	}

	runs, err := s.runRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs for user %d: %w", userID, err)
	}

	for i := range shoes {
		shoes[i].Miles = stats.ShoeMileage(shoes[i], runs)
	}
	return shoes, nil
}

func (s *shoeService) ownedShoe(ctx context.Context, shoeID, userID int) (*models.Shoe, error) {
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
