package services

import (
	"context"
	"fmt"

	"github.com/lawrencemparker/Stride4Stride/models"
	"github.com/lawrencemparker/Stride4Stride/repositories"
	"github.com/lawrencemparker/Stride4Stride/stats"
	"golang.org/x/sync/errgroup"
)

// Dashboard is the home-screen payload: total miles, the shoe rotation with
// derived mileage and wear, and the recent run history. Everything here is
// recomputed from the latest records on every request, never cached or
// incrementally patched.
type Dashboard struct {
	MonthlyMiles float64       `json:"monthly_miles"`
	Shoes        []models.Shoe `json:"shoes"`
	Runs         []models.Run  `json:"runs"`
	Wear         []ShoeWear    `json:"wear"`
}

type ShoeWear struct {
	ShoeID   int     `json:"shoe_id"`
	Fraction float64 `json:"fraction"`
}

type DashboardService interface {
	GetDashboard(ctx context.Context, userID int) (*Dashboard, error)
}

type dashboardService struct {
	runRepo  repositories.RunRepository
	shoeRepo repositories.ShoeRepository
}

func NewDashboardService(runRepo repositories.RunRepository, shoeRepo repositories.ShoeRepository) DashboardService {
	return &dashboardService{
		runRepo:  runRepo,
		shoeRepo: shoeRepo,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID int) (*Dashboard, error) {
	var (
		runs  []models.Run
		shoes []models.Shoe
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		runs, err = s.runRepo.ListByUserID(gCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to list runs for user %d: %w", userID, err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		shoes, err = s.shoeRepo.ListByUserID(gCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to list shoes for user %d: %w", userID, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		MonthlyMiles: stats.MonthlyMileage(runs),
		Runs:         runs,
		Shoes:        shoes,
		Wear:         make([]ShoeWear, 0, len(shoes)),
	}

	for i := range dashboard.Shoes {
		dashboard.Shoes[i].Miles = stats.ShoeMileage(dashboard.Shoes[i], runs)
		dashboard.Wear = append(dashboard.Wear, ShoeWear{
			ShoeID:   dashboard.Shoes[i].ID,
			Fraction: stats.WearFraction(dashboard.Shoes[i], runs),
		})
	}

	return dashboard, nil
}
