package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lawrencemparker/Stride4Stride/models"
)

func float(v float64) *float64 { return &v }
func intp(v int) *int          { return &v }

func newRunFixture(t *testing.T) (RunService, *fakeRunRepo, *fakeShoeRepo) {
	t.Helper()
	runRepo := newFakeRunRepo()
	shoeRepo := newFakeShoeRepo()
	return NewRunService(runRepo, shoeRepo), runRepo, shoeRepo
}

func TestCreateRunValidation(t *testing.T) {
	svc, _, _ := newRunFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   RunInput
		wantErr error
	}{
		{"missing distance", RunInput{Date: "Jan 5"}, ErrDistanceRequired},
		{"negative distance", RunInput{Date: "Jan 5", Distance: float(-1)}, ErrDistanceRequired},
		{"missing date", RunInput{Distance: float(3.1)}, ErrDateRequired},
		{"blank date", RunInput{Date: "   ", Distance: float(3.1)}, ErrDateRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateRun(ctx, 1, tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateRun() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateRunSnapshotsShoeName(t *testing.T) {
	svc, _, shoeRepo := newRunFixture(t)
	ctx := context.Background()

	shoe := &models.Shoe{UserID: 1, Name: "Pegasus", MileLimit: 400}
	if err := shoeRepo.Create(ctx, shoe); err != nil {
		t.Fatal(err)
	}

	run, err := svc.CreateRun(ctx, 1, RunInput{Date: "Jan 5", Distance: float(5), ShoeID: intp(shoe.ID)})
	if err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}
	if run.ShoeName != "Pegasus" {
		t.Errorf("run.ShoeName = %q, want snapshot of live shoe name", run.ShoeName)
	}
	if run.UserID != 1 {
		t.Errorf("run.UserID = %d, want owner identity 1", run.UserID)
	}
}

func TestCreateRunRejectsForeignShoe(t *testing.T) {
	svc, _, shoeRepo := newRunFixture(t)
	ctx := context.Background()

	shoe := &models.Shoe{UserID: 2, Name: "Not Yours"}
	if err := shoeRepo.Create(ctx, shoe); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.CreateRun(ctx, 1, RunInput{Date: "Jan 5", Distance: float(5), ShoeID: intp(shoe.ID)}); !errors.Is(err, ErrForbiddenOperation) {
		t.Errorf("CreateRun() error = %v, want ErrForbiddenOperation", err)
	}
}

func TestUpdateRunKeepsSnapshotWhenShoeDeleted(t *testing.T) {
	svc, _, shoeRepo := newRunFixture(t)
	ctx := context.Background()

	shoe := &models.Shoe{UserID: 1, Name: "Vaporfly", MileLimit: 400}
	if err := shoeRepo.Create(ctx, shoe); err != nil {
		t.Fatal(err)
	}

	run, err := svc.CreateRun(ctx, 1, RunInput{Date: "Jan 5", Distance: float(5), ShoeID: intp(shoe.ID)})
	if err != nil {
		t.Fatal(err)
	}

	// The shoe goes away, then the run is re-saved with its unchanged
	// reference. The original snapshot name must survive.
	if err := shoeRepo.Delete(ctx, shoe.ID); err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateRun(ctx, run.ID, 1, RunInput{Date: "Jan 6", Distance: float(6), ShoeID: intp(shoe.ID)})
	if err != nil {
		t.Fatalf("UpdateRun() error = %v", err)
	}
	if updated.ShoeName != "Vaporfly" {
		t.Errorf("ShoeName after dangling re-save = %q, want original snapshot %q", updated.ShoeName, "Vaporfly")
	}
	if updated.ShoeID == nil || *updated.ShoeID != shoe.ID {
		t.Errorf("ShoeID after dangling re-save = %v, want original reference %d", updated.ShoeID, shoe.ID)
	}
}

func TestUpdateRunRefreshesSnapshotFromLiveShoe(t *testing.T) {
	svc, _, shoeRepo := newRunFixture(t)
	ctx := context.Background()

	shoe := &models.Shoe{UserID: 1, Name: "Old Name", MileLimit: 400}
	if err := shoeRepo.Create(ctx, shoe); err != nil {
		t.Fatal(err)
	}

	run, err := svc.CreateRun(ctx, 1, RunInput{Date: "Jan 5", Distance: float(5), ShoeID: intp(shoe.ID)})
	if err != nil {
		t.Fatal(err)
	}

	renamed, _ := shoeRepo.GetByID(ctx, shoe.ID)
	renamed.Name = "New Name"
	if err := shoeRepo.Update(ctx, renamed); err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateRun(ctx, run.ID, 1, RunInput{Date: "Jan 5", Distance: float(5), ShoeID: intp(shoe.ID)})
	if err != nil {
		t.Fatalf("UpdateRun() error = %v", err)
	}
	if updated.ShoeName != "New Name" {
		t.Errorf("ShoeName after live re-save = %q, want refreshed name", updated.ShoeName)
	}
}

func TestUpdateRunImmutableOwner(t *testing.T) {
	svc, _, _ := newRunFixture(t)
	ctx := context.Background()

	run, err := svc.CreateRun(ctx, 1, RunInput{Date: "Jan 5", Distance: float(5)})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpdateRun(ctx, run.ID, 2, RunInput{Date: "Jan 6", Distance: float(1)}); !errors.Is(err, ErrForbiddenOperation) {
		t.Errorf("UpdateRun() by non-owner error = %v, want ErrForbiddenOperation", err)
	}
}

func TestDeleteRun(t *testing.T) {
	svc, runRepo, _ := newRunFixture(t)
	ctx := context.Background()

	run, err := svc.CreateRun(ctx, 1, RunInput{Date: "Jan 5", Distance: float(5)})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteRun(ctx, run.ID, 2); !errors.Is(err, ErrForbiddenOperation) {
		t.Errorf("DeleteRun() by non-owner error = %v, want ErrForbiddenOperation", err)
	}

	if err := svc.DeleteRun(ctx, run.ID, 1); err != nil {
		t.Fatalf("DeleteRun() error = %v", err)
	}

	if _, err := runRepo.GetByID(ctx, run.ID); err == nil {
		t.Error("run still present after delete")
	}

	if err := svc.DeleteRun(ctx, run.ID, 1); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("DeleteRun() of missing run error = %v, want ErrRunNotFound", err)
	}
}
