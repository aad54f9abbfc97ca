package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lawrencemparker/Stride4Stride/models"
)

func newShoeFixture(t *testing.T) (ShoeService, *fakeShoeRepo, *fakeRunRepo) {
	t.Helper()
	shoeRepo := newFakeShoeRepo()
	runRepo := newFakeRunRepo()
	return NewShoeService(shoeRepo, runRepo), shoeRepo, runRepo
}

func TestAddShoeDefaults(t *testing.T) {
	svc, _, _ := newShoeFixture(t)

	shoe, err := svc.AddShoe(context.Background(), 1, "  Pegasus  ")
	if err != nil {
		t.Fatalf("AddShoe() error = %v", err)
	}

	if shoe.Name != "Pegasus" {
		t.Errorf("Name = %q, want trimmed %q", shoe.Name, "Pegasus")
	}
	if shoe.InitialMiles != 0 || shoe.MileLimit != 400 || shoe.Retired {
		t.Errorf("defaults = {initial:%v limit:%v retired:%v}, want {0 400 false}",
			shoe.InitialMiles, shoe.MileLimit, shoe.Retired)
	}
}

func TestAddShoeRequiresName(t *testing.T) {
	svc, _, _ := newShoeFixture(t)

	if _, err := svc.AddShoe(context.Background(), 1, "   "); !errors.Is(err, ErrShoeNameRequired) {
		t.Errorf("AddShoe() error = %v, want ErrShoeNameRequired", err)
	}
}

func TestRenameShoe(t *testing.T) {
	svc, _, _ := newShoeFixture(t)
	ctx := context.Background()

	shoe, err := svc.AddShoe(ctx, 1, "Pegasus")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.RenameShoe(ctx, shoe.ID, 1, ""); !errors.Is(err, ErrShoeNameRequired) {
		t.Errorf("RenameShoe() blank name error = %v, want ErrShoeNameRequired", err)
	}
	if _, err := svc.RenameShoe(ctx, shoe.ID, 2, "Stolen"); !errors.Is(err, ErrForbiddenOperation) {
		t.Errorf("RenameShoe() by non-owner error = %v, want ErrForbiddenOperation", err)
	}

	renamed, err := svc.RenameShoe(ctx, shoe.ID, 1, "Pegasus 40")
	if err != nil {
		t.Fatalf("RenameShoe() error = %v", err)
	}
	if renamed.Name != "Pegasus 40" {
		t.Errorf("Name = %q, want %q", renamed.Name, "Pegasus 40")
	}
}

func TestDeleteShoePreservesRunHistory(t *testing.T) {
	svc, shoeRepo, runRepo := newShoeFixture(t)
	ctx := context.Background()

	shoe, err := svc.AddShoe(ctx, 1, "Pegasus")
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		run := &models.Run{UserID: 1, Date: "Jan 5", Distance: 5, ShoeID: &shoe.ID, ShoeName: "Pegasus"}
		if err := runRepo.Create(ctx, run); err != nil {
			t.Fatal(err)
		}
	}

	if err := svc.DeleteShoe(ctx, shoe.ID, 1); err != nil {
		t.Fatalf("DeleteShoe() error = %v", err)
	}

	runs, err := runRepo.ListByUserID(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs after shoe delete, want all 3 preserved", len(runs))
	}
	for _, run := range runs {
		if run.ShoeName != "Pegasus" {
			t.Errorf("run %d lost its snapshot name: %q", run.ID, run.ShoeName)
		}
		if run.ShoeID == nil || *run.ShoeID != shoe.ID {
			t.Errorf("run %d lost its shoe reference: %v", run.ID, run.ShoeID)
		}
	}

	// The live lookup for a dangling reference reports not found, it does
	// not blow up.
	if _, err := shoeRepo.GetByID(ctx, shoe.ID); err == nil {
		t.Error("deleted shoe still resolvable")
	}
}

func TestListShoesDerivesMileage(t *testing.T) {
	svc, _, runRepo := newShoeFixture(t)
	ctx := context.Background()

	shoe, err := svc.AddShoe(ctx, 1, "Pegasus")
	if err != nil {
		t.Fatal(err)
	}

	for _, d := range []float64{5.0, 3.5} {
		run := &models.Run{UserID: 1, Date: "Jan 5", Distance: d, ShoeID: &shoe.ID, ShoeName: "Pegasus"}
		if err := runRepo.Create(ctx, run); err != nil {
			t.Fatal(err)
		}
	}

	shoes, err := svc.ListShoes(ctx, 1)
	if err != nil {
		t.Fatalf("ListShoes() error = %v", err)
	}
	if len(shoes) != 1 {
		t.Fatalf("got %d shoes, want 1", len(shoes))
	}
	if shoes[0].Miles != 8.5 {
		t.Errorf("derived miles = %v, want 8.5", shoes[0].Miles)
	}
}

func TestSetRetired(t *testing.T) {
	svc, _, _ := newShoeFixture(t)
	ctx := context.Background()

	shoe, err := svc.AddShoe(ctx, 1, "Pegasus")
	if err != nil {
		t.Fatal(err)
	}

	retired, err := svc.SetRetired(ctx, shoe.ID, 1, true)
	if err != nil {
		t.Fatalf("SetRetired() error = %v", err)
	}
	if !retired.Retired {
		t.Error("shoe not marked retired")
	}
}
