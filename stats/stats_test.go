package stats

import (
	"math"
	"testing"

	"github.com/lawrencemparker/Stride4Stride/models"
)

func shoeRef(id int) *int { return &id }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMonthlyMileage(t *testing.T) {
	tests := []struct {
		name string
		runs []models.Run
		want float64
	}{
		{"no runs", nil, 0},
		{"single run", []models.Run{{Distance: 3.1}}, 3.1},
		{"sums every run regardless of date", []models.Run{
			{Distance: 5.0, Date: "Jan 3"},
			{Distance: 3.5, Date: "Dec 28"},
			{Distance: 10.0, Date: "Nov 1"},
		}, 18.5},
		{"zero distances tolerated", []models.Run{{Distance: 0}, {Distance: 2}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthlyMileage(tt.runs); !almostEqual(got, tt.want) {
				t.Errorf("MonthlyMileage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShoeMileage(t *testing.T) {
	shoe := models.Shoe{ID: 1, Name: "Pegasus", InitialMiles: 20, MileLimit: 100}
	runs := []models.Run{
		{ShoeID: shoeRef(1), Distance: 5.0},
		{ShoeID: shoeRef(1), Distance: 3.5},
		{ShoeID: shoeRef(2), Distance: 7.0}, // different shoe
		{Distance: 4.0},                     // no shoe
	}

	if got := ShoeMileage(shoe, runs); !almostEqual(got, 28.5) {
		t.Errorf("ShoeMileage() = %v, want 28.5", got)
	}

	// Adding a run referencing the shoe increases mileage by exactly that distance.
	more := append(runs, models.Run{ShoeID: shoeRef(1), Distance: 2.2})
	if got := ShoeMileage(shoe, more); !almostEqual(got, 30.7) {
		t.Errorf("ShoeMileage() after extra run = %v, want 30.7", got)
	}
}

func TestShoeMileageMissingFields(t *testing.T) {
	// A shoe created before initial miles were tracked scans as zero, and a
	// run without a distance contributes nothing.
	shoe := models.Shoe{ID: 3}
	runs := []models.Run{{ShoeID: shoeRef(3)}}
	if got := ShoeMileage(shoe, runs); got != 0 {
		t.Errorf("ShoeMileage() = %v, want 0", got)
	}
}

func TestWearFraction(t *testing.T) {
	runs := []models.Run{
		{ShoeID: shoeRef(1), Distance: 5.0},
		{ShoeID: shoeRef(1), Distance: 3.5},
	}

	tests := []struct {
		name string
		shoe models.Shoe
		want float64
	}{
		{"pegasus scenario", models.Shoe{ID: 1, InitialMiles: 20, MileLimit: 100}, 0.285},
		{"over the limit clamps to 1", models.Shoe{ID: 1, InitialMiles: 500, MileLimit: 100}, 1},
		{"zero limit reads fully worn", models.Shoe{ID: 1, MileLimit: 0}, 1},
		{"negative limit reads fully worn", models.Shoe{ID: 1, MileLimit: -10}, 1},
		{"unused shoe", models.Shoe{ID: 9, MileLimit: 400}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WearFraction(tt.shoe, runs); !almostEqual(got, tt.want) {
				t.Errorf("WearFraction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLeaderboardStableTies(t *testing.T) {
	club := &models.Club{Members: []models.Member{
		{Name: "A", Miles: 10},
		{Name: "B", Miles: 10},
		{Name: "C", Miles: 5},
	}}

	ranked := Leaderboard(club)

	want := []string{"A", "B", "C"}
	if len(ranked) != len(want) {
		t.Fatalf("Leaderboard() returned %d members, want %d", len(ranked), len(want))
	}
	for i, name := range want {
		if ranked[i].Name != name {
			t.Errorf("rank %d = %q, want %q", i+1, ranked[i].Name, name)
		}
	}
}

func TestLeaderboardDoesNotMutateClub(t *testing.T) {
	club := &models.Club{Members: []models.Member{
		{Name: "low", Miles: 1},
		{Name: "high", Miles: 99},
	}}

	Leaderboard(club)

	if club.Members[0].Name != "low" || club.Members[1].Name != "high" {
		t.Errorf("Leaderboard() reordered the club's own member list: %+v", club.Members)
	}
}

func TestAggregationIsIdempotent(t *testing.T) {
	shoe := models.Shoe{ID: 1, InitialMiles: 12, MileLimit: 400}
	runs := []models.Run{
		{ShoeID: shoeRef(1), Distance: 4.2},
		{Distance: 8.0},
	}
	club := &models.Club{Members: []models.Member{{Name: "A", Miles: 3}, {Name: "B", Miles: 7}}}

	m1, m2 := MonthlyMileage(runs), MonthlyMileage(runs)
	s1, s2 := ShoeMileage(shoe, runs), ShoeMileage(shoe, runs)
	w1, w2 := WearFraction(shoe, runs), WearFraction(shoe, runs)
	l1, l2 := Leaderboard(club), Leaderboard(club)

	if m1 != m2 || s1 != s2 || w1 != w2 {
		t.Errorf("repeated aggregation differed: miles %v/%v, shoe %v/%v, wear %v/%v", m1, m2, s1, s2, w1, w2)
	}
	for i := range l1 {
		if l1[i] != l2[i] {
			t.Errorf("repeated Leaderboard() differed at %d: %+v vs %+v", i, l1[i], l2[i])
		}
	}
}
