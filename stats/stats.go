// Package stats derives display values from raw run, shoe, and club records.
// Every function is a pure computation over the snapshots it is given, so
// callers can recompute from the latest state on each update and out-of-order
// delivery self-heals on the next snapshot.
package stats

import (
	"sort"

	"github.com/lawrencemparker/Stride4Stride/models"
)

// MonthlyMileage sums the distances of the given runs. The caller decides the
// window by choosing which runs to pass in; the home screen passes the full
// set, matching the standings the mobile app has always shown.
func MonthlyMileage(runs []models.Run) float64 {
	var total float64
	for _, r := range runs {
		total += r.Distance
	}
	return total
}

// ShoeMileage returns the shoe's initial miles plus the distance of every run
// that references it. Runs whose shoe reference points elsewhere (or nowhere)
// do not count.
func ShoeMileage(shoe models.Shoe, runs []models.Run) float64 {
	total := shoe.InitialMiles
	for _, r := range runs {
		if r.ShoeID != nil && *r.ShoeID == shoe.ID {
			total += r.Distance
		}
	}
	return total
}

// WearFraction reports how worn a shoe is as a fraction in [0, 1]. A limit of
// zero or less means the shoe is past any sensible retirement point, so it
// reads as fully worn rather than dividing by zero.
func WearFraction(shoe models.Shoe, runs []models.Run) float64 {
	if shoe.MileLimit <= 0 {
		return 1
	}
	frac := ShoeMileage(shoe, runs) / shoe.MileLimit
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

// Leaderboard returns the club's members ranked by miles, highest first.
// The sort is stable: members with equal miles keep their stored order.
// The club's own member list is left untouched.
func Leaderboard(club *models.Club) []models.Member {
	ranked := make([]models.Member, len(club.Members))
	copy(ranked, club.Members)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Miles > ranked[j].Miles
	})
	return ranked
}
