package models

import "time"

// Run is a single logged run. ShoeID is intentionally not a foreign key:
// deleting a shoe leaves the reference dangling and ShoeName keeps the label
// the shoe had when the run was saved. ClubName is likewise a display
// snapshot, not a live reference.
type Run struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Date      string    `json:"date"`
	Distance  float64   `json:"distance"`
	ShoeID    *int      `json:"shoe_id,omitempty"`
	ShoeName  string    `json:"shoe,omitempty"`
	ClubName  string    `json:"club,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
