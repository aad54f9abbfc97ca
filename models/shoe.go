package models

import "time"

type Shoe struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	Name         string    `json:"name"`
	InitialMiles float64   `json:"initial_miles"`
	MileLimit    float64   `json:"limit"`
	Retired      bool      `json:"retired"`
	CreatedAt    time.Time `json:"created_at"`

	// Miles is derived (initial miles plus logged run distances), populated
	// by the service layer, never stored.
	Miles float64 `json:"miles"`
}
