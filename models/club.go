package models

import "time"

// Club holds its members and announcements as embedded ordered lists, stored
// whole and replaced whole on every mutation. Concurrent edits to the same
// list from two sessions resolve last-write-wins at the list level.
type Club struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	AdminID       int            `json:"admin_id"`
	AdminName     string         `json:"admin"`
	JoinCode      string         `json:"join_code,omitempty"`
	Members       []Member       `json:"members"`
	Announcements []Announcement `json:"announcements"`
	PrizeMessage  string         `json:"prize_message"`
	CreatedAt     time.Time      `json:"created_at"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo_url,omitempty"`
}

// Member is a lightweight embedded record of one user's participation in one
// club. Name and phone are copied from the global profile at join time and
// are not resynced by later profile edits. Email is the member's unique key
// within the club. Miles tracks club standings independently of the owner's
// personal run ledger.
type Member struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Miles        float64 `json:"miles"`
	ShareConsent bool    `json:"share_consent"`
}

type Announcement struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}
