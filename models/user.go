package models

import "time"

type User struct {
	ID           int       `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	ShareConsent *bool     `json:"share_consent"`
	IsFounder    bool      `json:"is_founder"`
	Onboarded    bool      `json:"onboarded"`
	CreatedAt    time.Time `json:"created_at"`

	AvatarKey *string `json:"-"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// ConsentsToShare reports whether contact details may be shown to other
// members. Profiles written before the consent flag existed have no value
// stored; those legacy profiles are treated as consenting.
func (u *User) ConsentsToShare() bool {
	return u.ShareConsent == nil || *u.ShareConsent
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
