// Package model defines the persisted record types for the platform.
package model

import "time"

// User is a registered account. Either Email or Phone identifies the user;
// at least one is always set.
type User struct {
	ID                string     `json:"id"`
	Email             string     `json:"email,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	Name              string     `json:"name"`
	PasswordHash      string     `json:"-"`
	PreferredLanguage string     `json:"preferred_language"`
	IsVerified        bool       `json:"is_verified"`
	OTP               string     `json:"-"`
	OTPExpires        *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
}

// Public returns the externally visible view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:                u.ID,
		Email:             u.Email,
		Phone:             u.Phone,
		Name:              u.Name,
		PreferredLanguage: u.PreferredLanguage,
		IsVerified:        u.IsVerified,
	}
}

// PublicUser is the user representation returned by the API.
type PublicUser struct {
	ID                string `json:"id"`
	Email             string `json:"email,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Name              string `json:"name"`
	PreferredLanguage string `json:"preferred_language"`
	IsVerified        bool   `json:"is_verified"`
}

// TokenResponse pairs a bearer token with the authenticated user.
type TokenResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        PublicUser `json:"user"`
}
