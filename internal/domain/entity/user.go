package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
//
// Password holds the salted PBKDF2 credential, never the plaintext. Password
// and Salt are always written together: the invariant is
// Password == HashCredential(Salt, plaintext at last set).
// SessionToken is nil until the first successful login and replaced on every
// login after that; its presence is what marks the account as logged in.
type User struct {
	ID              int64
	Username        string
	Email           string
	FullName        string
	Bio             string
	ProfileImageURL string
	Password        string
	Salt            string
	SessionToken    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PublicUser is the subset of User safe to return to clients.
type PublicUser struct {
	ID              int64  `json:"id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	FullName        string `json:"fullname,omitempty"`
	Bio             string `json:"bio,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// Public returns the client-facing projection, excluding Password, Salt and
// SessionToken.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		FullName:        u.FullName,
		Bio:             u.Bio,
		ProfileImageURL: u.ProfileImageURL,
	}
}
