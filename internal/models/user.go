package models

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser is the insert shape; the repository assigns ID and CreatedAt.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
}

// PublicUser is the identity exposed to clients. It never carries the hash.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
