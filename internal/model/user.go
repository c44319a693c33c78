package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a candidate account created on first Google sign-in.
type User struct {
	ID        uuid.UUID `json:"id"`
	GoogleID  string    `json:"-"`
	Email     string    `json:"email"`
	Name      string    `json:"nombre"`
	CreatedAt time.Time `json:"created_at"`
}

// UserLoginResponse is returned after a completed OAuth callback.
type UserLoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"usuario"`
}
