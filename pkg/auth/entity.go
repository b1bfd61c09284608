package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns resumes, vacancies and analyses. Admins see
// every owner's records.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}
