package domain

import "time"

// User represents a registered user. PasswordHash is a bcrypt digest;
// the plaintext credential never leaves the auth service.
type User struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	Create(user *User) (*User, error)
	GetByID(id int32) (*User, error)
	GetByEmail(email string) (*User, error)
}
