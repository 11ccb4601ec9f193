// Package user defines account records and credential checks.
package user

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// User represents an account. PasswordHash is a bcrypt digest; the plain
// password is never stored.
type User struct {
	ID           string `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	IsAdmin      bool   `json:"isAdmin" db:"is_admin"`
}

// New builds a user with the given credentials, hashing the password.
func New(id, username, password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	return User{ID: id, Username: username, PasswordHash: string(hash)}, nil
}

// CheckPassword reports whether the password matches the stored hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Repository defines behavior for persisting users.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByUsername(ctx context.Context, username string) (User, error)
}

// ErrNotFound indicates no user exists with the given username.
var ErrNotFound = errors.New("user not found")

// ErrDuplicate indicates the username is already taken.
var ErrDuplicate = errors.New("duplicate username")
