package user

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsDemo       bool      `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

type CreateUserParams struct {
	Username     string
	PasswordHash string
	IsDemo       bool
}
