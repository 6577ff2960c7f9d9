package models

import "time"

// User is an account allowed to create and join sessions.
type User struct {
	Id           string
	Email        string `pg:",unique"`
	PasswordHash string
	CreatedAt    time.Time
}

type UserDto struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}
