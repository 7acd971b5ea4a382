package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"nombre"`
	Nickname     string    `json:"nickname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RegisteredAt time.Time `json:"fecha_reg"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
