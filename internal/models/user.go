package models

import "time"

// User is a registered credential record. PasswordHash is a bcrypt hash with
// the salt embedded in the stored string; it must never serialize.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
