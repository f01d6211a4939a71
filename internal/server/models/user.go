package models

import "time"

// User is a row of the users table. PasswordHash is a bcrypt hash and never
// leaves the service.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
