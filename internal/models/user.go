package models

import (
	"time"
)

// User as stored. PasswordHash must never be rendered or logged.
type User struct {
	ID           int64
	CreatedAt    time.Time
	Username     string
	PasswordHash string
}
