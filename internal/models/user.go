package models

import "time"

// User represents a platform user
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"` // Not serialized
	Rate          int       `json:"rate"`
	CreditBalance float64   `json:"creditBalance"`
	TermCap       int       `json:"termCap"`
	CreatedAt     time.Time `json:"createdAt"`
}
