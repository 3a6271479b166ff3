package domain

import "time"

// Language carries the locale settings used when reading user input.
type Language struct {
	Code       string `validate:"required"`
	Name       string `validate:"required"`
	DateFormat string `validate:"required"` // strftime pattern, e.g. "%d/%m/%Y"
}

type User struct {
	ID        string
	Login     string `validate:"required"`
	Name      string
	Lang      string `validate:"required"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultUserLogin is the seeded administrator account.
const DefaultUserLogin = "admin"
