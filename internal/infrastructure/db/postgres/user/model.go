package user

import (
	"time"
)

type (
	User struct {
		ID           string
		Email        string
		Name         string
		PasswordHash string

		CreatedAt time.Time
	}
)
