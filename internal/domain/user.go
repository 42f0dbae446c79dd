package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             int64
	Email          string
	FullName       *string
	HashedPassword string
	Role           string
	IsActive       bool
	CreatedAt      time.Time
}
