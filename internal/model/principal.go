package model

import "github.com/google/uuid"

const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

type Principal struct {
	UserID uuid.UUID
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
