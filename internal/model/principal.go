package model

import "github.com/google/uuid"

type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleOperator UserRole = "OPERADOR"
	UserRoleDriver   UserRole = "REPARTIDOR"
)

type Principal struct {
	UserID   uuid.UUID
	Role     UserRole
	DriverID *uuid.UUID
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}

func (p Principal) IsOperator() bool {
	return p.Role == UserRoleOperator
}

func (p Principal) IsDriver() bool {
	return p.Role == UserRoleDriver
}

// CanManage reports whether the principal may write master data and plan runs.
func (p Principal) CanManage() bool {
	return p.IsAdmin() || p.IsOperator()
}
