package auth

import (
	"strings"

	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role names the permission tier of an authenticated user
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleCashier Role = "Cashier"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier:
		return true
	}
	return false
}

// Session identifies the actor behind a request. Every write operation
// takes one explicitly; services never reach for ambient auth state.
type Session struct {
	UserID uuid.UUID
	Name   string
	Role   Role
}

// NewSession creates a session for an authenticated user
func NewSession(userID uuid.UUID, name string, role Role) (Session, error) {
	if strings.TrimSpace(name) == "" {
		return Session{}, shared.NewDomainError(shared.CodeValidation, "Session name cannot be empty")
	}
	if !role.IsValid() {
		return Session{}, shared.NewDomainErrorf(shared.CodeValidation, "Invalid role: %s", role)
	}
	return Session{UserID: userID, Name: name, Role: role}, nil
}

// CanManageStock reports whether the session may write to the movement
// ledger beyond recording sales.
func (s Session) CanManageStock() bool {
	return s.Role == RoleAdmin || s.Role == RoleManager
}
