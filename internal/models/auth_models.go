package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role rol del portador del token emitido por el servicio de autenticación
type Role string

const (
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// Actor is the authenticated principal extracted from a bearer token. Tokens
// are minted by the external auth service; this service only verifies them.
type Actor struct {
	UserID  uuid.UUID
	AgentID uuid.UUID
	Role    Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// JWTClaims claims esperados en el token compartido
type JWTClaims struct {
	UserID  uuid.UUID `json:"user_id"`
	AgentID uuid.UUID `json:"agent_id"`
	Role    Role      `json:"role"`
	jwt.RegisteredClaims
}
