package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Agent is a retail point of sale with a pre-funded float in DOP. The float
// covers confirmed remittances until settlement and must never go negative.
type Agent struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	FloatBalanceDOP decimal.Decimal `json:"float_balance_dop" db:"float_balance_dop"`
	Active          bool            `json:"active" db:"active"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// AgentFloatResponse saldo de caja del agente
type AgentFloatResponse struct {
	AgentID         uuid.UUID       `json:"agent_id"`
	FloatBalanceDOP decimal.Decimal `json:"float_balance_dop"`
	Currency        Currency        `json:"currency"`
}
