package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Códigos de cuenta del libro mayor. Las cuentas de agente llevan el sufijo
// del id de agente: AGENT_CASH_<id>.
const (
	AccountPendingPayouts    = "PENDING_PAYOUTS"
	AccountCommissionRevenue = "COMMISSION_REVENUE"
	AccountAgentCashPrefix   = "AGENT_CASH_"
)

// AgentCashAccountCode returns the deterministic ledger account code for an
// agent's cash account.
func AgentCashAccountCode(agentID uuid.UUID) string {
	return AccountAgentCashPrefix + agentID.String()
}

type LedgerAccount struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Code      string     `json:"code" db:"code"`
	Currency  Currency   `json:"currency" db:"currency"`
	AgentID   *uuid.UUID `json:"agent_id,omitempty" db:"agent_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// LedgerEntry is one debit/credit pair. Every row is balanced by construction
// (one debit account, one credit account, one amount, one currency); rows of
// one financial event share a transaction id.
type LedgerEntry struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	TransactionID   uuid.UUID       `json:"transaction_id" db:"transaction_id"`
	DebitAccountID  uuid.UUID       `json:"debit_account_id" db:"debit_account_id"`
	CreditAccountID uuid.UUID       `json:"credit_account_id" db:"credit_account_id"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	Currency        Currency        `json:"currency" db:"currency"`
	RemittanceID    uuid.UUID       `json:"remittance_id" db:"remittance_id"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}
