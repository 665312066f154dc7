package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RiskLevel niveles agregados de riesgo; high domina medium domina low.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

var riskRank = map[RiskLevel]int{RiskLow: 0, RiskMedium: 1, RiskHigh: 2}

// Escalate returns the dominant of the two levels.
func (l RiskLevel) Escalate(other RiskLevel) RiskLevel {
	if riskRank[other] > riskRank[l] {
		return other
	}
	return l
}

type RiskSeverity = RiskLevel

// RiskFlag marca de riesgo sobre una entidad (remesa, remitente, IP)
type RiskFlag struct {
	ID             uuid.UUID         `json:"id" db:"id"`
	EntityType     string            `json:"entity_type" db:"entity_type"`
	EntityID       string            `json:"entity_id" db:"entity_id"`
	FlagType       string            `json:"flag_type" db:"flag_type"`
	Severity       RiskSeverity      `json:"severity" db:"severity"`
	Description    string            `json:"description" db:"description"`
	Resolved       bool              `json:"resolved" db:"resolved"`
	ResolvedBy     string            `json:"resolved_by,omitempty" db:"resolved_by"`
	ResolutionNote string            `json:"resolution_note,omitempty" db:"resolution_note"`
	ResolvedAt     *time.Time        `json:"resolved_at,omitempty" db:"resolved_at"`
	Metadata       map[string]string `json:"metadata,omitempty" db:"metadata"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
}

// FraudCheckRequest entrada del motor de riesgo
type FraudCheckRequest struct {
	SenderDoc        string          `json:"sender_doc"`
	BeneficiaryPhone string          `json:"beneficiary_phone"`
	Principal        decimal.Decimal `json:"principal"`
	OriginIP         string          `json:"origin_ip"`
}

// RiskAssessment resultado agregado de la evaluación
type RiskAssessment struct {
	IsSuspicious bool      `json:"is_suspicious"`
	RiskLevel    RiskLevel `json:"risk_level"`
	Flags        []string  `json:"flags"`
	ShouldBlock  bool      `json:"should_block"`
}

// ResolveFlagRequest resolución manual por cumplimiento
type ResolveFlagRequest struct {
	Note string `json:"note"`
}
