package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// evento de actividad sospechosa detectada por el motor de riesgo
type SuspiciousActivityEvent struct {
	Reference   string          `json:"reference,omitempty"` // referencia de remesa si existe
	SenderDoc   string          `json:"sender_doc"`          // documento del remitente
	OriginIP    string          `json:"origin_ip"`           // IP de origen
	Principal   decimal.Decimal `json:"principal"`           // monto DOP
	RiskLevel   RiskLevel       `json:"risk_level"`          // nivel agregado
	Flags       []string        `json:"flags"`               // banderas legibles
	Blocked     bool            `json:"blocked"`             // si se bloqueó la creación
	EvaluatedAt time.Time       `json:"evaluated_at"`        // momento de la evaluación
}

// evento de remesa grande (>= umbral configurado)
type LargeRemittanceEvent struct {
	Reference    string          `json:"reference"`
	AgentID      string          `json:"agent_id"`
	Channel      Channel         `json:"channel"`
	PrincipalDOP decimal.Decimal `json:"principal_dop"`
	Timestamp    time.Time       `json:"timestamp"`
}
