package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RemittanceState estados del ciclo de vida de una remesa
type RemittanceState string

const (
	StateCreated   RemittanceState = "CREATED"
	StateQuoted    RemittanceState = "QUOTED"
	StateConfirmed RemittanceState = "CONFIRMED"
	StateSent      RemittanceState = "SENT"
	StatePaid      RemittanceState = "PAID"
	StateSettled   RemittanceState = "SETTLED"
	StateFailed    RemittanceState = "FAILED"
	StateRefunded  RemittanceState = "REFUNDED"
)

// stateTransitions is the only legal forward path plus FAILED/REFUNDED exits
// from every non-terminal state. Terminal states have no outgoing edges.
var stateTransitions = map[RemittanceState][]RemittanceState{
	StateCreated:   {StateQuoted, StateFailed, StateRefunded},
	StateQuoted:    {StateConfirmed, StateFailed, StateRefunded},
	StateConfirmed: {StateSent, StateFailed, StateRefunded},
	StateSent:      {StatePaid, StateFailed, StateRefunded},
	StatePaid:      {StateSettled, StateFailed, StateRefunded},
	StateSettled:   {},
	StateFailed:    {},
	StateRefunded:  {},
}

func (s RemittanceState) IsValid() bool {
	_, ok := stateTransitions[s]
	return ok
}

func (s RemittanceState) IsTerminal() bool {
	next, ok := stateTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s RemittanceState) CanTransitionTo(next RemittanceState) bool {
	for _, allowed := range stateTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Remittance is the lifecycle record of one money transfer. The quote fields
// are a snapshot taken at creation time; they are never re-read from the fee
// catalog afterwards.
type Remittance struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Reference string    `json:"reference" db:"reference"`
	AgentID   uuid.UUID `json:"agent_id" db:"agent_id"`

	SenderName       string `json:"sender_name" db:"sender_name"`
	SenderDoc        string `json:"sender_doc" db:"sender_doc"`
	SenderPhone      string `json:"sender_phone" db:"sender_phone"`
	BeneficiaryName  string `json:"beneficiary_name" db:"beneficiary_name"`
	BeneficiaryPhone string `json:"beneficiary_phone" db:"beneficiary_phone"`

	Channel  Channel `json:"channel" db:"channel"`
	OriginIP string  `json:"-" db:"origin_ip"`

	Quote Quote `json:"quote"`

	State       RemittanceState `json:"state" db:"state"`
	ReceiptHash string          `json:"receipt_hash,omitempty" db:"receipt_hash"`
	PayoutRef   string          `json:"payout_ref,omitempty" db:"payout_ref"`

	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty" db:"confirmed_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// RemittanceView is the boundary projection of a remittance. The quote
// snapshot is shaped by the caller's role the same way the quote endpoint
// shapes it: agents get the client-facing fields, administrators the full
// cost and margin breakdown.
type RemittanceView struct {
	ID        uuid.UUID `json:"id"`
	Reference string    `json:"reference"`
	AgentID   uuid.UUID `json:"agent_id"`

	SenderName       string `json:"sender_name"`
	SenderDoc        string `json:"sender_doc"`
	SenderPhone      string `json:"sender_phone"`
	BeneficiaryName  string `json:"beneficiary_name"`
	BeneficiaryPhone string `json:"beneficiary_phone"`

	Channel Channel `json:"channel"`

	Quote any `json:"quote"`

	State       RemittanceState `json:"state"`
	ReceiptHash string          `json:"receipt_hash,omitempty"`
	PayoutRef   string          `json:"payout_ref,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// View projects the remittance for the wire, hiding the cost side of the
// quote snapshot from non-privileged callers.
func (r *Remittance) View(admin bool) *RemittanceView {
	v := &RemittanceView{
		ID:               r.ID,
		Reference:        r.Reference,
		AgentID:          r.AgentID,
		SenderName:       r.SenderName,
		SenderDoc:        r.SenderDoc,
		SenderPhone:      r.SenderPhone,
		BeneficiaryName:  r.BeneficiaryName,
		BeneficiaryPhone: r.BeneficiaryPhone,
		Channel:          r.Channel,
		Quote:            r.Quote.PublicView(),
		State:            r.State,
		ReceiptHash:      r.ReceiptHash,
		PayoutRef:        r.PayoutRef,
		CreatedAt:        r.CreatedAt,
		ConfirmedAt:      r.ConfirmedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if admin {
		v.Quote = r.Quote.AdminView()
	}
	return v
}

// RemittanceEvent registro inmutable de cada transición
type RemittanceEvent struct {
	ID           uuid.UUID         `json:"id" db:"id"`
	RemittanceID uuid.UUID         `json:"remittance_id" db:"remittance_id"`
	Event        RemittanceState   `json:"event" db:"event"`
	Actor        string            `json:"actor" db:"actor"`
	Metadata     map[string]string `json:"metadata,omitempty" db:"metadata"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
}

// CreateRemittanceRequest solicitud de creación de remesa
type CreateRemittanceRequest struct {
	SenderName       string          `json:"sender_name"`
	SenderDoc        string          `json:"sender_doc"`
	SenderPhone      string          `json:"sender_phone"`
	BeneficiaryName  string          `json:"beneficiary_name"`
	BeneficiaryPhone string          `json:"beneficiary_phone"`
	Principal        decimal.Decimal `json:"principal"`
	Channel          Channel         `json:"channel"`
}

// Validate checks the party fields the state machine requires before quoting.
func (r *CreateRemittanceRequest) Validate() []string {
	var missing []string
	if r.SenderName == "" {
		missing = append(missing, "sender_name")
	}
	if r.SenderDoc == "" {
		missing = append(missing, "sender_doc")
	}
	if r.BeneficiaryName == "" {
		missing = append(missing, "beneficiary_name")
	}
	if r.BeneficiaryPhone == "" {
		missing = append(missing, "beneficiary_phone")
	}
	if !r.Channel.IsValid() {
		missing = append(missing, "channel")
	}
	if !r.Principal.IsPositive() {
		missing = append(missing, "principal")
	}
	return missing
}

// AdvanceStateRequest callback de la red de pagos en destino
type AdvanceStateRequest struct {
	State     RemittanceState   `json:"state"`
	PayoutRef string            `json:"payout_ref,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// ConfirmResponse respuesta de confirmación
type ConfirmResponse struct {
	ID          uuid.UUID       `json:"id"`
	Reference   string          `json:"reference"`
	State       RemittanceState `json:"state"`
	ReceiptHash string          `json:"receipt_hash"`
	ConfirmedAt time.Time       `json:"confirmed_at"`
}
