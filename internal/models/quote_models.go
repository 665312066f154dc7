package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote is the full internal result of pricing one remittance. It is computed
// once and projected into role-specific views at the boundary; calculation
// never branches on the caller's role.
type Quote struct {
	ScheduleID   uuid.UUID       `json:"schedule_id"`
	Channel      Channel         `json:"channel"`
	PrincipalDOP decimal.Decimal `json:"principal_dop"`

	FxMid        decimal.Decimal `json:"fx_mid"`
	FxClientSell decimal.Decimal `json:"fx_client_sell"`

	ClientFeeFixedDOP   decimal.Decimal `json:"client_fee_fixed_dop"`
	ClientFeePercentDOP decimal.Decimal `json:"client_fee_percent_dop"`
	TotalClientFeesDOP  decimal.Decimal `json:"total_client_fees_dop"`
	TotalClientPaysDOP  decimal.Decimal `json:"total_client_pays_dop"`

	GovFeeDOP decimal.Decimal `json:"gov_fee_dop"`

	AmountBeforePartnerFeeHTG decimal.Decimal `json:"amount_before_partner_fee_htg"`
	PartnerFeeHTG             decimal.Decimal `json:"partner_fee_htg"`
	BeneficiaryReceivesHTG    decimal.Decimal `json:"beneficiary_receives_htg"`

	// Cost and margin side, never exposed to non-privileged callers.
	PartnerCostDOP     decimal.Decimal `json:"partner_cost_dop"`
	StoreCommissionDOP decimal.Decimal `json:"store_commission_dop"`
	AcquiringCostDOP   decimal.Decimal `json:"acquiring_cost_dop"`
	FxSpreadRevenueDOP decimal.Decimal `json:"fx_spread_revenue_dop"`
	PlatformRevenueDOP decimal.Decimal `json:"platform_revenue_dop"`
	TotalCostsDOP      decimal.Decimal `json:"total_costs_dop"`
	PlatformMarginDOP  decimal.Decimal `json:"platform_margin_dop"`
}

// PublicQuoteView campos visibles para agentes y clientes
type PublicQuoteView struct {
	Channel                Channel         `json:"channel"`
	PrincipalDOP           decimal.Decimal `json:"principal_dop"`
	FxClientSell           decimal.Decimal `json:"fx_client_sell"`
	ClientFeeFixedDOP      decimal.Decimal `json:"client_fee_fixed_dop"`
	ClientFeePercentDOP    decimal.Decimal `json:"client_fee_percent_dop"`
	TotalClientFeesDOP     decimal.Decimal `json:"total_client_fees_dop"`
	TotalClientPaysDOP     decimal.Decimal `json:"total_client_pays_dop"`
	GovFeeDOP              decimal.Decimal `json:"gov_fee_dop"`
	BeneficiaryReceivesHTG decimal.Decimal `json:"beneficiary_receives_htg"`
	StoreCommissionDOP     decimal.Decimal `json:"store_commission_dop"`
}

// AdminQuoteView vista completa con costos y margen
type AdminQuoteView struct {
	PublicQuoteView
	FxMid                     decimal.Decimal `json:"fx_mid"`
	AmountBeforePartnerFeeHTG decimal.Decimal `json:"amount_before_partner_fee_htg"`
	PartnerFeeHTG             decimal.Decimal `json:"partner_fee_htg"`
	PartnerCostDOP            decimal.Decimal `json:"partner_cost_dop"`
	AcquiringCostDOP          decimal.Decimal `json:"acquiring_cost_dop"`
	FxSpreadRevenueDOP        decimal.Decimal `json:"fx_spread_revenue_dop"`
	PlatformRevenueDOP        decimal.Decimal `json:"platform_revenue_dop"`
	TotalCostsDOP             decimal.Decimal `json:"total_costs_dop"`
	PlatformMarginDOP         decimal.Decimal `json:"platform_margin_dop"`
}

// PublicView projects the client-facing fields of the quote.
func (q *Quote) PublicView() *PublicQuoteView {
	return &PublicQuoteView{
		Channel:                q.Channel,
		PrincipalDOP:           q.PrincipalDOP,
		FxClientSell:           q.FxClientSell,
		ClientFeeFixedDOP:      q.ClientFeeFixedDOP,
		ClientFeePercentDOP:    q.ClientFeePercentDOP,
		TotalClientFeesDOP:     q.TotalClientFeesDOP,
		TotalClientPaysDOP:     q.TotalClientPaysDOP,
		GovFeeDOP:              q.GovFeeDOP,
		BeneficiaryReceivesHTG: q.BeneficiaryReceivesHTG,
		StoreCommissionDOP:     q.StoreCommissionDOP,
	}
}

// AdminView projects the full breakdown including costs and margin.
func (q *Quote) AdminView() *AdminQuoteView {
	return &AdminQuoteView{
		PublicQuoteView:           *q.PublicView(),
		FxMid:                     q.FxMid,
		AmountBeforePartnerFeeHTG: q.AmountBeforePartnerFeeHTG,
		PartnerFeeHTG:             q.PartnerFeeHTG,
		PartnerCostDOP:            q.PartnerCostDOP,
		AcquiringCostDOP:          q.AcquiringCostDOP,
		FxSpreadRevenueDOP:        q.FxSpreadRevenueDOP,
		PlatformRevenueDOP:        q.PlatformRevenueDOP,
		TotalCostsDOP:             q.TotalCostsDOP,
		PlatformMarginDOP:         q.PlatformMarginDOP,
	}
}

// QuoteRequest solicitud de cotización
type QuoteRequest struct {
	Principal decimal.Decimal `json:"principal"`
	Channel   Channel         `json:"channel"`
}
