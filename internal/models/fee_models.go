package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Currency códigos de moneda del corredor RD→HT
type Currency string

const (
	CurrencyDOP Currency = "DOP"
	CurrencyHTG Currency = "HTG"
	CurrencyUSD Currency = "USD"
)

// Channel método de pago en destino
type Channel string

const (
	ChannelMonCash Channel = "MONCASH"
	ChannelSPIH    Channel = "SPIH"
)

func (c Channel) IsValid() bool {
	return c == ChannelMonCash || c == ChannelSPIH
}

func SupportedChannels() []Channel {
	return []Channel{ChannelMonCash, ChannelSPIH}
}

// CorridorRDHT is the only corridor the platform operates today.
const CorridorRDHT = "RD-HT"

// FeeSchedule holds the versioned pricing parameters for one (corridor, channel).
// Exactly one row is active per key at any instant; rows are never updated once a
// remittance has snapshotted them.
type FeeSchedule struct {
	ID                    uuid.UUID       `json:"id" db:"id"`
	Corridor              string          `json:"corridor" db:"corridor"`
	Channel               Channel         `json:"channel" db:"channel"`
	FixedFeeDOP           decimal.Decimal `json:"fixed_fee_dop" db:"fixed_fee_dop"`
	PercentFeeClient      decimal.Decimal `json:"percent_fee_client" db:"percent_fee_client"`
	FxSpreadBps           int64           `json:"fx_spread_bps" db:"fx_spread_bps"`
	FxMid                 decimal.Decimal `json:"fx_mid" db:"fx_mid"`
	GovFeeUSD             decimal.Decimal `json:"gov_fee_usd" db:"gov_fee_usd"`
	FxUSDToDOP            decimal.Decimal `json:"fx_usd_to_dop" db:"fx_usd_to_dop"`
	PartnerFlatHTG        decimal.Decimal `json:"partner_flat_htg" db:"partner_flat_htg"`
	PartnerPercent        decimal.Decimal `json:"partner_percent" db:"partner_percent"`
	PartnerMinHTG         decimal.Decimal `json:"partner_min_htg" db:"partner_min_htg"`
	StoreCommissionPct    decimal.Decimal `json:"store_commission_pct" db:"store_commission_pct"`
	PlatformCommissionPct decimal.Decimal `json:"platform_commission_pct" db:"platform_commission_pct"`
	AcquiringCostDOP      decimal.Decimal `json:"acquiring_cost_dop" db:"acquiring_cost_dop"`
	Active                bool            `json:"active" db:"active"`
	EffectiveAt           time.Time       `json:"effective_at" db:"effective_at"`
	CreatedAt             time.Time       `json:"created_at" db:"created_at"`
}
