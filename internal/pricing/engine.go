package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
)

// moneyScale escala de unidad mínima para DOP y HTG
const moneyScale = 2

var (
	tenThousand = decimal.NewFromInt(10000)
	one         = decimal.NewFromInt(1)
)

// NotProfitableError rejects a quote whose costs reach or exceed its revenue.
// The deficit is only surfaced to privileged callers.
type NotProfitableError struct {
	Deficit decimal.Decimal
}

func (e *NotProfitableError) Error() string {
	return fmt.Sprintf("quote not profitable, deficit %s DOP", e.Deficit.StringFixed(moneyScale))
}

func (e *NotProfitableError) Unwrap() error {
	return custom_err.ErrNotProfitable
}

// Engine prices remittances from a fee schedule snapshot. It is a pure
// calculator: no I/O, no clock, no live rate reads.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// money rounds an intermediate amount to the currency's minor unit, half up.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyScale)
}

// Quote itemizes one principal through the given schedule. Intermediate math
// runs at full decimal precision; every monetary field of the result is
// rounded to 2 decimals before the profitability guard runs, so the guard and
// the persisted snapshot always agree.
func (e *Engine) Quote(schedule *models.FeeSchedule, principal decimal.Decimal) (*models.Quote, error) {
	if !principal.IsPositive() {
		return nil, custom_err.ErrInvalidAmount
	}

	// fx_client_sell = fx_mid * (1 - spread_bps/10000)
	spread := decimal.NewFromInt(schedule.FxSpreadBps).Div(tenThousand)
	fxClientSell := schedule.FxMid.Mul(one.Sub(spread))

	clientFeeFixed := money(schedule.FixedFeeDOP)
	clientFeePercent := money(principal.Mul(schedule.PercentFeeClient))
	totalClientFees := clientFeeFixed.Add(clientFeePercent)
	totalClientPays := principal.Add(totalClientFees)

	govFee := money(schedule.GovFeeUSD.Mul(schedule.FxUSDToDOP))

	amountBeforePartnerFee := money(principal.Mul(fxClientSell))

	// partner_fee = max(flat + amount * pct, minimum)
	partnerFee := money(schedule.PartnerFlatHTG.Add(amountBeforePartnerFee.Mul(schedule.PartnerPercent)))
	if partnerFee.LessThan(schedule.PartnerMinHTG) {
		partnerFee = money(schedule.PartnerMinHTG)
	}

	beneficiaryReceives := amountBeforePartnerFee.Sub(partnerFee)

	partnerCost := money(partnerFee.Div(schedule.FxMid))
	storeCommission := money(totalClientFees.Mul(schedule.StoreCommissionPct))
	fxSpreadRevenue := money(principal.Mul(schedule.FxMid.Sub(fxClientSell)))

	platformRevenue := totalClientFees.Add(fxSpreadRevenue)
	totalCosts := partnerCost.Add(govFee).Add(schedule.AcquiringCostDOP).Add(storeCommission)
	platformMargin := platformRevenue.Sub(totalCosts)

	// The platform never quotes at a loss or at break-even.
	if totalCosts.GreaterThanOrEqual(platformRevenue) {
		return nil, &NotProfitableError{Deficit: totalCosts.Sub(platformRevenue)}
	}

	return &models.Quote{
		ScheduleID:   schedule.ID,
		Channel:      schedule.Channel,
		PrincipalDOP: money(principal),

		FxMid:        schedule.FxMid,
		FxClientSell: fxClientSell,

		ClientFeeFixedDOP:   clientFeeFixed,
		ClientFeePercentDOP: clientFeePercent,
		TotalClientFeesDOP:  totalClientFees,
		TotalClientPaysDOP:  totalClientPays,

		GovFeeDOP: govFee,

		AmountBeforePartnerFeeHTG: amountBeforePartnerFee,
		PartnerFeeHTG:             partnerFee,
		BeneficiaryReceivesHTG:    beneficiaryReceives,

		PartnerCostDOP:     partnerCost,
		StoreCommissionDOP: storeCommission,
		AcquiringCostDOP:   money(schedule.AcquiringCostDOP),
		FxSpreadRevenueDOP: fxSpreadRevenue,
		PlatformRevenueDOP: platformRevenue,
		TotalCostsDOP:      totalCosts,
		PlatformMarginDOP:  platformMargin,
	}, nil
}
