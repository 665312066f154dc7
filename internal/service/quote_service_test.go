package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/pricing"
)

func activeSchedule() *models.FeeSchedule {
	return &models.FeeSchedule{
		ID:                 uuid.New(),
		Corridor:           models.CorridorRDHT,
		Channel:            models.ChannelMonCash,
		FixedFeeDOP:        decimal.RequireFromString("50"),
		PercentFeeClient:   decimal.RequireFromString("0.02"),
		FxSpreadBps:        100,
		FxMid:              decimal.RequireFromString("2.5"),
		GovFeeUSD:          decimal.RequireFromString("1.50"),
		FxUSDToDOP:         decimal.RequireFromString("58"),
		PartnerFlatHTG:     decimal.RequireFromString("10"),
		PartnerPercent:     decimal.RequireFromString("0.01"),
		PartnerMinHTG:      decimal.RequireFromString("15"),
		StoreCommissionPct: decimal.RequireFromString("0.20"),
		AcquiringCostDOP:   decimal.RequireFromString("25"),
		Active:             true,
	}
}

func TestQuoteService_Success(t *testing.T) {
	fees := new(MockFeeScheduleRepository)
	fees.On("GetActive", mock.Anything, models.CorridorRDHT, models.ChannelMonCash).
		Return(activeSchedule(), nil)

	svc := NewQuoteService(fees, pricing.NewEngine(), testMetrics, discardLogger())

	quote, err := svc.Quote(context.Background(), models.QuoteRequest{
		Principal: decimal.NewFromInt(5000),
		Channel:   models.ChannelMonCash,
	})

	require.NoError(t, err)
	assert.True(t, quote.TotalClientPaysDOP.Equal(decimal.RequireFromString("5150")))
	assert.True(t, quote.BeneficiaryReceivesHTG.Equal(decimal.RequireFromString("12241.25")))
	fees.AssertExpectations(t)
}

func TestQuoteService_InvalidChannel(t *testing.T) {
	fees := new(MockFeeScheduleRepository)
	svc := NewQuoteService(fees, pricing.NewEngine(), testMetrics, discardLogger())

	_, err := svc.Quote(context.Background(), models.QuoteRequest{
		Principal: decimal.NewFromInt(5000),
		Channel:   models.Channel("ZELLE"),
	})

	assert.ErrorIs(t, err, custom_err.ErrInvalidChannel)
	fees.AssertNotCalled(t, "GetActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuoteService_NonPositivePrincipal(t *testing.T) {
	fees := new(MockFeeScheduleRepository)
	svc := NewQuoteService(fees, pricing.NewEngine(), testMetrics, discardLogger())

	_, err := svc.Quote(context.Background(), models.QuoteRequest{
		Principal: decimal.Zero,
		Channel:   models.ChannelSPIH,
	})

	assert.ErrorIs(t, err, custom_err.ErrInvalidAmount)
}

func TestQuoteService_NoActiveSchedule(t *testing.T) {
	fees := new(MockFeeScheduleRepository)
	fees.On("GetActive", mock.Anything, models.CorridorRDHT, models.ChannelSPIH).
		Return(nil, custom_err.ErrNoActiveSchedule)

	svc := NewQuoteService(fees, pricing.NewEngine(), testMetrics, discardLogger())

	_, err := svc.Quote(context.Background(), models.QuoteRequest{
		Principal: decimal.NewFromInt(5000),
		Channel:   models.ChannelSPIH,
	})

	assert.ErrorIs(t, err, custom_err.ErrNoActiveSchedule)
}

func TestQuoteService_NotProfitableSurfacesDeficit(t *testing.T) {
	schedule := activeSchedule()
	schedule.AcquiringCostDOP = decimal.RequireFromString("300")

	fees := new(MockFeeScheduleRepository)
	fees.On("GetActive", mock.Anything, models.CorridorRDHT, models.ChannelMonCash).
		Return(schedule, nil)

	svc := NewQuoteService(fees, pricing.NewEngine(), testMetrics, discardLogger())

	_, err := svc.Quote(context.Background(), models.QuoteRequest{
		Principal: decimal.NewFromInt(5000),
		Channel:   models.ChannelMonCash,
	})

	require.ErrorIs(t, err, custom_err.ErrNotProfitable)

	var npe *pricing.NotProfitableError
	require.ErrorAs(t, err, &npe)
	assert.True(t, npe.Deficit.IsPositive())
}
