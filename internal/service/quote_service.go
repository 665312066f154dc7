package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/metrics"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/pricing"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/storage/postgres"
)

type Quoter interface {
	Quote(ctx context.Context, req models.QuoteRequest) (*models.Quote, error)
}

type QuoteService struct {
	fees    postgres.FeeScheduleRepository
	engine  *pricing.Engine
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewQuoteService(
	fees postgres.FeeScheduleRepository,
	engine *pricing.Engine,
	m *metrics.Metrics,
	log *slog.Logger,
) *QuoteService {
	return &QuoteService{
		fees:    fees,
		engine:  engine,
		metrics: m,
		log:     log,
	}
}

// Quote resolves the active fee schedule for the corridor and channel and
// prices the principal through it. The schedule values are snapshotted in the
// returned quote; callers never re-read live rates.
func (s *QuoteService) Quote(ctx context.Context, req models.QuoteRequest) (*models.Quote, error) {
	const op = "service.Quote"

	if !req.Channel.IsValid() {
		return nil, custom_err.ErrInvalidChannel
	}
	if !req.Principal.IsPositive() {
		return nil, custom_err.ErrInvalidAmount
	}

	schedule, err := s.fees.GetActive(ctx, models.CorridorRDHT, req.Channel)
	if err != nil {
		if errors.Is(err, custom_err.ErrNoActiveSchedule) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: fee schedule lookup: %w", op, err)
	}

	quote, err := s.engine.Quote(schedule, req.Principal)
	if err != nil {
		if errors.Is(err, custom_err.ErrNotProfitable) {
			s.metrics.QuotesRejected.Inc()
			s.log.Warn("cotización rechazada por guardia de rentabilidad",
				slog.String("op", op),
				slog.String("channel", string(req.Channel)),
				slog.String("principal", req.Principal.String()))
		}
		return nil, err
	}

	s.metrics.QuotesIssued.Inc()
	return quote, nil
}
