package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/storage"
)

type FeeScheduleRepository interface {
	GetActive(ctx context.Context, corridor string, channel models.Channel) (*models.FeeSchedule, error)
}

type PgFeeScheduleRepository struct {
	db *pgxpool.Pool
}

func NewFeeScheduleRepository(db *pgxpool.Pool) FeeScheduleRepository {
	return &PgFeeScheduleRepository{db: db}
}

func (r *PgFeeScheduleRepository) GetActive(ctx context.Context, corridor string, channel models.Channel) (*models.FeeSchedule, error) {
	const op = "storage.GetActiveFeeSchedule"

	var s models.FeeSchedule
	err := r.db.QueryRow(ctx, storage.GetActiveFeeScheduleQuery, corridor, channel).Scan(
		&s.ID,
		&s.Corridor,
		&s.Channel,
		&s.FixedFeeDOP,
		&s.PercentFeeClient,
		&s.FxSpreadBps,
		&s.FxMid,
		&s.GovFeeUSD,
		&s.FxUSDToDOP,
		&s.PartnerFlatHTG,
		&s.PartnerPercent,
		&s.PartnerMinHTG,
		&s.StoreCommissionPct,
		&s.PlatformCommissionPct,
		&s.AcquiringCostDOP,
		&s.Active,
		&s.EffectiveAt,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_err.ErrNoActiveSchedule
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
