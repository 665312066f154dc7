package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/storage"
)

func (r *PgRemittanceRepository) CreateTx(ctx context.Context, tx pgx.Tx, rem *models.Remittance) error {
	_, err := tx.Exec(ctx, storage.CreateRemittanceQuery,
		rem.ID,
		rem.Reference,
		rem.AgentID,
		rem.SenderName,
		rem.SenderDoc,
		rem.SenderPhone,
		rem.BeneficiaryName,
		rem.BeneficiaryPhone,
		rem.Channel,
		rem.OriginIP,
		rem.Quote.ScheduleID,
		rem.Quote.PrincipalDOP,
		rem.Quote.FxMid,
		rem.Quote.FxClientSell,
		rem.Quote.ClientFeeFixedDOP,
		rem.Quote.ClientFeePercentDOP,
		rem.Quote.TotalClientFeesDOP,
		rem.Quote.TotalClientPaysDOP,
		rem.Quote.GovFeeDOP,
		rem.Quote.AmountBeforePartnerFeeHTG,
		rem.Quote.PartnerFeeHTG,
		rem.Quote.BeneficiaryReceivesHTG,
		rem.Quote.PartnerCostDOP,
		rem.Quote.StoreCommissionDOP,
		rem.Quote.AcquiringCostDOP,
		rem.Quote.FxSpreadRevenueDOP,
		rem.Quote.PlatformRevenueDOP,
		rem.Quote.TotalCostsDOP,
		rem.Quote.PlatformMarginDOP,
		rem.State,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return custom_err.ErrDuplicateRequest
		}
		return err
	}
	return nil
}

func (r *PgRemittanceRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Remittance, error) {
	rem, err := scanRemittance(tx.QueryRow(ctx, storage.GetRemittanceForUpdateQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_err.ErrNotFound
		}
		return nil, err
	}
	return rem, nil
}

func (r *PgRemittanceRepository) ConfirmTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, receiptHash string, confirmedAt time.Time) error {
	res, err := tx.Exec(ctx, storage.ConfirmRemittanceQuery, id, receiptHash, confirmedAt)
	if err != nil {
		return err
	}
	// El predicado state='QUOTED' hace idempotente la confirmación.
	if res.RowsAffected() == 0 {
		return custom_err.ErrInvalidState
	}
	return nil
}

func (r *PgRemittanceRepository) UpdateStateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, state models.RemittanceState, payoutRef string) error {
	res, err := tx.Exec(ctx, storage.UpdateRemittanceStateQuery, id, state, payoutRef)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return custom_err.ErrNotFound
	}
	return nil
}

func (r *PgRemittanceRepository) AppendEventTx(ctx context.Context, tx pgx.Tx, event *models.RemittanceEvent) error {
	_, err := tx.Exec(ctx, storage.AppendRemittanceEventQuery,
		event.ID,
		event.RemittanceID,
		event.Event,
		event.Actor,
		event.Metadata,
	)
	return err
}
