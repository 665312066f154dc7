package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/storage"
)

type RemittanceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Remittance, error)
	GetByReference(ctx context.Context, reference string) (*models.Remittance, error)
	GetEvents(ctx context.Context, remittanceID uuid.UUID) ([]*models.RemittanceEvent, error)

	CreateTx(ctx context.Context, tx pgx.Tx, rem *models.Remittance) error
	GetForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Remittance, error)
	ConfirmTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, receiptHash string, confirmedAt time.Time) error
	UpdateStateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, state models.RemittanceState, payoutRef string) error
	AppendEventTx(ctx context.Context, tx pgx.Tx, event *models.RemittanceEvent) error

	CountSenderTxSince(ctx context.Context, senderDoc string, since time.Time) (int, error)
	SumSenderAmountSince(ctx context.Context, senderDoc string, since time.Time) (decimal.Decimal, error)
	LastSenderTxAt(ctx context.Context, senderDoc string) (*time.Time, error)
	CountPairTxSince(ctx context.Context, senderDoc, beneficiaryPhone string, since time.Time) (int, error)
	CountIPTxSince(ctx context.Context, originIP string, since time.Time) (int, error)
}

type PgRemittanceRepository struct {
	db *pgxpool.Pool
}

func NewRemittanceRepository(db *pgxpool.Pool) RemittanceRepository {
	return &PgRemittanceRepository{db: db}
}

// rowScanner covers pgx.Row for both pool and tx queries.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRemittance(row rowScanner) (*models.Remittance, error) {
	var rem models.Remittance
	err := row.Scan(
		&rem.ID,
		&rem.Reference,
		&rem.AgentID,
		&rem.SenderName,
		&rem.SenderDoc,
		&rem.SenderPhone,
		&rem.BeneficiaryName,
		&rem.BeneficiaryPhone,
		&rem.Channel,
		&rem.OriginIP,
		&rem.Quote.ScheduleID,
		&rem.Quote.PrincipalDOP,
		&rem.Quote.FxMid,
		&rem.Quote.FxClientSell,
		&rem.Quote.ClientFeeFixedDOP,
		&rem.Quote.ClientFeePercentDOP,
		&rem.Quote.TotalClientFeesDOP,
		&rem.Quote.TotalClientPaysDOP,
		&rem.Quote.GovFeeDOP,
		&rem.Quote.AmountBeforePartnerFeeHTG,
		&rem.Quote.PartnerFeeHTG,
		&rem.Quote.BeneficiaryReceivesHTG,
		&rem.Quote.PartnerCostDOP,
		&rem.Quote.StoreCommissionDOP,
		&rem.Quote.AcquiringCostDOP,
		&rem.Quote.FxSpreadRevenueDOP,
		&rem.Quote.PlatformRevenueDOP,
		&rem.Quote.TotalCostsDOP,
		&rem.Quote.PlatformMarginDOP,
		&rem.State,
		&rem.ReceiptHash,
		&rem.PayoutRef,
		&rem.CreatedAt,
		&rem.ConfirmedAt,
		&rem.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rem.Quote.Channel = rem.Channel
	return &rem, nil
}

func (r *PgRemittanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Remittance, error) {
	const op = "storage.GetRemittanceByID"

	rem, err := scanRemittance(r.db.QueryRow(ctx, storage.GetRemittanceByIDQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_err.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rem, nil
}

func (r *PgRemittanceRepository) GetByReference(ctx context.Context, reference string) (*models.Remittance, error) {
	const op = "storage.GetRemittanceByReference"

	rem, err := scanRemittance(r.db.QueryRow(ctx, storage.GetRemittanceByReferenceQuery, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_err.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rem, nil
}

func (r *PgRemittanceRepository) GetEvents(ctx context.Context, remittanceID uuid.UUID) ([]*models.RemittanceEvent, error) {
	const op = "storage.GetRemittanceEvents"

	rows, err := r.db.Query(ctx, storage.GetRemittanceEventsQuery, remittanceID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var events []*models.RemittanceEvent
	for rows.Next() {
		var ev models.RemittanceEvent
		if err := rows.Scan(&ev.ID, &ev.RemittanceID, &ev.Event, &ev.Actor, &ev.Metadata, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan error: %w", op, err)
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}

func (r *PgRemittanceRepository) CountSenderTxSince(ctx context.Context, senderDoc string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, storage.CountSenderTxSinceQuery, senderDoc, since).Scan(&count)
	return count, err
}

func (r *PgRemittanceRepository) SumSenderAmountSince(ctx context.Context, senderDoc string, since time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRow(ctx, storage.SumSenderAmountSinceQuery, senderDoc, since).Scan(&sum)
	return sum, err
}

func (r *PgRemittanceRepository) LastSenderTxAt(ctx context.Context, senderDoc string) (*time.Time, error) {
	var last *time.Time
	err := r.db.QueryRow(ctx, storage.LastSenderTxAtQuery, senderDoc).Scan(&last)
	return last, err
}

func (r *PgRemittanceRepository) CountPairTxSince(ctx context.Context, senderDoc, beneficiaryPhone string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, storage.CountPairTxSinceQuery, senderDoc, beneficiaryPhone, since).Scan(&count)
	return count, err
}

func (r *PgRemittanceRepository) CountIPTxSince(ctx context.Context, originIP string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, storage.CountIPTxSinceQuery, originIP, since).Scan(&count)
	return count, err
}
