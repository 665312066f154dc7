package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/storage"
)

type LedgerRepository interface {
	GetOrCreateAccountTx(ctx context.Context, tx pgx.Tx, code string, currency models.Currency, agentID *uuid.UUID) (*models.LedgerAccount, error)
	InsertEntryTx(ctx context.Context, tx pgx.Tx, entry *models.LedgerEntry) error
	GetEntriesByRemittance(ctx context.Context, remittanceID uuid.UUID) ([]*models.LedgerEntry, error)
}

type PgLedgerRepository struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) LedgerRepository {
	return &PgLedgerRepository{db: db}
}

// GetOrCreateAccountTx provisions a ledger account idempotently. The insert
// ignores conflicts on the unique code and the select afterwards reads
// whichever row won, so concurrent confirms cannot duplicate an account.
func (r *PgLedgerRepository) GetOrCreateAccountTx(ctx context.Context, tx pgx.Tx, code string, currency models.Currency, agentID *uuid.UUID) (*models.LedgerAccount, error) {
	const op = "storage.GetOrCreateAccount"

	if _, err := tx.Exec(ctx, storage.UpsertLedgerAccountQuery, uuid.New(), code, currency, agentID); err != nil {
		return nil, fmt.Errorf("%s: upsert: %w", op, err)
	}

	var acc models.LedgerAccount
	err := tx.QueryRow(ctx, storage.GetLedgerAccountByCodeQuery, code).Scan(
		&acc.ID,
		&acc.Code,
		&acc.Currency,
		&acc.AgentID,
		&acc.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &acc, nil
}

func (r *PgLedgerRepository) InsertEntryTx(ctx context.Context, tx pgx.Tx, entry *models.LedgerEntry) error {
	_, err := tx.Exec(ctx, storage.InsertLedgerEntryQuery,
		entry.ID,
		entry.TransactionID,
		entry.DebitAccountID,
		entry.CreditAccountID,
		entry.Amount,
		entry.Currency,
		entry.RemittanceID,
	)
	return err
}

func (r *PgLedgerRepository) GetEntriesByRemittance(ctx context.Context, remittanceID uuid.UUID) ([]*models.LedgerEntry, error) {
	const op = "storage.GetEntriesByRemittance"

	rows, err := r.db.Query(ctx, storage.GetLedgerEntriesByRemittanceQuery, remittanceID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		err := rows.Scan(
			&e.ID,
			&e.TransactionID,
			&e.DebitAccountID,
			&e.CreditAccountID,
			&e.Amount,
			&e.Currency,
			&e.RemittanceID,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan error: %w", op, err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
