package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/storage"
)

type AgentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error)
	GetFloatForUpdateTx(ctx context.Context, tx pgx.Tx, agentID uuid.UUID) (decimal.Decimal, error)
	DebitFloatTx(ctx context.Context, tx pgx.Tx, agentID uuid.UUID, amount decimal.Decimal) error
}

type PgAgentRepository struct {
	db *pgxpool.Pool
}

func NewAgentRepository(db *pgxpool.Pool) AgentRepository {
	return &PgAgentRepository{db: db}
}

func (r *PgAgentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	const op = "storage.GetAgentByID"

	var agent models.Agent
	err := r.db.QueryRow(ctx, storage.GetAgentByIDQuery, id).Scan(
		&agent.ID,
		&agent.Name,
		&agent.FloatBalanceDOP,
		&agent.Active,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_err.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &agent, nil
}

func (r *PgAgentRepository) GetFloatForUpdateTx(ctx context.Context, tx pgx.Tx, agentID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.QueryRow(ctx, storage.GetAgentFloatForUpdateQuery, agentID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, custom_err.ErrNotFound
		}
		return decimal.Zero, err
	}
	return balance, nil
}

func (r *PgAgentRepository) DebitFloatTx(ctx context.Context, tx pgx.Tx, agentID uuid.UUID, amount decimal.Decimal) error {
	res, err := tx.Exec(ctx, storage.DebitAgentFloatQuery, amount, agentID)
	if err != nil {
		// La restricción CHECK del float es la última línea de defensa.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" {
			return custom_err.ErrInsufficientFloat
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return custom_err.ErrNotFound
	}
	return nil
}
