package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/storage"
)

type RiskFlagRepository interface {
	Create(ctx context.Context, flag *models.RiskFlag) error
	ListUnresolved(ctx context.Context, limit int) ([]*models.RiskFlag, error)
	Resolve(ctx context.Context, id uuid.UUID, resolvedBy, note string) error
}

type PgRiskFlagRepository struct {
	db *pgxpool.Pool
}

func NewRiskFlagRepository(db *pgxpool.Pool) RiskFlagRepository {
	return &PgRiskFlagRepository{db: db}
}

func (r *PgRiskFlagRepository) Create(ctx context.Context, flag *models.RiskFlag) error {
	const op = "storage.CreateRiskFlag"

	_, err := r.db.Exec(ctx, storage.CreateRiskFlagQuery,
		flag.ID,
		flag.EntityType,
		flag.EntityID,
		flag.FlagType,
		flag.Severity,
		flag.Description,
		flag.Metadata,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *PgRiskFlagRepository) ListUnresolved(ctx context.Context, limit int) ([]*models.RiskFlag, error) {
	const op = "storage.ListUnresolvedRiskFlags"

	rows, err := r.db.Query(ctx, storage.ListUnresolvedRiskFlagsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var flags []*models.RiskFlag
	for rows.Next() {
		var f models.RiskFlag
		err := rows.Scan(
			&f.ID,
			&f.EntityType,
			&f.EntityID,
			&f.FlagType,
			&f.Severity,
			&f.Description,
			&f.Resolved,
			&f.ResolvedBy,
			&f.ResolutionNote,
			&f.ResolvedAt,
			&f.Metadata,
			&f.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan error: %w", op, err)
		}
		flags = append(flags, &f)
	}
	return flags, rows.Err()
}

func (r *PgRiskFlagRepository) Resolve(ctx context.Context, id uuid.UUID, resolvedBy, note string) error {
	const op = "storage.ResolveRiskFlag"

	res, err := r.db.Exec(ctx, storage.ResolveRiskFlagQuery, id, resolvedBy, note)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.RowsAffected() == 0 {
		return custom_err.ErrNotFound
	}
	return nil
}
