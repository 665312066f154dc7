package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/storage/postgres"
)

// Poster writes the double-entry rows for remittance confirmations. It always
// runs inside the caller's transaction so that the float debit and the ledger
// rows commit or roll back together.
type Poster struct {
	repo postgres.LedgerRepository
}

func NewPoster(repo postgres.LedgerRepository) *Poster {
	return &Poster{repo: repo}
}

// PostConfirmation records the money movement of one confirmed remittance:
// the principal moves from the agent's cash account into the pending payouts
// liability, and the agent's commission moves from commission revenue back to
// the agent's cash account. Both rows share one transaction id.
func (p *Poster) PostConfirmation(ctx context.Context, tx pgx.Tx, rem *models.Remittance) ([]*models.LedgerEntry, error) {
	const op = "ledger.PostConfirmation"

	agentID := rem.AgentID
	agentCash, err := p.repo.GetOrCreateAccountTx(ctx, tx, models.AgentCashAccountCode(agentID), models.CurrencyDOP, &agentID)
	if err != nil {
		return nil, fmt.Errorf("%s: agent cash account: %w", op, err)
	}
	pendingPayouts, err := p.repo.GetOrCreateAccountTx(ctx, tx, models.AccountPendingPayouts, models.CurrencyDOP, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: pending payouts account: %w", op, err)
	}
	commissionRevenue, err := p.repo.GetOrCreateAccountTx(ctx, tx, models.AccountCommissionRevenue, models.CurrencyDOP, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: commission revenue account: %w", op, err)
	}

	txID := uuid.New()
	entries := []*models.LedgerEntry{
		{
			ID:              uuid.New(),
			TransactionID:   txID,
			DebitAccountID:  pendingPayouts.ID,
			CreditAccountID: agentCash.ID,
			Amount:          rem.Quote.PrincipalDOP,
			Currency:        models.CurrencyDOP,
			RemittanceID:    rem.ID,
		},
	}
	// Agentes sin comisión no generan fila de comisión.
	if rem.Quote.StoreCommissionDOP.IsPositive() {
		entries = append(entries, &models.LedgerEntry{
			ID:              uuid.New(),
			TransactionID:   txID,
			DebitAccountID:  agentCash.ID,
			CreditAccountID: commissionRevenue.ID,
			Amount:          rem.Quote.StoreCommissionDOP,
			Currency:        models.CurrencyDOP,
			RemittanceID:    rem.ID,
		})
	}

	if err := CheckBalanced(entries); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if err := p.repo.InsertEntryTx(ctx, tx, entry); err != nil {
			return nil, fmt.Errorf("%s: insert entry: %w", op, err)
		}
	}
	return entries, nil
}

// CheckBalanced verifies that, per currency, the sum of debit amounts equals
// the sum of credit amounts across all entries. Each row carries one debit
// and one credit account, so the check also rejects non-positive amounts,
// which would let a malformed row hide an imbalance.
func CheckBalanced(entries []*models.LedgerEntry) error {
	debits := make(map[models.Currency]decimal.Decimal)
	credits := make(map[models.Currency]decimal.Decimal)

	for _, e := range entries {
		if !e.Amount.IsPositive() {
			return fmt.Errorf("%w: non-positive amount %s", custom_err.ErrLedgerConsistency, e.Amount)
		}
		debits[e.Currency] = debits[e.Currency].Add(e.Amount)
		credits[e.Currency] = credits[e.Currency].Add(e.Amount)
	}

	for currency, debit := range debits {
		if !debit.Equal(credits[currency]) {
			return fmt.Errorf("%w: %s debits %s != credits %s",
				custom_err.ErrLedgerConsistency, currency, debit, credits[currency])
		}
	}
	return nil
}
