package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/kafka"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/metrics"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/storage/postgres"
)

type Remitter interface {
	Create(ctx context.Context, actor models.Actor, originIP string, req models.CreateRemittanceRequest) (*models.Remittance, error)
	Confirm(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Remittance, error)
	AdvanceState(ctx context.Context, actor models.Actor, id uuid.UUID, req models.AdvanceStateRequest) (*models.Remittance, error)
	GetByID(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Remittance, error)
}

// RiskEvaluator gates remittance creation.
type RiskEvaluator interface {
	Evaluate(ctx context.Context, req models.FraudCheckRequest) (*models.RiskAssessment, error)
}

// LedgerPoster writes the double-entry rows inside the confirm transaction.
type LedgerPoster interface {
	PostConfirmation(ctx context.Context, tx pgx.Tx, rem *models.Remittance) ([]*models.LedgerEntry, error)
}

type RemittanceService struct {
	remRepo   postgres.RemittanceRepository
	agentRepo postgres.AgentRepository
	quoter    Quoter
	risk      RiskEvaluator
	poster    LedgerPoster
	txManager TxManager
	producer  kafka.Producer
	metrics   *metrics.Metrics
	log       *slog.Logger

	largeRemittanceThreshold decimal.Decimal
}

func NewRemittanceService(
	remRepo postgres.RemittanceRepository,
	agentRepo postgres.AgentRepository,
	quoter Quoter,
	risk RiskEvaluator,
	poster LedgerPoster,
	txManager TxManager,
	producer kafka.Producer,
	m *metrics.Metrics,
	largeRemittanceThreshold decimal.Decimal,
	log *slog.Logger,
) *RemittanceService {
	return &RemittanceService{
		remRepo:                  remRepo,
		agentRepo:                agentRepo,
		quoter:                   quoter,
		risk:                     risk,
		poster:                   poster,
		txManager:                txManager,
		producer:                 producer,
		metrics:                  m,
		largeRemittanceThreshold: largeRemittanceThreshold,
		log:                      log,
	}
}

const referenceRandLen = 4

var referenceAlphabet = []byte("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateReference builds a human-shareable code: REM-<base36 timestamp>-<4 chars>.
func GenerateReference(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	buf := make([]byte, referenceRandLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand no falla en la práctica; documentado en rand.Read
		panic(err)
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return fmt.Sprintf("REM-%s-%s", ts, buf)
}

// receiptHash derives the content hash stored on confirmation. Any later
// tampering with the persisted amounts breaks verification.
func receiptHash(id uuid.UUID, reference string, beneficiaryReceives decimal.Decimal, confirmedAt time.Time) string {
	payload := fmt.Sprintf("%s|%s|%s|%d", id, reference, beneficiaryReceives.StringFixed(2), confirmedAt.Unix())
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Create prices the request, screens it through the risk engine and persists
// the remittance in QUOTED with its quote snapshot and the QUOTED event.
func (s *RemittanceService) Create(ctx context.Context, actor models.Actor, originIP string, req models.CreateRemittanceRequest) (*models.Remittance, error) {
	const op = "service.CreateRemittance"

	if missing := req.Validate(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing or invalid fields: %s", custom_err.ErrInvalidInput, strings.Join(missing, ", "))
	}

	quote, err := s.quoter.Quote(ctx, models.QuoteRequest{Principal: req.Principal, Channel: req.Channel})
	if err != nil {
		return nil, err
	}

	assessment, err := s.risk.Evaluate(ctx, models.FraudCheckRequest{
		SenderDoc:        req.SenderDoc,
		BeneficiaryPhone: req.BeneficiaryPhone,
		Principal:        req.Principal,
		OriginIP:         originIP,
	})
	if err != nil {
		// La evaluación de riesgo nunca tumba la creación por fallas de
		// infraestructura; queda registrado y se continúa.
		s.log.Error("evaluación de riesgo falló, se continúa sin bloqueo",
			slog.String("op", op),
			slog.String("error", err.Error()))
	} else if assessment.ShouldBlock {
		s.metrics.RiskBlocks.Inc()
		return nil, fmt.Errorf("%w: %s", custom_err.ErrRiskBlocked, strings.Join(assessment.Flags, "; "))
	}

	rem := &models.Remittance{
		ID:               uuid.New(),
		Reference:        GenerateReference(time.Now()),
		AgentID:          actor.AgentID,
		SenderName:       req.SenderName,
		SenderDoc:        req.SenderDoc,
		SenderPhone:      req.SenderPhone,
		BeneficiaryName:  req.BeneficiaryName,
		BeneficiaryPhone: req.BeneficiaryPhone,
		Channel:          req.Channel,
		OriginIP:         originIP,
		Quote:            *quote,
		State:            models.StateQuoted,
		CreatedAt:        time.Now().UTC(),
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.remRepo.CreateTx(ctx, tx, rem); err != nil {
			return fmt.Errorf("create remittance: %w", err)
		}
		event := &models.RemittanceEvent{
			ID:           uuid.New(),
			RemittanceID: rem.ID,
			Event:        models.StateQuoted,
			Actor:        actor.UserID.String(),
		}
		if err := s.remRepo.AppendEventTx(ctx, tx, event); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.RemittancesCreated.Inc()
	s.log.Info("remesa creada",
		slog.String("op", op),
		slog.String("reference", rem.Reference),
		slog.String("channel", string(rem.Channel)),
		slog.String("principal", rem.Quote.PrincipalDOP.String()))

	if rem.Quote.PrincipalDOP.GreaterThanOrEqual(s.largeRemittanceThreshold) {
		if err := s.producer.SendLargeRemittanceEvent(ctx, models.LargeRemittanceEvent{
			Reference:    rem.Reference,
			AgentID:      rem.AgentID.String(),
			Channel:      rem.Channel,
			PrincipalDOP: rem.Quote.PrincipalDOP,
			Timestamp:    rem.CreatedAt,
		}); err != nil {
			s.log.Error("no se pudo publicar evento de remesa grande",
				slog.String("reference", rem.Reference),
				slog.String("error", err.Error()))
		}
	}

	return rem, nil
}

// Confirm moves QUOTED→CONFIRMED. Inside one transaction it locks the
// remittance row, checks the caller, locks and debits the agent float, posts
// the ledger rows and appends the CONFIRMED event; any failure rolls the whole
// unit back so the float is never debited without its ledger rows.
func (s *RemittanceService) Confirm(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Remittance, error) {
	const op = "service.ConfirmRemittance"

	var confirmed *models.Remittance

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		rem, err := s.remRepo.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if !actor.IsAdmin() && actor.AgentID != rem.AgentID {
			return custom_err.ErrForbidden
		}
		if rem.State != models.StateQuoted {
			return custom_err.ErrInvalidState
		}

		balance, err := s.agentRepo.GetFloatForUpdateTx(ctx, tx, rem.AgentID)
		if err != nil {
			return fmt.Errorf("lock agent float: %w", err)
		}
		if balance.LessThan(rem.Quote.TotalClientPaysDOP) {
			return custom_err.ErrInsufficientFloat
		}

		if err := s.agentRepo.DebitFloatTx(ctx, tx, rem.AgentID, rem.Quote.TotalClientPaysDOP); err != nil {
			return fmt.Errorf("debit float: %w", err)
		}

		entries, err := s.poster.PostConfirmation(ctx, tx, rem)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		hash := receiptHash(rem.ID, rem.Reference, rem.Quote.BeneficiaryReceivesHTG, now)
		if err := s.remRepo.ConfirmTx(ctx, tx, rem.ID, hash, now); err != nil {
			return err
		}

		event := &models.RemittanceEvent{
			ID:           uuid.New(),
			RemittanceID: rem.ID,
			Event:        models.StateConfirmed,
			Actor:        actor.UserID.String(),
			Metadata: map[string]string{
				"total_client_pays_dop": rem.Quote.TotalClientPaysDOP.String(),
				"ledger_entries":        strconv.Itoa(len(entries)),
			},
		}
		if err := s.remRepo.AppendEventTx(ctx, tx, event); err != nil {
			return fmt.Errorf("append event: %w", err)
		}

		rem.State = models.StateConfirmed
		rem.ReceiptHash = hash
		rem.ConfirmedAt = &now
		confirmed = rem

		s.metrics.LedgerEntriesPosted.Add(float64(len(entries)))
		return nil
	})
	if err != nil {
		s.observeConfirmFailure(err)
		if isDomainErr(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.RemittancesConfirmed.Inc()
	s.log.Info("remesa confirmada",
		slog.String("op", op),
		slog.String("reference", confirmed.Reference),
		slog.String("receipt_hash", confirmed.ReceiptHash))

	return confirmed, nil
}

// AdvanceState applies a payout-network transition beyond CONFIRMED. One
// event per transition, never out of a terminal state.
func (s *RemittanceService) AdvanceState(ctx context.Context, actor models.Actor, id uuid.UUID, req models.AdvanceStateRequest) (*models.Remittance, error) {
	const op = "service.AdvanceState"

	if !actor.IsAdmin() {
		return nil, custom_err.ErrForbidden
	}
	if !req.State.IsValid() {
		return nil, fmt.Errorf("%w: unknown state %q", custom_err.ErrInvalidInput, req.State)
	}

	var updated *models.Remittance

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		rem, err := s.remRepo.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if !rem.State.CanTransitionTo(req.State) {
			return custom_err.ErrInvalidState
		}

		if err := s.remRepo.UpdateStateTx(ctx, tx, rem.ID, req.State, req.PayoutRef); err != nil {
			return err
		}

		event := &models.RemittanceEvent{
			ID:           uuid.New(),
			RemittanceID: rem.ID,
			Event:        req.State,
			Actor:        actor.UserID.String(),
			Metadata:     req.Metadata,
		}
		if err := s.remRepo.AppendEventTx(ctx, tx, event); err != nil {
			return fmt.Errorf("append event: %w", err)
		}

		rem.State = req.State
		if req.PayoutRef != "" {
			rem.PayoutRef = req.PayoutRef
		}
		updated = rem
		return nil
	})
	if err != nil {
		if isDomainErr(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("estado de remesa actualizado",
		slog.String("op", op),
		slog.String("reference", updated.Reference),
		slog.String("state", string(updated.State)))

	return updated, nil
}

func (s *RemittanceService) GetByID(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Remittance, error) {
	rem, err := s.remRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.AgentID != rem.AgentID {
		return nil, custom_err.ErrForbidden
	}
	return rem, nil
}

func (s *RemittanceService) observeConfirmFailure(err error) {
	switch {
	case errors.Is(err, custom_err.ErrInvalidState):
		s.metrics.ConfirmFailures.WithLabelValues("invalid_state").Inc()
	case errors.Is(err, custom_err.ErrInsufficientFloat):
		s.metrics.ConfirmFailures.WithLabelValues("insufficient_float").Inc()
	case errors.Is(err, custom_err.ErrForbidden):
		s.metrics.ConfirmFailures.WithLabelValues("forbidden").Inc()
	case errors.Is(err, custom_err.ErrLedgerConsistency):
		s.metrics.ConfirmFailures.WithLabelValues("ledger").Inc()
	default:
		s.metrics.ConfirmFailures.WithLabelValues("internal").Inc()
	}
}

func isDomainErr(err error) bool {
	return errors.Is(err, custom_err.ErrNotFound) ||
		errors.Is(err, custom_err.ErrForbidden) ||
		errors.Is(err, custom_err.ErrInvalidState) ||
		errors.Is(err, custom_err.ErrInsufficientFloat)
}
