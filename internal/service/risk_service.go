package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/kafka"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/metrics"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/storage/postgres"
)

// RiskConfig thresholds for the velocity and amount checks. Zero values
// disable the corresponding check.
type RiskConfig struct {
	MaxDailyTxPerSender     int
	MaxDailyAmountDOP       decimal.Decimal
	MaxMonthlyAmountDOP     decimal.Decimal
	MaxTxPerHourPerSender   int
	MinSpacing              time.Duration
	MaxPairTxPerDay         int
	RoundAmountThresholdDOP decimal.Decimal
	MaxTxPerHourPerIP       int
}

type RiskManager interface {
	RiskEvaluator
	ListFlags(ctx context.Context, limit int) ([]*models.RiskFlag, error)
	ResolveFlag(ctx context.Context, actor models.Actor, id uuid.UUID, note string) error
}

type RiskService struct {
	remRepo  postgres.RemittanceRepository
	flagRepo postgres.RiskFlagRepository
	producer kafka.Producer
	metrics  *metrics.Metrics
	cfg      RiskConfig
	log      *slog.Logger
}

func NewRiskService(
	remRepo postgres.RemittanceRepository,
	flagRepo postgres.RiskFlagRepository,
	producer kafka.Producer,
	m *metrics.Metrics,
	cfg RiskConfig,
	log *slog.Logger,
) *RiskService {
	return &RiskService{
		remRepo:  remRepo,
		flagRepo: flagRepo,
		producer: producer,
		metrics:  m,
		cfg:      cfg,
		log:      log,
	}
}

var tenThousand = decimal.NewFromInt(10000)

// Evaluate runs every applicable check and aggregates the dominant severity.
// Checks with missing inputs or failing lookups are skipped; the evaluation
// itself never fails because one data source is down.
func (s *RiskService) Evaluate(ctx context.Context, req models.FraudCheckRequest) (*models.RiskAssessment, error) {
	const op = "service.EvaluateRisk"

	now := time.Now().UTC()
	dayAgo := now.Add(-24 * time.Hour)
	monthAgo := now.Add(-31 * 24 * time.Hour)
	hourAgo := now.Add(-time.Hour)

	assessment := &models.RiskAssessment{RiskLevel: models.RiskLow}

	flag := func(level models.RiskLevel, format string, args ...any) {
		assessment.IsSuspicious = true
		assessment.RiskLevel = assessment.RiskLevel.Escalate(level)
		assessment.Flags = append(assessment.Flags, fmt.Sprintf(format, args...))
	}
	skip := func(check string, err error) {
		s.log.Warn("chequeo de riesgo omitido",
			slog.String("op", op),
			slog.String("check", check),
			slog.String("error", err.Error()))
	}

	if req.SenderDoc != "" {
		if s.cfg.MaxDailyTxPerSender > 0 {
			count, err := s.remRepo.CountSenderTxSince(ctx, req.SenderDoc, dayAgo)
			if err != nil {
				skip("daily_tx_count", err)
			} else if count >= s.cfg.MaxDailyTxPerSender {
				flag(models.RiskHigh, "sender reached %d transactions in 24h (max %d)", count, s.cfg.MaxDailyTxPerSender)
			}
		}

		if s.cfg.MaxDailyAmountDOP.IsPositive() {
			sum, err := s.remRepo.SumSenderAmountSince(ctx, req.SenderDoc, dayAgo)
			if err != nil {
				skip("daily_amount", err)
			} else if sum.Add(req.Principal).GreaterThan(s.cfg.MaxDailyAmountDOP) {
				flag(models.RiskHigh, "daily amount %s DOP exceeds ceiling %s", sum.Add(req.Principal), s.cfg.MaxDailyAmountDOP)
			}
		}

		if s.cfg.MaxMonthlyAmountDOP.IsPositive() {
			sum, err := s.remRepo.SumSenderAmountSince(ctx, req.SenderDoc, monthAgo)
			if err != nil {
				skip("monthly_amount", err)
			} else if sum.Add(req.Principal).GreaterThan(s.cfg.MaxMonthlyAmountDOP) {
				flag(models.RiskHigh, "monthly amount %s DOP exceeds ceiling %s", sum.Add(req.Principal), s.cfg.MaxMonthlyAmountDOP)
			}
		}

		if s.cfg.MaxTxPerHourPerSender > 0 {
			count, err := s.remRepo.CountSenderTxSince(ctx, req.SenderDoc, hourAgo)
			if err != nil {
				skip("hourly_tx_count", err)
			} else if count >= s.cfg.MaxTxPerHourPerSender {
				flag(models.RiskMedium, "sender velocity %d tx/hour (max %d)", count, s.cfg.MaxTxPerHourPerSender)
			}
		}

		if s.cfg.MinSpacing > 0 {
			last, err := s.remRepo.LastSenderTxAt(ctx, req.SenderDoc)
			if err != nil {
				skip("min_spacing", err)
			} else if last != nil && now.Sub(*last) < s.cfg.MinSpacing {
				flag(models.RiskMedium, "only %s since sender's last transaction (min %s)", now.Sub(*last).Round(time.Second), s.cfg.MinSpacing)
			}
		}

		if req.BeneficiaryPhone != "" && s.cfg.MaxPairTxPerDay > 0 {
			count, err := s.remRepo.CountPairTxSince(ctx, req.SenderDoc, req.BeneficiaryPhone, dayAgo)
			if err != nil {
				skip("pair_repetition", err)
			} else if count > s.cfg.MaxPairTxPerDay {
				flag(models.RiskMedium, "sender/beneficiary pair repeated %d times today (max %d)", count, s.cfg.MaxPairTxPerDay)
			}
		}
	}

	if s.cfg.RoundAmountThresholdDOP.IsPositive() &&
		req.Principal.GreaterThanOrEqual(s.cfg.RoundAmountThresholdDOP) &&
		req.Principal.Mod(tenThousand).IsZero() {
		flag(models.RiskMedium, "large round amount %s DOP", req.Principal)
	}

	if req.OriginIP != "" && s.cfg.MaxTxPerHourPerIP > 0 {
		count, err := s.remRepo.CountIPTxSince(ctx, req.OriginIP, hourAgo)
		if err != nil {
			skip("ip_velocity", err)
		} else if count >= s.cfg.MaxTxPerHourPerIP {
			flag(models.RiskHigh, "origin IP velocity %d tx/hour (max %d)", count, s.cfg.MaxTxPerHourPerIP)
		}
	}

	assessment.ShouldBlock = assessment.RiskLevel == models.RiskHigh
	s.metrics.RiskEvaluations.Inc()

	if assessment.IsSuspicious {
		s.recordSuspicious(ctx, req, assessment, now)
	}

	return assessment, nil
}

// recordSuspicious persists the flag and publishes the audit event. The
// evaluation result stands even if either write fails.
func (s *RiskService) recordSuspicious(ctx context.Context, req models.FraudCheckRequest, a *models.RiskAssessment, evaluatedAt time.Time) {
	entityID := req.SenderDoc
	entityType := "sender"
	if entityID == "" {
		entityID = req.OriginIP
		entityType = "ip"
	}

	flag := &models.RiskFlag{
		ID:          uuid.New(),
		EntityType:  entityType,
		EntityID:    entityID,
		FlagType:    "velocity",
		Severity:    a.RiskLevel,
		Description: fmt.Sprintf("%d checks fired", len(a.Flags)),
		Metadata:    map[string]string{"principal_dop": req.Principal.String()},
	}
	for i, f := range a.Flags {
		flag.Metadata[fmt.Sprintf("flag_%d", i+1)] = f
	}
	if err := s.flagRepo.Create(ctx, flag); err != nil {
		s.log.Error("no se pudo persistir la bandera de riesgo",
			slog.String("entity", entityID),
			slog.String("error", err.Error()))
	}

	if err := s.producer.SendSuspiciousActivityEvent(ctx, models.SuspiciousActivityEvent{
		SenderDoc:   req.SenderDoc,
		OriginIP:    req.OriginIP,
		Principal:   req.Principal,
		RiskLevel:   a.RiskLevel,
		Flags:       a.Flags,
		Blocked:     a.ShouldBlock,
		EvaluatedAt: evaluatedAt,
	}); err != nil {
		s.log.Error("no se pudo publicar evento de actividad sospechosa",
			slog.String("entity", entityID),
			slog.String("error", err.Error()))
	}

	s.log.Warn("actividad sospechosa detectada",
		slog.String("entity_type", entityType),
		slog.String("entity_id", entityID),
		slog.String("risk_level", string(a.RiskLevel)),
		slog.Bool("blocked", a.ShouldBlock),
		slog.Any("flags", a.Flags))
}

func (s *RiskService) ListFlags(ctx context.Context, limit int) ([]*models.RiskFlag, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.flagRepo.ListUnresolved(ctx, limit)
}

func (s *RiskService) ResolveFlag(ctx context.Context, actor models.Actor, id uuid.UUID, note string) error {
	const op = "service.ResolveFlag"

	if !actor.IsAdmin() {
		return custom_err.ErrForbidden
	}
	if err := s.flagRepo.Resolve(ctx, id, actor.UserID.String(), note); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("bandera de riesgo resuelta",
		slog.String("op", op),
		slog.String("flag_id", id.String()),
		slog.String("resolved_by", actor.UserID.String()))
	return nil
}
