package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/metrics"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
)

// promauto registra en el registro global; una sola instancia por binario de test.
var testMetrics = metrics.New()

type MockRemittanceRepository struct {
	mock.Mock
}

func (m *MockRemittanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Remittance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Remittance), args.Error(1)
}

func (m *MockRemittanceRepository) GetByReference(ctx context.Context, reference string) (*models.Remittance, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Remittance), args.Error(1)
}

func (m *MockRemittanceRepository) GetEvents(ctx context.Context, remittanceID uuid.UUID) ([]*models.RemittanceEvent, error) {
	args := m.Called(ctx, remittanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RemittanceEvent), args.Error(1)
}

func (m *MockRemittanceRepository) CreateTx(ctx context.Context, tx pgx.Tx, rem *models.Remittance) error {
	args := m.Called(ctx, tx, rem)
	return args.Error(0)
}

func (m *MockRemittanceRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Remittance, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Remittance), args.Error(1)
}

func (m *MockRemittanceRepository) ConfirmTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, receiptHash string, confirmedAt time.Time) error {
	args := m.Called(ctx, tx, id, receiptHash, confirmedAt)
	return args.Error(0)
}

func (m *MockRemittanceRepository) UpdateStateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, state models.RemittanceState, payoutRef string) error {
	args := m.Called(ctx, tx, id, state, payoutRef)
	return args.Error(0)
}

func (m *MockRemittanceRepository) AppendEventTx(ctx context.Context, tx pgx.Tx, event *models.RemittanceEvent) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}

func (m *MockRemittanceRepository) CountSenderTxSince(ctx context.Context, senderDoc string, since time.Time) (int, error) {
	args := m.Called(ctx, senderDoc, since)
	return args.Int(0), args.Error(1)
}

func (m *MockRemittanceRepository) SumSenderAmountSince(ctx context.Context, senderDoc string, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, senderDoc, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRemittanceRepository) LastSenderTxAt(ctx context.Context, senderDoc string) (*time.Time, error) {
	args := m.Called(ctx, senderDoc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockRemittanceRepository) CountPairTxSince(ctx context.Context, senderDoc, beneficiaryPhone string, since time.Time) (int, error) {
	args := m.Called(ctx, senderDoc, beneficiaryPhone, since)
	return args.Int(0), args.Error(1)
}

func (m *MockRemittanceRepository) CountIPTxSince(ctx context.Context, originIP string, since time.Time) (int, error) {
	args := m.Called(ctx, originIP, since)
	return args.Int(0), args.Error(1)
}

type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetFloatForUpdateTx(ctx context.Context, tx pgx.Tx, agentID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, agentID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAgentRepository) DebitFloatTx(ctx context.Context, tx pgx.Tx, agentID uuid.UUID, amount decimal.Decimal) error {
	args := m.Called(ctx, tx, agentID, amount)
	return args.Error(0)
}

type MockFeeScheduleRepository struct {
	mock.Mock
}

func (m *MockFeeScheduleRepository) GetActive(ctx context.Context, corridor string, channel models.Channel) (*models.FeeSchedule, error) {
	args := m.Called(ctx, corridor, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeSchedule), args.Error(1)
}

type MockRiskFlagRepository struct {
	mock.Mock
}

func (m *MockRiskFlagRepository) Create(ctx context.Context, flag *models.RiskFlag) error {
	args := m.Called(ctx, flag)
	return args.Error(0)
}

func (m *MockRiskFlagRepository) ListUnresolved(ctx context.Context, limit int) ([]*models.RiskFlag, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RiskFlag), args.Error(1)
}

func (m *MockRiskFlagRepository) Resolve(ctx context.Context, id uuid.UUID, resolvedBy, note string) error {
	args := m.Called(ctx, id, resolvedBy, note)
	return args.Error(0)
}

type MockQuoter struct {
	mock.Mock
}

func (m *MockQuoter) Quote(ctx context.Context, req models.QuoteRequest) (*models.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

type MockRiskEvaluator struct {
	mock.Mock
}

func (m *MockRiskEvaluator) Evaluate(ctx context.Context, req models.FraudCheckRequest) (*models.RiskAssessment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskAssessment), args.Error(1)
}

type MockLedgerPoster struct {
	mock.Mock
}

func (m *MockLedgerPoster) PostConfirmation(ctx context.Context, tx pgx.Tx, rem *models.Remittance) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, tx, rem)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) SendSuspiciousActivityEvent(ctx context.Context, event models.SuspiciousActivityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockProducer) SendLargeRemittanceEvent(ctx context.Context, event models.LargeRemittanceEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}

// fakeTxManager invokes the callback directly; the mocks below ignore the tx.
type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, fn func(pgx.Tx) error) error {
	return fn(nil)
}
