package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type remittanceFixture struct {
	remRepo   *MockRemittanceRepository
	agentRepo *MockAgentRepository
	quoter    *MockQuoter
	risk      *MockRiskEvaluator
	poster    *MockLedgerPoster
	producer  *MockProducer
	svc       *RemittanceService
}

func newRemittanceFixture(largeThreshold string) *remittanceFixture {
	f := &remittanceFixture{
		remRepo:   new(MockRemittanceRepository),
		agentRepo: new(MockAgentRepository),
		quoter:    new(MockQuoter),
		risk:      new(MockRiskEvaluator),
		poster:    new(MockLedgerPoster),
		producer:  new(MockProducer),
	}
	f.svc = NewRemittanceService(
		f.remRepo,
		f.agentRepo,
		f.quoter,
		f.risk,
		f.poster,
		fakeTxManager{},
		f.producer,
		testMetrics,
		decimal.RequireFromString(largeThreshold),
		discardLogger(),
	)
	return f
}

func validCreateRequest() models.CreateRemittanceRequest {
	return models.CreateRemittanceRequest{
		SenderName:       "Juan Pérez",
		SenderDoc:        "001-1234567-8",
		SenderPhone:      "+18095551234",
		BeneficiaryName:  "Marie Joseph",
		BeneficiaryPhone: "+50937001122",
		Principal:        decimal.NewFromInt(5000),
		Channel:          models.ChannelMonCash,
	}
}

func sampleQuote(principal string) *models.Quote {
	return &models.Quote{
		ScheduleID:             uuid.New(),
		Channel:                models.ChannelMonCash,
		PrincipalDOP:           decimal.RequireFromString(principal),
		TotalClientFeesDOP:     decimal.RequireFromString("150"),
		TotalClientPaysDOP:     decimal.RequireFromString(principal).Add(decimal.RequireFromString("150")),
		BeneficiaryReceivesHTG: decimal.RequireFromString("12241.25"),
		StoreCommissionDOP:     decimal.RequireFromString("30"),
		PlatformMarginDOP:      decimal.RequireFromString("79.50"),
	}
}

func agentActor(agentID uuid.UUID) models.Actor {
	return models.Actor{UserID: uuid.New(), AgentID: agentID, Role: models.RoleAgent}
}

func adminActor() models.Actor {
	return models.Actor{UserID: uuid.New(), AgentID: uuid.New(), Role: models.RoleAdmin}
}

func lowRisk() *models.RiskAssessment {
	return &models.RiskAssessment{RiskLevel: models.RiskLow}
}

func TestCreateRemittance_Success(t *testing.T) {
	f := newRemittanceFixture("100000")
	actor := agentActor(uuid.New())
	req := validCreateRequest()

	f.quoter.On("Quote", mock.Anything, models.QuoteRequest{Principal: req.Principal, Channel: req.Channel}).
		Return(sampleQuote("5000"), nil)
	f.risk.On("Evaluate", mock.Anything, mock.Anything).Return(lowRisk(), nil)
	f.remRepo.On("CreateTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.remRepo.On("AppendEventTx", mock.Anything, mock.Anything, mock.MatchedBy(func(e *models.RemittanceEvent) bool {
		return e.Event == models.StateQuoted
	})).Return(nil)

	rem, err := f.svc.Create(context.Background(), actor, "190.80.1.1", req)

	require.NoError(t, err)
	assert.Equal(t, models.StateQuoted, rem.State)
	assert.Equal(t, actor.AgentID, rem.AgentID)
	assert.Regexp(t, regexp.MustCompile(`^REM-[0-9A-Z]+-[0-9A-Z]{4}$`), rem.Reference)
	assert.Equal(t, "190.80.1.1", rem.OriginIP)
	f.remRepo.AssertExpectations(t)
	f.producer.AssertNotCalled(t, "SendLargeRemittanceEvent", mock.Anything, mock.Anything)
}

func TestCreateRemittance_BlockedByRisk(t *testing.T) {
	f := newRemittanceFixture("100000")
	req := validCreateRequest()

	f.quoter.On("Quote", mock.Anything, mock.Anything).Return(sampleQuote("5000"), nil)
	f.risk.On("Evaluate", mock.Anything, mock.Anything).Return(&models.RiskAssessment{
		IsSuspicious: true,
		RiskLevel:    models.RiskHigh,
		Flags:        []string{"sender reached 11 transactions in 24h (max 10)"},
		ShouldBlock:  true,
	}, nil)

	rem, err := f.svc.Create(context.Background(), agentActor(uuid.New()), "190.80.1.1", req)

	assert.Nil(t, rem)
	assert.ErrorIs(t, err, custom_err.ErrRiskBlocked)
	f.remRepo.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateRemittance_RiskInfraFailureDoesNotBlock(t *testing.T) {
	f := newRemittanceFixture("100000")
	req := validCreateRequest()

	f.quoter.On("Quote", mock.Anything, mock.Anything).Return(sampleQuote("5000"), nil)
	f.risk.On("Evaluate", mock.Anything, mock.Anything).Return(nil, errors.New("redis caído"))
	f.remRepo.On("CreateTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.remRepo.On("AppendEventTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	rem, err := f.svc.Create(context.Background(), agentActor(uuid.New()), "190.80.1.1", req)

	require.NoError(t, err)
	assert.Equal(t, models.StateQuoted, rem.State)
}

func TestCreateRemittance_MissingFields(t *testing.T) {
	f := newRemittanceFixture("100000")
	req := validCreateRequest()
	req.SenderDoc = ""
	req.BeneficiaryPhone = ""

	rem, err := f.svc.Create(context.Background(), agentActor(uuid.New()), "190.80.1.1", req)

	assert.Nil(t, rem)
	assert.ErrorIs(t, err, custom_err.ErrInvalidInput)
	assert.Contains(t, err.Error(), "sender_doc")
	assert.Contains(t, err.Error(), "beneficiary_phone")
	f.quoter.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything)
}

func TestCreateRemittance_LargeAmountPublishesEvent(t *testing.T) {
	f := newRemittanceFixture("4000")
	req := validCreateRequest()

	f.quoter.On("Quote", mock.Anything, mock.Anything).Return(sampleQuote("5000"), nil)
	f.risk.On("Evaluate", mock.Anything, mock.Anything).Return(lowRisk(), nil)
	f.remRepo.On("CreateTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.remRepo.On("AppendEventTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.producer.On("SendLargeRemittanceEvent", mock.Anything, mock.MatchedBy(func(e models.LargeRemittanceEvent) bool {
		return e.PrincipalDOP.Equal(decimal.NewFromInt(5000)) && e.Channel == models.ChannelMonCash
	})).Return(nil)

	_, err := f.svc.Create(context.Background(), agentActor(uuid.New()), "190.80.1.1", req)

	require.NoError(t, err)
	f.producer.AssertExpectations(t)
}

func quotedRemittance(agentID uuid.UUID) *models.Remittance {
	q := sampleQuote("5000")
	return &models.Remittance{
		ID:        uuid.New(),
		Reference: "REM-TEST-0001",
		AgentID:   agentID,
		Channel:   models.ChannelMonCash,
		Quote:     *q,
		State:     models.StateQuoted,
		CreatedAt: time.Now().UTC(),
	}
}

func TestConfirmRemittance_Success(t *testing.T) {
	f := newRemittanceFixture("100000")
	agentID := uuid.New()
	actor := agentActor(agentID)
	rem := quotedRemittance(agentID)

	f.remRepo.On("GetForUpdateTx", mock.Anything, mock.Anything, rem.ID).Return(rem, nil)
	f.agentRepo.On("GetFloatForUpdateTx", mock.Anything, mock.Anything, agentID).
		Return(decimal.NewFromInt(20000), nil)
	f.agentRepo.On("DebitFloatTx", mock.Anything, mock.Anything, agentID, rem.Quote.TotalClientPaysDOP).Return(nil)
	f.poster.On("PostConfirmation", mock.Anything, mock.Anything, rem).
		Return([]*models.LedgerEntry{{}, {}}, nil)
	f.remRepo.On("ConfirmTx", mock.Anything, mock.Anything, rem.ID, mock.Anything, mock.Anything).Return(nil)
	f.remRepo.On("AppendEventTx", mock.Anything, mock.Anything, mock.MatchedBy(func(e *models.RemittanceEvent) bool {
		return e.Event == models.StateConfirmed && e.RemittanceID == rem.ID
	})).Return(nil)

	confirmed, err := f.svc.Confirm(context.Background(), actor, rem.ID)

	require.NoError(t, err)
	assert.Equal(t, models.StateConfirmed, confirmed.State)
	assert.Len(t, confirmed.ReceiptHash, 64)
	require.NotNil(t, confirmed.ConfirmedAt)
	f.remRepo.AssertExpectations(t)
	f.agentRepo.AssertExpectations(t)
	f.poster.AssertExpectations(t)
}

func TestConfirmRemittance_InsufficientFloat(t *testing.T) {
	f := newRemittanceFixture("100000")
	agentID := uuid.New()
	rem := quotedRemittance(agentID)

	f.remRepo.On("GetForUpdateTx", mock.Anything, mock.Anything, rem.ID).Return(rem, nil)
	f.agentRepo.On("GetFloatForUpdateTx", mock.Anything, mock.Anything, agentID).
		Return(decimal.NewFromInt(100), nil)

	confirmed, err := f.svc.Confirm(context.Background(), agentActor(agentID), rem.ID)

	assert.Nil(t, confirmed)
	assert.ErrorIs(t, err, custom_err.ErrInsufficientFloat)
	f.agentRepo.AssertNotCalled(t, "DebitFloatTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.poster.AssertNotCalled(t, "PostConfirmation", mock.Anything, mock.Anything, mock.Anything)
	f.remRepo.AssertNotCalled(t, "ConfirmTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmRemittance_AlreadyConfirmed(t *testing.T) {
	f := newRemittanceFixture("100000")
	agentID := uuid.New()
	rem := quotedRemittance(agentID)
	rem.State = models.StateConfirmed

	f.remRepo.On("GetForUpdateTx", mock.Anything, mock.Anything, rem.ID).Return(rem, nil)

	confirmed, err := f.svc.Confirm(context.Background(), agentActor(agentID), rem.ID)

	assert.Nil(t, confirmed)
	assert.ErrorIs(t, err, custom_err.ErrInvalidState)
	f.agentRepo.AssertNotCalled(t, "GetFloatForUpdateTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmRemittance_ForeignAgent(t *testing.T) {
	f := newRemittanceFixture("100000")
	rem := quotedRemittance(uuid.New())

	f.remRepo.On("GetForUpdateTx", mock.Anything, mock.Anything, rem.ID).Return(rem, nil)

	confirmed, err := f.svc.Confirm(context.Background(), agentActor(uuid.New()), rem.ID)

	assert.Nil(t, confirmed)
	assert.ErrorIs(t, err, custom_err.ErrForbidden)
}

func TestConfirmRemittance_AdminCanConfirmAnyAgent(t *testing.T) {
	f := newRemittanceFixture("100000")
	agentID := uuid.New()
	rem := quotedRemittance(agentID)

	f.remRepo.On("GetForUpdateTx", mock.Anything, mock.Anything, rem.ID).Return(rem, nil)
	f.agentRepo.On("GetFloatForUpdateTx", mock.Anything, mock.Anything, agentID).
		Return(decimal.NewFromInt(20000), nil)
	f.agentRepo.On("DebitFloatTx", mock.Anything, mock.Anything, agentID, mock.Anything).Return(nil)
	f.poster.On("PostConfirmation", mock.Anything, mock.Anything, rem).
		Return([]*models.LedgerEntry{{}}, nil)
	f.remRepo.On("ConfirmTx", mock.Anything, mock.Anything, rem.ID, mock.Anything, mock.Anything).Return(nil)
	f.remRepo.On("AppendEventTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	confirmed, err := f.svc.Confirm(context.Background(), adminActor(), rem.ID)

	require.NoError(t, err)
	assert.Equal(t, models.StateConfirmed, confirmed.State)
}

func TestConfirmRemittance_NotFound(t *testing.T) {
	f := newRemittanceFixture("100000")
	id := uuid.New()

	f.remRepo.On("GetForUpdateTx", mock.Anything, mock.Anything, id).Return(nil, custom_err.ErrNotFound)

	confirmed, err := f.svc.Confirm(context.Background(), adminActor(), id)

	assert.Nil(t, confirmed)
	assert.ErrorIs(t, err, custom_err.ErrNotFound)
}

func TestAdvanceState_ConfirmedToSent(t *testing.T) {
	f := newRemittanceFixture("100000")
	rem := quotedRemittance(uuid.New())
	rem.State = models.StateConfirmed

	f.remRepo.On("GetForUpdateTx", mock.Anything, mock.Anything, rem.ID).Return(rem, nil)
	f.remRepo.On("UpdateStateTx", mock.Anything, mock.Anything, rem.ID, models.StateSent, "MC-778812").Return(nil)
	f.remRepo.On("AppendEventTx", mock.Anything, mock.Anything, mock.MatchedBy(func(e *models.RemittanceEvent) bool {
		return e.Event == models.StateSent
	})).Return(nil)

	updated, err := f.svc.AdvanceState(context.Background(), adminActor(), rem.ID, models.AdvanceStateRequest{
		State:     models.StateSent,
		PayoutRef: "MC-778812",
	})

	require.NoError(t, err)
	assert.Equal(t, models.StateSent, updated.State)
	assert.Equal(t, "MC-778812", updated.PayoutRef)
}

func TestAdvanceState_SkippingStatesRejected(t *testing.T) {
	f := newRemittanceFixture("100000")
	rem := quotedRemittance(uuid.New())
	rem.State = models.StateConfirmed

	f.remRepo.On("GetForUpdateTx", mock.Anything, mock.Anything, rem.ID).Return(rem, nil)

	updated, err := f.svc.AdvanceState(context.Background(), adminActor(), rem.ID, models.AdvanceStateRequest{
		State: models.StatePaid,
	})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, custom_err.ErrInvalidState)
	f.remRepo.AssertNotCalled(t, "UpdateStateTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvanceState_TerminalStateFrozen(t *testing.T) {
	f := newRemittanceFixture("100000")
	rem := quotedRemittance(uuid.New())
	rem.State = models.StateSettled

	f.remRepo.On("GetForUpdateTx", mock.Anything, mock.Anything, rem.ID).Return(rem, nil)

	_, err := f.svc.AdvanceState(context.Background(), adminActor(), rem.ID, models.AdvanceStateRequest{
		State: models.StateRefunded,
	})

	assert.ErrorIs(t, err, custom_err.ErrInvalidState)
}

func TestAdvanceState_AgentForbidden(t *testing.T) {
	f := newRemittanceFixture("100000")

	_, err := f.svc.AdvanceState(context.Background(), agentActor(uuid.New()), uuid.New(), models.AdvanceStateRequest{
		State: models.StateSent,
	})

	assert.ErrorIs(t, err, custom_err.ErrForbidden)
	f.remRepo.AssertNotCalled(t, "GetForUpdateTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetByID_OwnershipEnforced(t *testing.T) {
	f := newRemittanceFixture("100000")
	rem := quotedRemittance(uuid.New())

	f.remRepo.On("GetByID", mock.Anything, rem.ID).Return(rem, nil)

	_, err := f.svc.GetByID(context.Background(), agentActor(uuid.New()), rem.ID)
	assert.ErrorIs(t, err, custom_err.ErrForbidden)

	got, err := f.svc.GetByID(context.Background(), adminActor(), rem.ID)
	require.NoError(t, err)
	assert.Equal(t, rem.ID, got.ID)
}

func TestGenerateReference_Format(t *testing.T) {
	ref := GenerateReference(time.Now())
	assert.Regexp(t, regexp.MustCompile(`^REM-[0-9A-Z]+-[0-9A-Z]{4}$`), ref)

	other := GenerateReference(time.Now())
	assert.NotEqual(t, ref, other)
}
