package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/api/middlew"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
)

type MockRemitter struct {
	mock.Mock
}

func (m *MockRemitter) Create(ctx context.Context, actor models.Actor, originIP string, req models.CreateRemittanceRequest) (*models.Remittance, error) {
	args := m.Called(ctx, actor, originIP, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Remittance), args.Error(1)
}

func (m *MockRemitter) Confirm(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Remittance, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Remittance), args.Error(1)
}

func (m *MockRemitter) AdvanceState(ctx context.Context, actor models.Actor, id uuid.UUID, req models.AdvanceStateRequest) (*models.Remittance, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Remittance), args.Error(1)
}

func (m *MockRemitter) GetByID(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Remittance, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Remittance), args.Error(1)
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

// serveAs routes the request through chi with the given actor already in
// context, mirroring what RequireAuth does in production.
func serveAs(actor models.Actor, method, pattern string, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(w, r.WithContext(middlew.WithActor(r.Context(), actor)))
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
