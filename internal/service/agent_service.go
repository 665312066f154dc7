package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/storage/postgres"
)

type AgentFloats interface {
	GetFloat(ctx context.Context, actor models.Actor, agentID uuid.UUID) (*models.AgentFloatResponse, error)
}

type AgentService struct {
	repo postgres.AgentRepository
}

func NewAgentService(repo postgres.AgentRepository) *AgentService {
	return &AgentService{repo: repo}
}

// GetFloat devuelve el saldo de caja; cada agente solo ve el suyo.
func (s *AgentService) GetFloat(ctx context.Context, actor models.Actor, agentID uuid.UUID) (*models.AgentFloatResponse, error) {
	const op = "service.GetAgentFloat"

	if !actor.IsAdmin() && actor.AgentID != agentID {
		return nil, custom_err.ErrForbidden
	}

	agent, err := s.repo.GetByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, custom_err.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.AgentFloatResponse{
		AgentID:         agent.ID,
		FloatBalanceDOP: agent.FloatBalanceDOP,
		Currency:        models.CurrencyDOP,
	}, nil
}
