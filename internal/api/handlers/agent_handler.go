package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/api/middlew"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/service"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/pkg/response"
)

type AgentHandler struct {
	service service.AgentFloats
}

func NewAgentHandler(service service.AgentFloats) *AgentHandler {
	return &AgentHandler{
		service: service,
	}
}

// GetFloat godoc
// @Summary      Consultar el float de un agente
// @Tags         agents
// @Produce      json
// @Param        agentID path string true "ID del agente"
// @Success      200 {object} models.AgentFloatResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /agents/{agentID}/float [get]
func (h *AgentHandler) GetFloat(w http.ResponseWriter, r *http.Request) {
	const op = "handler.GetAgentFloat"
	log := middlew.GetLogger(r.Context())

	idStr := chi.URLParam(r, "agentID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Warn("invalid UUID", slog.String("op", op), slog.String("uuid", idStr))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "Invalid agent ID format")
		return
	}

	actor := middlew.GetActor(r.Context())

	float, err := h.service.GetFloat(r.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrForbidden):
			response.WriteJSONError(w, log, http.StatusForbidden, "forbidden", "Agents can only consult their own float")
		case errors.Is(err, custom_err.ErrNotFound):
			response.WriteJSONError(w, log, http.StatusNotFound, "not_found", "Agent not found")
		default:
			log.Error("failed to get agent float", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to retrieve agent float")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, float)
}
