package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/api/middlew"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/service"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/pkg/response"
)

type RemittanceHandler struct {
	service service.Remitter
}

func NewRemittanceHandler(service service.Remitter) *RemittanceHandler {
	return &RemittanceHandler{
		service: service,
	}
}

// CreateRemittance godoc
// @Summary      Crear una remesa
// @Description  Cotiza, evalúa riesgo y registra la remesa en estado QUOTED
// @Tags         remittances
// @Accept       json
// @Produce      json
// @Param        request body models.CreateRemittanceRequest true "Datos de la remesa"
// @Success      201 {object} models.RemittanceView
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /remittances [post]
func (h *RemittanceHandler) CreateRemittance(w http.ResponseWriter, r *http.Request) {
	const op = "handler.CreateRemittance"
	log := middlew.GetLogger(r.Context())

	defer r.Body.Close()

	var req models.CreateRemittanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	actor := middlew.GetActor(r.Context())

	rem, err := h.service.Create(r.Context(), actor, middlew.ClientIP(r), req)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrInvalidInput):
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_input", err.Error())
		case errors.Is(err, custom_err.ErrInvalidChannel):
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_channel", "Unsupported payout channel")
		case errors.Is(err, custom_err.ErrInvalidAmount):
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_amount", "Principal must be positive")
		case errors.Is(err, custom_err.ErrRiskBlocked):
			log.Warn("creation blocked by risk engine", slog.String("op", op))
			response.WriteJSONError(w, log, http.StatusForbidden, "risk_blocked", "Transaction blocked by risk controls")
		case errors.Is(err, custom_err.ErrNoActiveSchedule), errors.Is(err, custom_err.ErrNotProfitable):
			response.WriteJSONError(w, log, http.StatusBadRequest, "quote_rejected", "Unable to price this remittance")
		default:
			log.Error("failed to create remittance", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to create remittance")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusCreated, rem.View(actor.IsAdmin()))
}

// ConfirmRemittance godoc
// @Summary      Confirmar una remesa
// @Description  Debita el float del agente y asienta las partidas contables en una sola transacción
// @Tags         remittances
// @Produce      json
// @Param        remittanceID path string true "ID de la remesa"
// @Success      200 {object} models.ConfirmResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /remittances/{remittanceID}/confirm [post]
func (h *RemittanceHandler) ConfirmRemittance(w http.ResponseWriter, r *http.Request) {
	const op = "handler.ConfirmRemittance"
	log := middlew.GetLogger(r.Context())

	id, ok := parseRemittanceID(w, r, log)
	if !ok {
		return
	}

	actor := middlew.GetActor(r.Context())

	rem, err := h.service.Confirm(r.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrNotFound):
			response.WriteJSONError(w, log, http.StatusNotFound, "not_found", "Remittance not found")
		case errors.Is(err, custom_err.ErrForbidden):
			response.WriteJSONError(w, log, http.StatusForbidden, "forbidden", "Remittance belongs to another agent")
		case errors.Is(err, custom_err.ErrInvalidState):
			response.WriteJSONError(w, log, http.StatusConflict, "invalid_state", "Remittance is not in QUOTED state")
		case errors.Is(err, custom_err.ErrInsufficientFloat):
			log.Warn("insufficient agent float", slog.String("op", op), slog.String("id", id.String()))
			response.WriteJSONError(w, log, http.StatusBadRequest, "insufficient_float", "Agent float balance is insufficient")
		default:
			log.Error("failed to confirm remittance", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to confirm remittance")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, models.ConfirmResponse{
		ID:          rem.ID,
		Reference:   rem.Reference,
		State:       rem.State,
		ReceiptHash: rem.ReceiptHash,
		ConfirmedAt: *rem.ConfirmedAt,
	})
}

// AdvanceState godoc
// @Summary      Avanzar el estado de una remesa
// @Description  Aplica transiciones posteriores a la confirmación (SENT, PAID, SETTLED, FAILED, REFUNDED)
// @Tags         remittances
// @Accept       json
// @Produce      json
// @Param        remittanceID path string true "ID de la remesa"
// @Param        request body models.AdvanceStateRequest true "Estado destino"
// @Success      200 {object} models.RemittanceView
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /remittances/{remittanceID}/state [post]
func (h *RemittanceHandler) AdvanceState(w http.ResponseWriter, r *http.Request) {
	const op = "handler.AdvanceState"
	log := middlew.GetLogger(r.Context())

	id, ok := parseRemittanceID(w, r, log)
	if !ok {
		return
	}

	defer r.Body.Close()

	var req models.AdvanceStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	actor := middlew.GetActor(r.Context())

	rem, err := h.service.AdvanceState(r.Context(), actor, id, req)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrNotFound):
			response.WriteJSONError(w, log, http.StatusNotFound, "not_found", "Remittance not found")
		case errors.Is(err, custom_err.ErrForbidden):
			response.WriteJSONError(w, log, http.StatusForbidden, "forbidden", "Admin role required")
		case errors.Is(err, custom_err.ErrInvalidInput):
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_input", err.Error())
		case errors.Is(err, custom_err.ErrInvalidState):
			response.WriteJSONError(w, log, http.StatusConflict, "invalid_transition", "Transition not allowed from the current state")
		default:
			log.Error("failed to advance state", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to advance state")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, rem.View(actor.IsAdmin()))
}

// GetRemittance godoc
// @Summary      Consultar una remesa
// @Tags         remittances
// @Produce      json
// @Param        remittanceID path string true "ID de la remesa"
// @Success      200 {object} models.RemittanceView
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /remittances/{remittanceID} [get]
func (h *RemittanceHandler) GetRemittance(w http.ResponseWriter, r *http.Request) {
	const op = "handler.GetRemittance"
	log := middlew.GetLogger(r.Context())

	id, ok := parseRemittanceID(w, r, log)
	if !ok {
		return
	}

	actor := middlew.GetActor(r.Context())

	rem, err := h.service.GetByID(r.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrNotFound):
			response.WriteJSONError(w, log, http.StatusNotFound, "not_found", "Remittance not found")
		case errors.Is(err, custom_err.ErrForbidden):
			response.WriteJSONError(w, log, http.StatusForbidden, "forbidden", "Remittance belongs to another agent")
		default:
			log.Error("failed to get remittance", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to retrieve remittance")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, rem.View(actor.IsAdmin()))
}

func parseRemittanceID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "remittanceID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Warn("invalid UUID", slog.String("uuid", idStr))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "Invalid remittance ID format")
		return uuid.Nil, false
	}
	return id, true
}
