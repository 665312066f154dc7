package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/api/middlew"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/service"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/pkg/response"
)

type RiskHandler struct {
	service service.RiskManager
}

func NewRiskHandler(service service.RiskManager) *RiskHandler {
	return &RiskHandler{
		service: service,
	}
}

// FraudCheck godoc
// @Summary      Evaluar riesgo de una transacción prospectiva
// @Description  Corre los chequeos de velocidad y monto sin crear la remesa
// @Tags         risk
// @Accept       json
// @Produce      json
// @Param        request body models.FraudCheckRequest true "Datos de la transacción prospectiva"
// @Success      200 {object} models.RiskAssessment
// @Failure      400 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /fraud/check [post]
func (h *RiskHandler) FraudCheck(w http.ResponseWriter, r *http.Request) {
	const op = "handler.FraudCheck"
	log := middlew.GetLogger(r.Context())

	defer r.Body.Close()

	var req models.FraudCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	if req.OriginIP == "" {
		req.OriginIP = middlew.ClientIP(r)
	}

	assessment, err := h.service.Evaluate(r.Context(), req)
	if err != nil {
		log.Error("risk evaluation failed", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Risk evaluation failed")
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, assessment)
}

// ListFlags godoc
// @Summary      Listar banderas de riesgo sin resolver
// @Tags         risk
// @Produce      json
// @Param        limit query int false "Máximo de banderas a devolver"
// @Success      200 {array} models.RiskFlag
// @Security     BearerAuth
// @Router       /risk/flags [get]
func (h *RiskHandler) ListFlags(w http.ResponseWriter, r *http.Request) {
	const op = "handler.ListFlags"
	log := middlew.GetLogger(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "limit must be an integer")
			return
		}
		limit = parsed
	}

	flags, err := h.service.ListFlags(r.Context(), limit)
	if err != nil {
		log.Error("failed to list risk flags", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to list risk flags")
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, flags)
}

// ResolveFlag godoc
// @Summary      Resolver una bandera de riesgo
// @Description  Marca la bandera como atendida por cumplimiento
// @Tags         risk
// @Accept       json
// @Produce      json
// @Param        flagID path string true "ID de la bandera"
// @Param        request body models.ResolveFlagRequest true "Nota de resolución"
// @Success      204
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /risk/flags/{flagID}/resolve [post]
func (h *RiskHandler) ResolveFlag(w http.ResponseWriter, r *http.Request) {
	const op = "handler.ResolveFlag"
	log := middlew.GetLogger(r.Context())

	idStr := chi.URLParam(r, "flagID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Warn("invalid UUID", slog.String("op", op), slog.String("uuid", idStr))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "Invalid flag ID format")
		return
	}

	defer r.Body.Close()

	var req models.ResolveFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	actor := middlew.GetActor(r.Context())

	if err := h.service.ResolveFlag(r.Context(), actor, id, req.Note); err != nil {
		switch {
		case errors.Is(err, custom_err.ErrForbidden):
			response.WriteJSONError(w, log, http.StatusForbidden, "forbidden", "Admin role required")
		case errors.Is(err, custom_err.ErrNotFound):
			response.WriteJSONError(w, log, http.StatusNotFound, "not_found", "Risk flag not found")
		default:
			log.Error("failed to resolve risk flag", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to resolve risk flag")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
