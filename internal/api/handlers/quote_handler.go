package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/api/middlew"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/custom_err"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/pricing"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/service"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/pkg/response"
)

type QuoteHandler struct {
	service service.Quoter
}

func NewQuoteHandler(service service.Quoter) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// CreateQuote godoc
// @Summary      Cotizar una remesa
// @Description  Calcula comisiones, tasa de cambio y monto a recibir para un principal en DOP
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        request body models.QuoteRequest true "Principal y canal de pago"
// @Success      200 {object} models.PublicQuoteView
// @Failure      400 {object} response.ErrorResponse
// @Router       /quote [post]
func (h *QuoteHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	const op = "handler.CreateQuote"
	log := middlew.GetLogger(r.Context())

	defer r.Body.Close()

	var req models.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	quote, err := h.service.Quote(r.Context(), req)
	if err != nil {
		actor, authed := middlew.ActorFromContext(r.Context())

		var npe *pricing.NotProfitableError
		switch {
		case errors.Is(err, custom_err.ErrInvalidChannel):
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_channel", "Unsupported payout channel")
		case errors.Is(err, custom_err.ErrInvalidAmount):
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_amount", "Principal must be positive")
		case errors.Is(err, custom_err.ErrNoActiveSchedule):
			response.WriteJSONError(w, log, http.StatusBadRequest, "no_active_schedule", "No active fee schedule for this corridor and channel")
		case errors.As(err, &npe):
			// El déficit interno solo se expone a administradores.
			msg := "Quote rejected"
			if authed && actor.IsAdmin() {
				msg = "Quote rejected, deficit " + npe.Deficit.StringFixed(2) + " DOP"
			}
			response.WriteJSONError(w, log, http.StatusBadRequest, "not_profitable", msg)
		default:
			log.Error("failed to build quote", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to build quote")
		}
		return
	}

	if actor, ok := middlew.ActorFromContext(r.Context()); ok && actor.IsAdmin() {
		response.WriteJSONSuccess(w, log, http.StatusOK, quote.AdminView())
		return
	}
	response.WriteJSONSuccess(w, log, http.StatusOK, quote.PublicView())
}
