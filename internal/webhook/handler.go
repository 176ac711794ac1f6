package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/dm-webhook/internal/dialogflow"
	apperrors "github.com/vladimiradmaev/dm-webhook/internal/errors"
	"github.com/vladimiradmaev/dm-webhook/internal/logger"
	"github.com/vladimiradmaev/dm-webhook/internal/services"
)

// Handler serves the fulfillment endpoint: decode the NLU request, dispatch
// to the intent handler, answer with fulfillmentMessages. Handler failures
// never leak to the platform as HTTP errors; they become safe fallback
// replies so the conversation keeps going.
type Handler struct {
	dispatcher *services.Dispatcher
	errHandler *apperrors.Handler
}

func NewHandler(dispatcher *services.Dispatcher) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		errHandler: apperrors.NewHandler(logger.GetLogger()),
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", "error", err.Error())
	}
}

// Fulfill handles POST /webhook.
func (h *Handler) Fulfill(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	log := logger.WithFields("request_id", requestID)

	var req dialogflow.WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Malformed webhook body", "error", err.Error())
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	dispatchReq := &services.Request{
		Intent: services.Intent(req.QueryResult.Intent.DisplayName),
		UserID: req.UserID(),
		Date:   req.MessageDate(),
		Text:   req.MessageText(),
		Params: services.Params(req.QueryResult.Parameters),
	}

	log.Info("Webhook request",
		"intent", req.QueryResult.Intent.DisplayName,
		"user_id", dispatchReq.UserID,
		"source", req.OriginalDetectIntentRequest.Source,
	)

	replies, err := h.dispatcher.Dispatch(r.Context(), dispatchReq)
	if err != nil {
		h.errHandler.Handle(r.Context(), err)
		replies = fallbackReplies(err)
	}

	writeJSON(w, http.StatusOK, dialogflow.NewResponse(replies))
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fallbackReplies maps a handler failure to the user-facing reply list.
func fallbackReplies(err error) []string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "STORE_READ_FAILED":
			return []string{services.ReplyReadError}
		case "STORE_WRITE_FAILED":
			return []string{services.ReplyWriteError}
		case "UNKNOWN_INTENT":
			return []string{services.ReplyUnknownIntent}
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return []string{services.ReplyReadError}
	}
	return []string{services.ReplyUnknownIntent}
}
