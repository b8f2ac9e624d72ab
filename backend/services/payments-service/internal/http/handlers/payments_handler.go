package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"evzone/backend/libs/auth"
	"evzone/backend/libs/httpx"
	"evzone/backend/libs/request"
	"evzone/backend/services/payments-service/internal/service"
)

// PaymentsHandler serves invoices, transactions and payment intents.
type PaymentsHandler struct {
	svc    *service.PaymentsService
	logger *zap.Logger
}

// NewPaymentsHandler builds handler set.
func NewPaymentsHandler(svc *service.PaymentsService, logger *zap.Logger) *PaymentsHandler {
	return &PaymentsHandler{svc: svc, logger: logger}
}

// Invoices handles GET /payments/invoices.
func (h *PaymentsHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	input, err := parseListInput(r.URL.Query())
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to list invoices")
		return
	}
	page, err := h.svc.ListInvoices(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to list invoices")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, page)
}

// Transactions handles GET /payments/transactions.
func (h *PaymentsHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	input, err := parseListInput(r.URL.Query())
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to list transactions")
		return
	}
	page, err := h.svc.ListTransactions(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to list transactions")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, page)
}

// CreateIntent handles POST /payments/intent. The owner is the token subject.
func (h *PaymentsHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var input service.CreateIntentInput
	if err := request.DecodeJSON(r, &input); err != nil {
		writeServiceError(w, h.logger, err, "failed to create payment intent")
		return
	}

	var userID string
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		userID = claims.UserID
	}

	intent, err := h.svc.CreateIntent(r.Context(), userID, input)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to create payment intent")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, intent)
}
