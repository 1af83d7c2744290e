package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/neighborfit/neighborfit/internal/payment"
)

// PaymentHandlers holds dependencies for payment-related HTTP handlers.
type PaymentHandlers struct {
	payments *payment.Service
}

// NewPaymentHandlers creates a new PaymentHandlers instance.
func NewPaymentHandlers(payments *payment.Service) *PaymentHandlers {
	return &PaymentHandlers{payments: payments}
}

// PaymentResultRequest represents the provider's opaque success/failure
// callback for a checkout.
type PaymentResultRequest struct {
	RecordID  string `json:"record_id"`
	Succeeded bool   `json:"succeeded"`
}

// Result handles POST /payments/result - applies a checkout outcome.
// A failed payment rolls the optimistic join back; duplicate callbacks
// for records already settled are acknowledged without effect.
func (h *PaymentHandlers) Result(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r.Context(), http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	var req PaymentResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON in request body")
		return
	}
	if req.RecordID == "" {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeValidation, "record_id is required")
		return
	}

	if err := h.payments.HandleResult(req.RecordID, req.Succeeded); err != nil {
		if errors.Is(err, payment.ErrRecordNotFound) {
			WriteError(w, r.Context(), http.StatusNotFound, ErrCodeNotFound, "Payment record not found")
			return
		}
		slog.ErrorContext(r.Context(), "failed to apply payment result", "error", err, "record_id", req.RecordID)
		WriteError(w, r.Context(), http.StatusInternalServerError, ErrCodeInternal, "Failed to apply payment result")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
