package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"yellowgate/internal/logger"
	"yellowgate/internal/order"

	"go.uber.org/zap"
)

type Handler struct {
	Svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{Svc: svc}
}

type payRequest struct {
	OrderID uint `json:"order_id"`
}

type payResponse struct {
	Result   string `json:"result"`
	Redirect string `json:"redirect,omitempty"`
	Message  string `json:"message,omitempty"`
}

// PayHandler starts (or resumes) payment for an order and returns the
// invoice URL to redirect the customer to.
func (h *Handler) PayHandler(w http.ResponseWriter, r *http.Request) {
	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == 0 {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	res, err := h.Svc.ProcessPayment(r.Context(), req.OrderID)
	if err != nil {
		log := logger.FromCtx(r.Context()).With(zap.Uint("order_id", req.OrderID))

		if errors.Is(err, order.ErrOrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		if errors.Is(err, ErrProcessorUnavailable) {
			// Deliberate soft landing: keep the cart, ask the customer
			// to resubmit.
			log.Error("processor unreachable during checkout", zap.Error(err))
			writeJSON(w, http.StatusOK, payResponse{
				Result:  "failure",
				Message: RetryMessage,
			})
			return
		}

		log.Error("checkout failed", zap.Error(err))
		http.Error(w, "checkout failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, payResponse{
		Result:   "success",
		Redirect: res.InvoiceURL,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
