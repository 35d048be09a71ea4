package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"yellowgate/internal/logger"
	"yellowgate/internal/order"
	"yellowgate/internal/reconcile"
	"yellowgate/internal/yellow"

	"go.uber.org/zap"
)

// Verifier authenticates inbound IPNs. Implemented by yellow.Signer.
type Verifier interface {
	VerifyIPN(targetURL, signature, apiKeyID, nonce string, body []byte) bool
}

// Reconciler applies an authenticated status notification to the order.
type Reconciler interface {
	Apply(ctx context.Context, orderReference string, status yellow.InvoiceStatus) (reconcile.Outcome, error)
}

type Handler struct {
	Verifier    Verifier
	Reconciler  Reconciler
	CallbackURL string
}

func NewHandler(verifier Verifier, reconciler Reconciler, callbackURL string) *Handler {
	return &Handler{
		Verifier:    verifier,
		Reconciler:  reconciler,
		CallbackURL: callbackURL,
	}
}

// IPNHandler processes a processor notification. Authentication completes
// before any byte of the body is trusted; an unauthenticated request
// terminates with 401 and touches nothing.
func (h *Handler) IPNHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	sign := r.Header.Get("API-SIGN")
	apiKey := r.Header.Get("API-KEY")
	nonce := r.Header.Get("API-NONCE")

	if !h.Verifier.VerifyIPN(h.CallbackURL, sign, apiKey, nonce, body) {
		log.Warn("rejected unauthenticated IPN",
			zap.String("ip", r.RemoteAddr),
			zap.Bool("has_signature", sign != ""),
		)
		http.Error(w, "invalid IPN signature", http.StatusUnauthorized)
		return
	}

	var payload yellow.IPNPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Error("authenticated IPN with malformed body", zap.Error(err))
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	outcome, err := h.Reconciler.Apply(r.Context(), payload.Order, payload.Status)
	if err != nil {
		// Authenticated but unresolvable: data inconsistency, not a
		// normal race. Never downgraded to a soft ok.
		log.Error("IPN reconciliation failed",
			zap.String("order", payload.Order),
			zap.String("status", string(payload.Status)),
			zap.Error(err),
		)

		if errors.Is(err, reconcile.ErrNoOrderReference) || errors.Is(err, order.ErrOrderNotFound) {
			http.Error(w, "order could not be resolved", http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "failed to update order", http.StatusInternalServerError)
		return
	}

	log.Info("IPN processed",
		zap.String("order", payload.Order),
		zap.String("status", string(payload.Status)),
		zap.Bool("applied", outcome.Applied),
	)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
