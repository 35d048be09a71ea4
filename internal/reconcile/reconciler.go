package reconcile

import (
	"context"
	"fmt"

	"yellowgate/internal/logger"
	"yellowgate/internal/order"
	"yellowgate/internal/yellow"

	"go.uber.org/zap"
)

// Reconciler owns the mapping from external invoice status to local
// order status. All mutation goes through the order collaborator's
// single update entry point.
type Reconciler struct {
	orders order.Service
}

func NewReconciler(orders order.Service) *Reconciler {
	return &Reconciler{orders: orders}
}

// Apply resolves the referenced order and applies the guarded transition
// for the external status. Resolution failures are hard errors; a guard
// miss or unrecognized status is a logged no-op.
func (r *Reconciler) Apply(ctx context.Context, orderReference string, status yellow.InvoiceStatus) (Outcome, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("order", orderReference),
		zap.String("invoice_status", string(status)),
	)

	if orderReference == "" {
		return Outcome{}, ErrNoOrderReference
	}

	ord, err := r.orders.GetOrderByNumber(ctx, orderReference)
	if err != nil {
		return Outcome{}, fmt.Errorf("resolving order %q: %w", orderReference, err)
	}

	outcome := Evaluate(ord.Status, status)

	if !outcome.Recognized {
		// Processor statuses newer than this table pass through untouched,
		// but loudly enough for an operator to notice.
		log.Warn("unrecognized invoice status, ignoring",
			zap.String("current_status", string(ord.Status)),
		)
		return outcome, nil
	}

	if !outcome.Applied {
		// Expected under at-least-once delivery: the guard already ran
		// for this event, or the events arrived out of causal order.
		log.Info("transition ignored by guard",
			zap.String("current_status", string(ord.Status)),
		)
		return outcome, nil
	}

	if outcome.PaymentComplete {
		if err := r.orders.MarkPaymentComplete(ctx, ord.ID); err != nil {
			return outcome, fmt.Errorf("marking order %d payment complete: %w", ord.ID, err)
		}
	} else {
		if err := r.orders.UpdateStatus(ctx, ord.ID, outcome.NewStatus); err != nil {
			return outcome, fmt.Errorf("updating order %d status: %w", ord.ID, err)
		}
	}

	if err := r.orders.AddNote(ctx, ord.ID, outcome.Note); err != nil {
		// The transition already landed; a missing audit note is not
		// worth a retry that would re-run it.
		log.Warn("failed to add order note", zap.Error(err))
	}

	log.Info("order reconciled",
		zap.String("previous_status", string(ord.Status)),
		zap.String("new_status", string(outcome.NewStatus)),
		zap.Bool("payment_complete", outcome.PaymentComplete),
	)

	return outcome, nil
}
