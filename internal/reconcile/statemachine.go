package reconcile

import (
	"yellowgate/internal/order"
	"yellowgate/internal/yellow"
)

// Outcome is the decision for one (current status, external status) pair.
// Applied=false means the guard did not match: an expected race under
// at-least-once delivery, applied as a logged no-op.
type Outcome struct {
	Applied bool
	// NewStatus is the requested local status when Applied and not a
	// payment completion.
	NewStatus order.OrderStatus
	// PaymentComplete asks the order collaborator to run its terminal
	// "payment done" transition instead of a plain status update.
	PaymentComplete bool
	// Note is the audit line the collaborator persists with the change.
	Note string
	// Recognized is false when the processor sent a status this table
	// does not know about.
	Recognized bool
}

// Evaluate maps an external invoice status onto the order's next local
// status. It is a pure function; guards make reapplication of the same
// event a no-op, so delivery may be duplicated or reordered safely.
//
// The refund guards require the order to be neither processing nor
// completed: once payment is confirmed (or confirmation is in flight)
// a refund event no longer rewrites the order here.
func Evaluate(current order.OrderStatus, event yellow.InvoiceStatus) Outcome {
	switch event {
	case yellow.StatusNew:
		// Invoice issued, nothing to reconcile yet.
		return Outcome{Recognized: true}

	case yellow.StatusAuthorizing:
		// Invoice paid, network confirmation pending.
		if current == order.StatusPending || current == order.StatusOnHold {
			return Outcome{
				Applied:    true,
				NewStatus:  order.StatusProcessing,
				Note:       "Yellow invoice paid. Awaiting network confirmation and payment completed status.",
				Recognized: true,
			}
		}
		return Outcome{Recognized: true}

	case yellow.StatusPaid:
		if current == order.StatusProcessing {
			return Outcome{
				Applied:         true,
				PaymentComplete: true,
				Note:            "Yellow invoice payment confirmed. The order is awaiting fulfillment.",
				Recognized:      true,
			}
		}
		return Outcome{Recognized: true}

	case yellow.StatusRefundOwed:
		// Under- or over-payment detected before completion.
		if current != order.StatusProcessing && current != order.StatusCompleted {
			return Outcome{
				Applied:    true,
				NewStatus:  order.StatusFailed,
				Note:       "Yellow invoice needs refund.",
				Recognized: true,
			}
		}
		return Outcome{Recognized: true}

	case yellow.StatusRefundPaid:
		if current != order.StatusProcessing && current != order.StatusCompleted {
			return Outcome{
				Applied:    true,
				NewStatus:  order.StatusRefunded,
				Note:       "Yellow invoice refunded.",
				Recognized: true,
			}
		}
		return Outcome{Recognized: true}

	case yellow.StatusExpired:
		// Payment window elapsed with no payment.
		if current == order.StatusPending || current == order.StatusOnHold {
			return Outcome{
				Applied:    true,
				NewStatus:  order.StatusFailed,
				Note:       "Yellow invoice expired.",
				Recognized: true,
			}
		}
		return Outcome{Recognized: true}
	}

	return Outcome{}
}
