package checkout

import (
	"context"
	"fmt"
	"sync"

	"yellowgate/internal/logger"
	"yellowgate/internal/order"
	"yellowgate/internal/yellow"

	"go.uber.org/zap"
)

// InvoiceCreator is the slice of the processor client checkout needs.
type InvoiceCreator interface {
	CreateInvoice(ctx context.Context, orderNumber string, amount float64, currency string) (*yellow.Invoice, error)
}

type PaymentResult struct {
	InvoiceURL string
	// Reused reports whether an already-active invoice was returned
	// instead of creating a new one.
	Reused bool
}

type Service interface {
	ProcessPayment(ctx context.Context, orderID uint) (*PaymentResult, error)
}

type service struct {
	orders  order.Service
	gateway InvoiceCreator
	cache   InvoiceCache

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewService(orders order.Service, gateway InvoiceCreator, cache InvoiceCache) Service {
	return &service{
		orders:  orders,
		gateway: gateway,
		cache:   cache,
		locks:   make(map[uint]*sync.Mutex),
	}
}

// orderLock serializes concurrent checkout attempts for the same order.
// Orders are independent, so there is no cross-order locking.
func (s *service) orderLock(orderID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[orderID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[orderID] = l
	}
	return l
}

// ProcessPayment returns the invoice URL the customer should be sent to.
// A cached invoice is reused unless the order has failed; a failed order
// always gets a fresh invoice and is reset to pending.
func (s *service) ProcessPayment(ctx context.Context, orderID uint) (*PaymentResult, error) {
	lock := s.orderLock(orderID)
	lock.Lock()
	defer lock.Unlock()

	log := logger.FromCtx(ctx).With(zap.Uint("order_id", orderID))

	ord, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("loading order %d: %w", orderID, err)
	}

	if url, ok := s.cache.Get(orderID); ok && ord.Status != order.StatusFailed {
		log.Info("reusing active invoice for order")
		return &PaymentResult{InvoiceURL: url, Reused: true}, nil
	}

	inv, err := s.gateway.CreateInvoice(ctx, ord.Number, ord.Total, ord.Currency)
	if err != nil {
		log.Error("invoice creation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrProcessorUnavailable, err)
	}

	if ord.Status != order.StatusFailed {
		// New order: record the invoice, commit the stock, drop the cart.
		if err := s.orders.AddNote(ctx, ord.ID, "Order created with Yellow invoice of ID: "+inv.ID); err != nil {
			log.Warn("failed to add order note", zap.Error(err))
		}
		if err := s.orders.ReduceStock(ctx, ord.ID); err != nil {
			return nil, fmt.Errorf("reducing stock for order %d: %w", ord.ID, err)
		}
		if err := s.orders.ClearCart(ctx, ord.SessionID); err != nil {
			log.Warn("failed to clear cart", zap.Error(err))
		}
	} else {
		// Failed order retrying payment: the old invoice is dead, the
		// stock was already committed on the first attempt.
		if err := s.orders.AddNote(ctx, ord.ID, "New Yellow invoice created of ID: "+inv.ID); err != nil {
			log.Warn("failed to add order note", zap.Error(err))
		}
		if err := s.orders.UpdateStatus(ctx, ord.ID, order.StatusPending); err != nil {
			return nil, fmt.Errorf("resetting failed order %d: %w", ord.ID, err)
		}
	}

	s.cache.Put(orderID, inv.URL)

	log.Info("invoice attached to order", zap.String("invoice_id", inv.ID))

	return &PaymentResult{InvoiceURL: inv.URL}, nil
}
