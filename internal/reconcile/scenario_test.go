package reconcile

import (
	"context"
	"testing"

	"yellowgate/internal/order"
	"yellowgate/internal/yellow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOrderStore is a minimal in-memory order.Service for walking full
// notification sequences without mock choreography.
type fakeOrderStore struct {
	orders map[string]*order.Order
	notes  map[uint][]string
}

func newFakeOrderStore(orders ...*order.Order) *fakeOrderStore {
	s := &fakeOrderStore{
		orders: make(map[string]*order.Order),
		notes:  make(map[uint][]string),
	}
	for _, o := range orders {
		s.orders[o.Number] = o
	}
	return s
}

func (s *fakeOrderStore) byID(id uint) *order.Order {
	for _, o := range s.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func (s *fakeOrderStore) GetOrder(_ context.Context, id uint) (*order.Order, error) {
	if o := s.byID(id); o != nil {
		return o, nil
	}
	return nil, order.ErrOrderNotFound
}

func (s *fakeOrderStore) GetOrderByNumber(_ context.Context, number string) (*order.Order, error) {
	if o, ok := s.orders[number]; ok {
		return o, nil
	}
	return nil, order.ErrOrderNotFound
}

func (s *fakeOrderStore) CurrentStatus(_ context.Context, id uint) (order.OrderStatus, error) {
	if o := s.byID(id); o != nil {
		return o.Status, nil
	}
	return "", order.ErrOrderNotFound
}

func (s *fakeOrderStore) UpdateStatus(_ context.Context, id uint, status order.OrderStatus) error {
	o := s.byID(id)
	if o == nil {
		return order.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (s *fakeOrderStore) AddNote(_ context.Context, id uint, note string) error {
	s.notes[id] = append(s.notes[id], note)
	return nil
}

func (s *fakeOrderStore) MarkPaymentComplete(_ context.Context, id uint) error {
	return s.UpdateStatus(context.Background(), id, order.StatusCompleted)
}

func (s *fakeOrderStore) ReduceStock(context.Context, uint) error { return nil }

func (s *fakeOrderStore) ClearCart(context.Context, string) error { return nil }

// Pending order walks authorizing → paid, and a redelivered paid leaves
// it completed.
func TestReconciler_PaymentLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newFakeOrderStore(&order.Order{ID: 1001, Number: "1001", Status: order.StatusPending})
	r := NewReconciler(store)

	out, err := r.Apply(ctx, "1001", yellow.StatusAuthorizing)
	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Equal(t, order.StatusProcessing, store.orders["1001"].Status)

	out, err = r.Apply(ctx, "1001", yellow.StatusPaid)
	require.NoError(t, err)
	assert.True(t, out.PaymentComplete)
	assert.Equal(t, order.StatusCompleted, store.orders["1001"].Status)

	// Processor retry of the same notification.
	out, err = r.Apply(ctx, "1001", yellow.StatusPaid)
	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.Equal(t, order.StatusCompleted, store.orders["1001"].Status)

	assert.Len(t, store.notes[1001], 2, "one note per effective transition")
}

// On-hold order expires; further payment notifications for the dead
// invoice change nothing.
func TestReconciler_ExpiryLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newFakeOrderStore(&order.Order{ID: 1002, Number: "1002", Status: order.StatusOnHold})
	r := NewReconciler(store)

	out, err := r.Apply(ctx, "1002", yellow.StatusExpired)
	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Equal(t, order.StatusFailed, store.orders["1002"].Status)

	out, err = r.Apply(ctx, "1002", yellow.StatusPaid)
	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.Equal(t, order.StatusFailed, store.orders["1002"].Status)
}

// A paid notification arriving before authorizing is a guarded no-op;
// the order only advances once authorizing lands.
func TestReconciler_OutOfOrderDelivery(t *testing.T) {
	ctx := context.Background()
	store := newFakeOrderStore(&order.Order{ID: 1003, Number: "1003", Status: order.StatusPending})
	r := NewReconciler(store)

	out, err := r.Apply(ctx, "1003", yellow.StatusPaid)
	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.Equal(t, order.StatusPending, store.orders["1003"].Status)

	_, err = r.Apply(ctx, "1003", yellow.StatusAuthorizing)
	require.NoError(t, err)
	_, err = r.Apply(ctx, "1003", yellow.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCompleted, store.orders["1003"].Status)
}

func TestReconciler_RefundLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newFakeOrderStore(&order.Order{ID: 1004, Number: "1004", Status: order.StatusPending})
	r := NewReconciler(store)

	out, err := r.Apply(ctx, "1004", yellow.StatusRefundOwed)
	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Equal(t, order.StatusFailed, store.orders["1004"].Status)

	out, err = r.Apply(ctx, "1004", yellow.StatusRefundPaid)
	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Equal(t, order.StatusRefunded, store.orders["1004"].Status)
}
