package order

import (
	"time"
)

// OrderStatus values mirror the store's own status vocabulary. The
// reconciliation layer only reads and requests these, it never invents
// new ones.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusOnHold     OrderStatus = "on-hold"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusFailed     OrderStatus = "failed"
	StatusRefunded   OrderStatus = "refunded"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusOnHold, StatusProcessing, StatusCompleted,
		StatusFailed, StatusRefunded, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID        uint
	Number    string
	Status    OrderStatus
	Total     float64
	Currency  string
	SessionID string
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []OrderItem
}

type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID uint
	Quantity  int
	Price     float64
}

type OrderNote struct {
	ID        uint
	OrderID   uint
	Note      string
	CreatedAt time.Time
}
