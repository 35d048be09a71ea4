package order

import (
	"context"
	"fmt"

	"yellowgate/internal/logger"

	"go.uber.org/zap"
)

// Service is the single entry point through which the reconciliation
// layer touches order state. Nothing else mutates orders directly.
type Service interface {
	GetOrder(ctx context.Context, id uint) (*Order, error)
	GetOrderByNumber(ctx context.Context, number string) (*Order, error)
	CurrentStatus(ctx context.Context, id uint) (OrderStatus, error)
	UpdateStatus(ctx context.Context, id uint, status OrderStatus) error
	AddNote(ctx context.Context, id uint, note string) error
	MarkPaymentComplete(ctx context.Context, id uint) error
	ReduceStock(ctx context.Context, id uint) error
	ClearCart(ctx context.Context, sessionID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetOrder(ctx context.Context, id uint) (*Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *service) GetOrderByNumber(ctx context.Context, number string) (*Order, error) {
	if number == "" {
		return nil, ErrOrderNotFound
	}
	return s.repo.GetOrderByNumber(ctx, number)
}

func (s *service) CurrentStatus(ctx context.Context, id uint) (OrderStatus, error) {
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return "", err
	}
	return o.Status, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uint, status OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.Uint("order_id", id),
		zap.String("status", string(status)),
	)
	return nil
}

func (s *service) AddNote(ctx context.Context, id uint, note string) error {
	return s.repo.AddNote(ctx, id, note)
}

func (s *service) MarkPaymentComplete(ctx context.Context, id uint) error {
	if err := s.repo.MarkPaymentComplete(ctx, id); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("order payment complete", zap.Uint("order_id", id))
	return nil
}

func (s *service) ReduceStock(ctx context.Context, id uint) error {
	return s.repo.ReduceStock(ctx, id)
}

func (s *service) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.repo.ClearCart(ctx, sessionID)
}
