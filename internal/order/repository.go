package order

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	GetOrder(ctx context.Context, id uint) (*Order, error)
	GetOrderByNumber(ctx context.Context, number string) (*Order, error)
	UpdateStatus(ctx context.Context, id uint, status OrderStatus) error
	AddNote(ctx context.Context, id uint, note string) error
	MarkPaymentComplete(ctx context.Context, id uint) error
	ReduceStock(ctx context.Context, id uint) error
	ClearCart(ctx context.Context, sessionID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, order_number, status, total, currency, session_id, paid_at, created_at, updated_at`

func (r *repository) GetOrder(ctx context.Context, id uint) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders WHERE id = $1
	`, id)

	return scanOrder(row)
}

func (r *repository) GetOrderByNumber(ctx context.Context, number string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders WHERE order_number = $1
	`, number)

	return scanOrder(row)
}

func scanOrder(row *sql.Row) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.Number, &o.Status, &o.Total, &o.Currency,
		&o.SessionID, &o.PaidAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) AddNote(ctx context.Context, id uint, note string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO order_notes (order_id, note) VALUES ($1, $2)
	`, id, note)
	return err
}

func (r *repository) MarkPaymentComplete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, paid_at = now(), updated_at = now() WHERE id = $2
	`, StatusCompleted, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) ReduceStock(ctx context.Context, id uint) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products p
		SET stock = p.stock - oi.quantity
		FROM order_items oi
		WHERE oi.order_id = $1 AND oi.product_id = p.id
	`, id)
	return err
}

func (r *repository) ClearCart(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items WHERE session_id = $1
	`, sessionID)
	return err
}
