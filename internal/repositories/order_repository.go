package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/mdsweden/storefront-backend/internal/utils"
	"github.com/google/uuid"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order, cartID uuid.UUID) (map[uuid.UUID]int, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetOrderByOrderID(ctx context.Context, orderID string) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, paymentStatus models.PaymentStatus) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// CreateOrder commits the stock decrements, the cart wipe and the order row
// in one transaction. Any line without enough stock rolls the whole thing
// back with ErrInsufficientStock, and a colliding human-readable order id
// surfaces as ErrOrderIDTaken so the caller can regenerate and retry.
//
// Returns the remaining stock per product so the caller can raise low-stock
// alerts after the commit.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order, cartID uuid.UUID) (map[uuid.UUID]int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() { _ = tx.Rollback() }()

	remaining := make(map[uuid.UUID]int, len(order.Items))

	decrementQuery := `
		UPDATE products SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2
		RETURNING stock
	`

	for _, item := range order.Items {
		var left int

		err := tx.QueryRowContext(dbCtx, decrementQuery, item.ProductID, item.Quantity).Scan(&left)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrInsufficientStock
			}

			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}

		remaining[item.ProductID] = left
	}

	_, err = tx.ExecContext(dbCtx, `UPDATE carts SET items = '{}', updated_at = NOW() WHERE id = $1`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order items: %w", err)
	}

	slotJSON, err := json.Marshal(order.DeliverySlot)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal delivery slot: %w", err)
	}

	insertQuery := `
		INSERT INTO orders (id, order_id, user_id, items, total_amount, voucher_id, voucher_used, delivery_slot, address_id, payment_id, payment_status, status, expected_delivery_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	err = tx.QueryRowContext(dbCtx, insertQuery,
		order.ID, order.OrderID, order.UserID, itemsJSON, order.TotalAmount,
		order.VoucherID, order.VoucherUsed, slotJSON, order.AddressID,
		order.PaymentID, order.PaymentStatus, order.Status, order.ExpectedDeliveryDate,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrOrderIDTaken
		}

		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return remaining, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := orderSelectColumns + ` WHERE id = $1`

	return r.scanOrder(r.DB.QueryRowContext(dbCtx, query, id))
}

func (r *orderRepository) GetOrderByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := orderSelectColumns + ` WHERE order_id = $1`

	return r.scanOrder(r.DB.QueryRowContext(dbCtx, query, orderID))
}

const orderSelectColumns = `
	SELECT id, order_id, user_id, items, total_amount, voucher_id, voucher_used, delivery_slot, address_id, payment_id, payment_status, status, expected_delivery_date, created_at, updated_at
	FROM orders`

func (r *orderRepository) scanOrder(row *sql.Row) (*models.Order, error) {
	order := &models.Order{}

	var itemsJSON, slotJSON []byte

	err := row.Scan(&order.ID, &order.OrderID, &order.UserID, &itemsJSON, &order.TotalAmount,
		&order.VoucherID, &order.VoucherUsed, &slotJSON, &order.AddressID,
		&order.PaymentID, &order.PaymentStatus, &order.Status, &order.ExpectedDeliveryDate,
		&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	if err := json.Unmarshal(slotJSON, &order.DeliverySlot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal delivery slot: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := orderSelectColumns + `
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []*models.Order

	for rows.Next() {
		order := &models.Order{}

		var itemsJSON, slotJSON []byte

		err := rows.Scan(&order.ID, &order.OrderID, &order.UserID, &itemsJSON, &order.TotalAmount,
			&order.VoucherID, &order.VoucherUsed, &slotJSON, &order.AddressID,
			&order.PaymentID, &order.PaymentStatus, &order.Status, &order.ExpectedDeliveryDate,
			&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}

		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return nil, 0, fmt.Errorf("failed to unmarshal order items: %w", err)
		}

		if err := json.Unmarshal(slotJSON, &order.DeliverySlot); err != nil {
			return nil, 0, fmt.Errorf("failed to unmarshal delivery slot: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, paymentStatus models.PaymentStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE orders SET payment_status = $1, updated_at = NOW() WHERE id = $2`, paymentStatus, id)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
