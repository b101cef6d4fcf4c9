package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mapposter-backend/internal/models"
)

const orderColumns = `id, shop_order_id, customer_ip, email, lat, lng,
		map_style, map_size, text_front, text_back, pins, preview_token,
		generated, uploaded, created_at`

// OrderStore persists checkout submissions. Orders are insert-only from the
// API's point of view.
type OrderStore struct {
	db *sql.DB
}

func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error) {
	var pins any
	if len(o.Pins) > 0 {
		pins = []byte(o.Pins)
	}

	var stored models.Order
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO orders (shop_order_id, customer_ip, email, lat, lng,
			map_style, map_size, text_front, text_back, pins, preview_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+orderColumns, o.ShopOrderID, o.CustomerIP, o.Email, o.Lat, o.Lng,
		o.MapStyle, o.MapSize, o.TextFront, o.TextBack, pins, o.PreviewToken,
	).Scan(
		&stored.ID, &stored.ShopOrderID, &stored.CustomerIP, &stored.Email,
		&stored.Lat, &stored.Lng, &stored.MapStyle, &stored.MapSize,
		&stored.TextFront, &stored.TextBack, &stored.Pins, &stored.PreviewToken,
		&stored.Generated, &stored.Uploaded, &stored.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &stored, nil
}

func (s *OrderStore) GetOrderByToken(ctx context.Context, token string) (*models.Order, error) {
	var order models.Order
	err := s.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE preview_token = $1
	`, token).Scan(
		&order.ID, &order.ShopOrderID, &order.CustomerIP, &order.Email,
		&order.Lat, &order.Lng, &order.MapStyle, &order.MapSize,
		&order.TextFront, &order.TextBack, &order.Pins, &order.PreviewToken,
		&order.Generated, &order.Uploaded, &order.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order by token: %w", err)
	}

	return &order, nil
}

// ListOrders returns the most recent orders, newest first.
func (s *OrderStore) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID, &order.ShopOrderID, &order.CustomerIP, &order.Email,
			&order.Lat, &order.Lng, &order.MapStyle, &order.MapSize,
			&order.TextFront, &order.TextBack, &order.Pins, &order.PreviewToken,
			&order.Generated, &order.Uploaded, &order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}
