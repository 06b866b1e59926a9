package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"flamegold-ordering/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, order domain.Order) (string, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return "", fmt.Errorf("marshal order items: %w", err)
	}

	const q = `
INSERT INTO orders (
	customer_name, customer_email, customer_phone,
	order_type, delivery_address, delivery_postcode,
	items, subtotal, delivery_fee, total,
	payment_method, special_instructions, estimated_time
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id::text
`
	var id string
	err = r.pool.QueryRow(ctx, q,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		string(order.Type),
		order.DeliveryAddress,
		order.DeliveryPostcode,
		items,
		order.Subtotal,
		order.DeliveryFee,
		order.Total,
		string(order.PaymentMethod),
		order.SpecialInstructions,
		order.EstimatedTime,
	).Scan(&id)
	if err != nil {
		r.logger.Printf("order repo: create customer=%q error=%v", order.CustomerEmail, err)
		return "", err
	}
	return id, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT id::text, customer_name, customer_email, customer_phone,
       order_type, delivery_address, delivery_postcode,
       items, subtotal, delivery_fee, total,
       payment_method, special_instructions, estimated_time, created_at
FROM orders
WHERE id = $1
`
	var (
		o             domain.Order
		orderType     string
		paymentMethod string
		items         []byte
	)
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&o.ID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&orderType,
		&o.DeliveryAddress,
		&o.DeliveryPostcode,
		&items,
		&o.Subtotal,
		&o.DeliveryFee,
		&o.Total,
		&paymentMethod,
		&o.SpecialInstructions,
		&o.EstimatedTime,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	o.Type = domain.OrderType(orderType)
	o.PaymentMethod = domain.PaymentMethod(paymentMethod)
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &o, nil
}
