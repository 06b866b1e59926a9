package order

import (
	"context"

	"flamegold-ordering/internal/domain"
)

// Repository stores submitted orders. Create is a single atomic insert
// returning the generated order identifier; it is never retried here.
type Repository interface {
	Create(ctx context.Context, order domain.Order) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}
