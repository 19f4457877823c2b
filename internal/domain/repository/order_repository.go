package repository

import (
	"context"

	"github.com/decortina/ventas-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	Save(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// FindByQuoteID devuelve nil sin error si la cotización no tiene pedido.
	FindByQuoteID(ctx context.Context, quoteID string) (*entity.Order, error)
	UpdateProduct(ctx context.Context, orderID, productID string, state entity.FabricationState) error
	MarkDepositPaid(ctx context.Context, orderID string) error
	MarkBalancePaid(ctx context.Context, orderID string) error
}
