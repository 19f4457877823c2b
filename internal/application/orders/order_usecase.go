package orders

import (
	"context"
	"fmt"

	"github.com/decortina/ventas-api/internal/domain"
	"github.com/decortina/ventas-api/internal/domain/entity"
	"github.com/decortina/ventas-api/internal/domain/repository"
)

// OrderUseCase consultas y marcado de pagos del pedido.
type OrderUseCase struct {
	orderRepo repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orderRepo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo}
}

// GetByID obtiene un pedido con sus productos.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("pedido %s: %w", id, domain.ErrNotFound)
	}
	return o, nil
}

// MarkDepositPaid registra el pago del anticipo.
func (uc *OrderUseCase) MarkDepositPaid(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Deposit.Paid {
		return nil, fmt.Errorf("anticipo del pedido %s ya pagado: %w", id, domain.ErrConflict)
	}
	if err := uc.orderRepo.MarkDepositPaid(ctx, id); err != nil {
		return nil, fmt.Errorf("marcar anticipo pagado: %w", err)
	}
	return uc.GetByID(ctx, id)
}

// MarkBalancePaid registra el pago del saldo. El saldo solo se cobra con el
// anticipo ya pagado.
func (uc *OrderUseCase) MarkBalancePaid(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Deposit.Paid {
		return nil, fmt.Errorf("anticipo del pedido %s sin pagar: %w", id, domain.ErrConflict)
	}
	if o.Balance.Paid {
		return nil, fmt.Errorf("saldo del pedido %s ya pagado: %w", id, domain.ErrConflict)
	}
	if err := uc.orderRepo.MarkBalancePaid(ctx, id); err != nil {
		return nil, fmt.Errorf("marcar saldo pagado: %w", err)
	}
	return uc.GetByID(ctx, id)
}
