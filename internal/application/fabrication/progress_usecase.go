package fabrication

import (
	"context"
	"fmt"

	"github.com/decortina/ventas-api/internal/application/ports"
	"github.com/decortina/ventas-api/internal/domain"
	"github.com/decortina/ventas-api/internal/domain/entity"
	domfab "github.com/decortina/ventas-api/internal/domain/fabrication"
	"github.com/decortina/ventas-api/internal/domain/repository"
)

// ProgressUseCase avance de fabricación de los productos de un pedido.
type ProgressUseCase struct {
	orderRepo repository.OrderRepository
	clock     ports.Clock
}

// NewProgressUseCase construye el caso de uso.
func NewProgressUseCase(orderRepo repository.OrderRepository, clock ports.Clock) *ProgressUseCase {
	return &ProgressUseCase{orderRepo: orderRepo, clock: clock}
}

// UpdateProductState avanza el estado de fabricación de un producto.
// La secuencia es estrictamente creciente: pedir un estado igual o anterior
// al actual falla sin tocar el producto. Devuelve el pedido actualizado y el
// avance recalculado.
func (uc *ProgressUseCase) UpdateProductState(ctx context.Context, orderID, productID string, newState entity.FabricationState) (*entity.Order, float64, error) {
	if !newState.IsValid() {
		return nil, 0, fmt.Errorf("estado de fabricación %q: %w", newState, domain.ErrInvalidInput)
	}

	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, 0, err
	}
	if order == nil {
		return nil, 0, fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
	}

	idx := -1
	for i := range order.Products {
		if order.Products[i].ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, 0, fmt.Errorf("producto %s en pedido %s: %w", productID, orderID, domain.ErrNotFound)
	}

	current := order.Products[idx].FabricationState
	if !domfab.CanAdvance(current, newState) {
		return nil, 0, fmt.Errorf("producto %s: %s → %s no es un avance: %w",
			productID, current, newState, domain.ErrConflict)
	}

	if err := uc.orderRepo.UpdateProduct(ctx, orderID, productID, newState); err != nil {
		return nil, 0, fmt.Errorf("actualizar producto %s: %w", productID, err)
	}
	order.Products[idx].FabricationState = newState

	return order, domfab.Progress(order), nil
}

// Progress avance ponderado actual del pedido.
func (uc *ProgressUseCase) Progress(ctx context.Context, orderID string) (float64, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if order == nil {
		return 0, fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
	}
	return domfab.Progress(order), nil
}

// IsDelayed indica si el pedido está retrasado respecto a su fecha estimada
// de fin de fabricación.
func (uc *ProgressUseCase) IsDelayed(ctx context.Context, orderID string) (bool, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return false, err
	}
	if order == nil {
		return false, fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
	}
	return domfab.IsDelayed(order, uc.clock.Now()), nil
}
