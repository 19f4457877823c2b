package quotes

import (
	"context"
	"fmt"

	"github.com/decortina/ventas-api/internal/domain"
	"github.com/decortina/ventas-api/internal/domain/entity"
	"github.com/decortina/ventas-api/internal/domain/repository"
)

// StatusUseCase operaciones de ciclo de vida de la cotización posteriores a
// su construcción: enviar, marcar vista, aprobar, rechazar. El paso a
// convertida lo hace exclusivamente la conversión a pedido.
type StatusUseCase struct {
	quoteRepo repository.QuoteRepository
}

// NewStatusUseCase construye el caso de uso.
func NewStatusUseCase(quoteRepo repository.QuoteRepository) *StatusUseCase {
	return &StatusUseCase{quoteRepo: quoteRepo}
}

// GetByID obtiene una cotización con sus piezas en orden de captura.
func (uc *StatusUseCase) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	q, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("cotización %s: %w", id, domain.ErrNotFound)
	}
	return q, nil
}

// ListByProspect lista las cotizaciones del prospecto, más reciente primero.
func (uc *StatusUseCase) ListByProspect(ctx context.Context, prospectID string) ([]*entity.Quote, error) {
	if prospectID == "" {
		return nil, fmt.Errorf("prospect_id requerido: %w", domain.ErrInvalidInput)
	}
	return uc.quoteRepo.FindByProspect(ctx, prospectID)
}

// Send marca la cotización como enviada al cliente.
func (uc *StatusUseCase) Send(ctx context.Context, id string) (*entity.Quote, error) {
	return uc.setStatus(ctx, id, entity.QuoteStatusEnviada)
}

// MarkViewed registra que el cliente abrió la cotización.
func (uc *StatusUseCase) MarkViewed(ctx context.Context, id string) (*entity.Quote, error) {
	return uc.setStatus(ctx, id, entity.QuoteStatusVista)
}

// Approve marca la cotización como aprobada por el cliente; queda elegible
// para conversión a pedido.
func (uc *StatusUseCase) Approve(ctx context.Context, id string) (*entity.Quote, error) {
	return uc.setStatus(ctx, id, entity.QuoteStatusAprobada)
}

// Reject marca la cotización como rechazada.
func (uc *StatusUseCase) Reject(ctx context.Context, id string) (*entity.Quote, error) {
	return uc.setStatus(ctx, id, entity.QuoteStatusRechazada)
}

func (uc *StatusUseCase) setStatus(ctx context.Context, id string, status entity.QuoteStatus) (*entity.Quote, error) {
	q, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Una cotización convertida es inmutable: su pedido ya existe.
	if q.Status == entity.QuoteStatusConvertida {
		return nil, fmt.Errorf("cotización %s ya convertida: %w", id, domain.ErrConflict)
	}
	if err := uc.quoteRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("actualizar estado de cotización %s: %w", id, err)
	}
	q.Status = status
	return q, nil
}
