package repository

import (
	"context"

	"github.com/decortina/ventas-api/internal/domain/entity"
)

// QuoteRepository define el puerto de persistencia para Quote.
// Todas las lecturas devuelven la cotización con sus piezas en el orden
// de captura (position ascendente).
type QuoteRepository interface {
	Save(ctx context.Context, q *entity.Quote) error
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	FindByProspect(ctx context.Context, prospectID string) ([]*entity.Quote, error)
	// FindApproved devuelve las cotizaciones del prospecto en estado convertible
	// (aprobada o activa), más reciente primero.
	FindApproved(ctx context.Context, prospectID string) ([]*entity.Quote, error)
	UpdateStatus(ctx context.Context, id string, status entity.QuoteStatus) error
	MarkConverted(ctx context.Context, id string) error
}
