package ports

import (
	"context"

	"github.com/decortina/ventas-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Las escrituras de varios statements (cotización con sus
// piezas, pedido con sus productos, etapa con su historial) pasan por aquí
// para confirmarse o revertirse juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		prospectRepo repository.ProspectRepository,
		quoteRepo repository.QuoteRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
