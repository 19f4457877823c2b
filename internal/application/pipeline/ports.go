package pipeline

import (
	"context"

	"github.com/decortina/ventas-api/internal/domain/entity"
)

// ProspectCache copia local de prospectos para la actualización optimista:
// el tablero refleja el cambio de etapa antes de que la persistencia
// confirme, y se revierte si esta falla.
type ProspectCache interface {
	Put(p *entity.Prospect)
	Get(id string) (*entity.Prospect, bool)
	Invalidate(id string)
}

// OrderConverter puerto hacia la conversión de cotización a pedido, el
// efecto en cascada de entrar a la etapa pedido.
type OrderConverter interface {
	ConvertFromApprovedQuote(ctx context.Context, prospectID string) (*entity.Order, error)
}
