package fabrication

import (
	"time"

	"github.com/decortina/ventas-api/internal/domain/entity"
)

// stateWeights peso de avance por estado de fabricación (porcentaje).
var stateWeights = map[entity.FabricationState]float64{
	entity.FabricationPendiente: 0,
	entity.FabricationEnProceso: 25,
	entity.FabricationTerminado: 75,
	entity.FabricationInstalado: 100,
}

// Weight peso de avance de un estado.
func Weight(s entity.FabricationState) float64 {
	return stateWeights[s]
}

// Progress avance ponderado del pedido: promedio de los pesos de sus
// productos, 0 si no tiene productos. Siempre en [0, 100].
func Progress(o *entity.Order) float64 {
	if len(o.Products) == 0 {
		return 0
	}
	var sum float64
	for _, p := range o.Products {
		sum += Weight(p.FabricationState)
	}
	return sum / float64(len(o.Products))
}

// IsDelayed indica si el pedido está retrasado: ya pasó la fecha estimada de
// fin de fabricación y el pedido aún no está completamente instalado.
func IsDelayed(o *entity.Order, now time.Time) bool {
	return now.After(o.EstimatedFabricationEnd) && o.OverallState() != entity.FabricationInstalado
}

// CanAdvance valida el invariante de avance estricto: solo se permite pasar
// a un estado posterior en la secuencia, nunca igual ni anterior.
func CanAdvance(from, to entity.FabricationState) bool {
	return to.IsValid() && from.IsValid() && to.Rank() > from.Rank()
}
