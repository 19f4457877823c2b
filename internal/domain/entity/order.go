package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FabricationState estado de fabricación de un producto del pedido.
// Los estados forman una secuencia estrictamente creciente; un producto
// nunca regresa a un estado anterior.
type FabricationState string

const (
	FabricationPendiente FabricationState = "pendiente"
	FabricationEnProceso FabricationState = "en_proceso"
	FabricationTerminado FabricationState = "terminado"
	FabricationInstalado FabricationState = "instalado"
)

// fabricationRanks posición de cada estado en la secuencia.
var fabricationRanks = map[FabricationState]int{
	FabricationPendiente: 0,
	FabricationEnProceso: 1,
	FabricationTerminado: 2,
	FabricationInstalado: 3,
}

// IsValid indica si el estado pertenece al enum.
func (s FabricationState) IsValid() bool {
	_, ok := fabricationRanks[s]
	return ok
}

// Rank devuelve la posición del estado en la secuencia (-1 si es desconocido).
func (s FabricationState) Rank() int {
	if r, ok := fabricationRanks[s]; ok {
		return r
	}
	return -1
}

// PaymentPart una de las dos partes del pago del pedido (anticipo o saldo).
type PaymentPart struct {
	Percentage decimal.Decimal // solo informativo en el saldo
	Amount     decimal.Decimal
	Paid       bool
	PaidAt     *time.Time
}

// OrderProduct un producto del pedido, uno por pieza de la cotización origen.
type OrderProduct struct {
	ID               string
	OrderID          string
	Position         int
	Location         string
	ProductLabel     string
	Color            string
	AreaM2           decimal.Decimal
	Subtotal         decimal.Decimal
	FabricationState FabricationState
}

// Order pedido confirmado creado desde una cotización aprobada.
// Invariante: Deposit.Amount + Balance.Amount == TotalAmount, exacto.
// A lo sumo existe un pedido por QuoteID.
type Order struct {
	ID                      string
	QuoteID                 string
	ProspectID              string
	TotalAmount             decimal.Decimal
	Deposit                 PaymentPart
	Balance                 PaymentPart
	Products                []OrderProduct
	EstimatedFabricationEnd time.Time
	EstimatedInstallation   time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// OverallState estado global del pedido: el del producto menos avanzado.
// Un pedido sin productos se considera pendiente.
func (o *Order) OverallState() FabricationState {
	if len(o.Products) == 0 {
		return FabricationPendiente
	}
	overall := o.Products[0].FabricationState
	for _, p := range o.Products[1:] {
		if p.FabricationState.Rank() < overall.Rank() {
			overall = p.FabricationState
		}
	}
	return overall
}
