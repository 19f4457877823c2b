package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus estado de la cotización.
type QuoteStatus string

const (
	QuoteStatusBorrador   QuoteStatus = "borrador"
	QuoteStatusEnviada    QuoteStatus = "enviada"
	QuoteStatusVista      QuoteStatus = "vista"
	QuoteStatusAprobada   QuoteStatus = "aprobada"
	QuoteStatusRechazada  QuoteStatus = "rechazada"
	QuoteStatusVencida    QuoteStatus = "vencida"
	QuoteStatusConvertida QuoteStatus = "convertida"

	// QuoteStatusActiva estado heredado de datos antiguos; la conversión a pedido
	// lo acepta como equivalente de aprobada.
	QuoteStatusActiva QuoteStatus = "activa"
)

// IsConvertible indica si el estado habilita la conversión a pedido.
func (s QuoteStatus) IsConvertible() bool {
	return s == QuoteStatusAprobada || s == QuoteStatusActiva
}

// MeasureUnit unidad de medida de las piezas de una cotización.
type MeasureUnit string

const (
	UnitMeters      MeasureUnit = "m"
	UnitCentimeters MeasureUnit = "cm"
)

// IsValid indica si la unidad es conocida.
func (u MeasureUnit) IsValid() bool {
	return u == UnitMeters || u == UnitCentimeters
}

// QuoteItem una pieza medida dentro de la cotización.
// Position preserva el orden de captura: no afecta la semántica pero sí la
// presentación, que debe ser estable.
type QuoteItem struct {
	ID           string
	QuoteID      string
	Position     int
	Location     string // ej: "Sala", "Recámara principal"
	Width        decimal.Decimal
	Height       decimal.Decimal
	ProductLabel string
	Color        string
	PricePerM2   decimal.Decimal // cero = usar el precio general de la cotización
	AreaM2       decimal.Decimal
	Subtotal     decimal.Decimal
}

// Quote propuesta de precio construida a partir de piezas medidas.
type Quote struct {
	ID         string
	ProspectID string
	Unit       MeasureUnit
	Items      []QuoteItem
	TotalArea  decimal.Decimal
	Total      decimal.Decimal
	Status     QuoteStatus
	ValidUntil time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
