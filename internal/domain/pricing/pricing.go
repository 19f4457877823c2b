package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/decortina/ventas-api/internal/domain"
	"github.com/decortina/ventas-api/internal/domain/entity"
)

// cmPerM2 factor de conversión de cm² a m².
var cmPerM2 = decimal.NewFromInt(10_000)

// PieceInput una pieza medida, entrada pura del cálculo de precios.
type PieceInput struct {
	Location     string
	Width        decimal.Decimal
	Height       decimal.Decimal
	ProductLabel string
	Color        string
	PricePerM2   decimal.Decimal // cero = usar precio general
}

// PricedPiece resultado del cálculo por pieza.
type PricedPiece struct {
	PieceInput
	AreaM2   decimal.Decimal
	Subtotal decimal.Decimal
}

// Area calcula el área en m² de una pieza según la unidad de medida.
// En metros: ancho × alto. En centímetros: (ancho × alto) / 10 000.
func Area(width, height decimal.Decimal, unit entity.MeasureUnit) decimal.Decimal {
	area := width.Mul(height)
	if unit == entity.UnitCentimeters {
		return area.Div(cmPerM2)
	}
	return area
}

// EffectivePrice precio por m² efectivo: el de la pieza si es positivo,
// si no el precio general.
func EffectivePrice(piecePrice, generalPrice decimal.Decimal) decimal.Decimal {
	if piecePrice.GreaterThan(decimal.Zero) {
		return piecePrice
	}
	return generalPrice
}

// ComputePieces valida y calcula áreas, subtotales y totales de un conjunto
// de piezas con una unidad uniforme. Es una función pura: la misma entrada
// produce siempre exactamente los mismos totales.
func ComputePieces(pieces []PieceInput, generalPrice decimal.Decimal, unit entity.MeasureUnit) ([]PricedPiece, decimal.Decimal, decimal.Decimal, error) {
	if !unit.IsValid() {
		return nil, decimal.Zero, decimal.Zero, fmt.Errorf("unidad %q: %w", unit, domain.ErrInvalidInput)
	}
	if len(pieces) == 0 {
		return nil, decimal.Zero, decimal.Zero, fmt.Errorf("la cotización no tiene piezas: %w", domain.ErrInvalidInput)
	}

	priced := make([]PricedPiece, 0, len(pieces))
	totalArea := decimal.Zero
	total := decimal.Zero
	for i, p := range pieces {
		if !p.Width.GreaterThan(decimal.Zero) || !p.Height.GreaterThan(decimal.Zero) {
			return nil, decimal.Zero, decimal.Zero,
				fmt.Errorf("pieza %d (%s): dimensiones no positivas: %w", i+1, p.Location, domain.ErrInvalidInput)
		}
		price := EffectivePrice(p.PricePerM2, generalPrice)
		if !price.GreaterThan(decimal.Zero) {
			return nil, decimal.Zero, decimal.Zero,
				fmt.Errorf("pieza %d (%s): sin precio por m²: %w", i+1, p.Location, domain.ErrInvalidInput)
		}
		area := Area(p.Width, p.Height, unit)
		subtotal := area.Mul(price)
		priced = append(priced, PricedPiece{PieceInput: p, AreaM2: area, Subtotal: subtotal})
		totalArea = totalArea.Add(area)
		total = total.Add(subtotal)
	}
	return priced, totalArea, total, nil
}
