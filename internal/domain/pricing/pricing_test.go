package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decortina/ventas-api/internal/domain"
	"github.com/decortina/ventas-api/internal/domain/entity"
	"github.com/decortina/ventas-api/internal/domain/pricing"
)

// ── Área ──────────────────────────────────────────────────────────────────────

// TestArea_Metros: 2.5m × 3.0m = 7.5 m².
func TestArea_Metros(t *testing.T) {
	area := pricing.Area(decimal.NewFromFloat(2.5), decimal.NewFromFloat(3.0), entity.UnitMeters)
	assert.True(t, area.Equal(decimal.NewFromFloat(7.5)),
		"2.5m × 3.0m debe dar 7.5 m², dio %s", area)
}

// TestArea_Centimetros: 250cm × 300cm = 75 000 cm² = 7.5 m².
func TestArea_Centimetros(t *testing.T) {
	area := pricing.Area(decimal.NewFromInt(250), decimal.NewFromInt(300), entity.UnitCentimeters)
	assert.True(t, area.Equal(decimal.NewFromFloat(7.5)),
		"250cm × 300cm debe dar 7.5 m², dio %s", area)
}

// TestArea_MetrosYCentimetrosEquivalen: la misma pieza medida en metros o en
// centímetros produce exactamente la misma área.
func TestArea_MetrosYCentimetrosEquivalen(t *testing.T) {
	enMetros := pricing.Area(decimal.NewFromFloat(1.2), decimal.NewFromFloat(1.8), entity.UnitMeters)
	enCm := pricing.Area(decimal.NewFromInt(120), decimal.NewFromInt(180), entity.UnitCentimeters)
	assert.True(t, enMetros.Equal(enCm), "1.2×1.8 m y 120×180 cm deben dar la misma área")
}

// ── Precio efectivo ───────────────────────────────────────────────────────────

func TestEffectivePrice_UsaPrecioDePieza(t *testing.T) {
	price := pricing.EffectivePrice(decimal.NewFromInt(900), decimal.NewFromInt(750))
	assert.True(t, price.Equal(decimal.NewFromInt(900)))
}

func TestEffectivePrice_CeroCaeAlGeneral(t *testing.T) {
	price := pricing.EffectivePrice(decimal.Zero, decimal.NewFromInt(750))
	assert.True(t, price.Equal(decimal.NewFromInt(750)))
}

// ── ComputePieces ─────────────────────────────────────────────────────────────

// TestComputePieces_CotizacionCompleta: dos piezas en metros con precio
// general, verifica áreas, subtotales y totales exactos.
//
//	Sala:    2.0 × 1.5 = 3.0 m² × $750 = $2 250
//	Cocina:  1.0 × 1.2 = 1.2 m² × $900 = $1 080 (precio propio)
//	Total área 4.2 m², total $3 330
func TestComputePieces_CotizacionCompleta(t *testing.T) {
	pieces := []pricing.PieceInput{
		{Location: "Sala", Width: decimal.NewFromFloat(2.0), Height: decimal.NewFromFloat(1.5)},
		{Location: "Cocina", Width: decimal.NewFromFloat(1.0), Height: decimal.NewFromFloat(1.2), PricePerM2: decimal.NewFromInt(900)},
	}

	priced, totalArea, total, err := pricing.ComputePieces(pieces, decimal.NewFromInt(750), entity.UnitMeters)
	require.NoError(t, err)
	require.Len(t, priced, 2)

	assert.True(t, priced[0].AreaM2.Equal(decimal.NewFromFloat(3.0)))
	assert.True(t, priced[0].Subtotal.Equal(decimal.NewFromInt(2250)))
	assert.True(t, priced[1].AreaM2.Equal(decimal.NewFromFloat(1.2)))
	assert.True(t, priced[1].Subtotal.Equal(decimal.NewFromInt(1080)))
	assert.True(t, totalArea.Equal(decimal.NewFromFloat(4.2)), "área total debe ser 4.2, dio %s", totalArea)
	assert.True(t, total.Equal(decimal.NewFromInt(3330)), "total debe ser $3 330, dio %s", total)
}

// TestComputePieces_PiezaUnicaEnMetros: una sola pieza de 2m × 3m a $750 el
// metro cuadrado.
func TestComputePieces_PiezaUnicaEnMetros(t *testing.T) {
	pieces := []pricing.PieceInput{
		{Location: "Sala", Width: decimal.NewFromInt(2), Height: decimal.NewFromInt(3)},
	}

	priced, totalArea, total, err := pricing.ComputePieces(pieces, decimal.NewFromInt(750), entity.UnitMeters)
	require.NoError(t, err)
	require.Len(t, priced, 1)

	assert.True(t, priced[0].AreaM2.Equal(decimal.NewFromInt(6)), "2m × 3m debe dar 6 m², dio %s", priced[0].AreaM2)
	assert.True(t, priced[0].Subtotal.Equal(decimal.NewFromInt(4500)))
	assert.True(t, totalArea.Equal(decimal.NewFromInt(6)))
	assert.True(t, total.Equal(decimal.NewFromInt(4500)), "total debe ser $4 500, dio %s", total)
}

// TestComputePieces_PiezasEnCentimetros: dos piezas medidas en cm con precio
// general de $100.
//
//	100 × 200 cm = 2.00 m²
//	 50 ×  50 cm = 0.25 m²
//	Total área 2.25 m², total $225
func TestComputePieces_PiezasEnCentimetros(t *testing.T) {
	pieces := []pricing.PieceInput{
		{Location: "Sala", Width: decimal.NewFromInt(100), Height: decimal.NewFromInt(200)},
		{Location: "Baño", Width: decimal.NewFromInt(50), Height: decimal.NewFromInt(50)},
	}

	priced, totalArea, total, err := pricing.ComputePieces(pieces, decimal.NewFromInt(100), entity.UnitCentimeters)
	require.NoError(t, err)
	require.Len(t, priced, 2)

	assert.True(t, priced[0].AreaM2.Equal(decimal.NewFromInt(2)), "100×200 cm debe dar 2 m², dio %s", priced[0].AreaM2)
	assert.True(t, priced[1].AreaM2.Equal(decimal.NewFromFloat(0.25)), "50×50 cm debe dar 0.25 m², dio %s", priced[1].AreaM2)
	assert.True(t, totalArea.Equal(decimal.NewFromFloat(2.25)), "área total debe ser 2.25, dio %s", totalArea)
	assert.True(t, total.Equal(decimal.NewFromInt(225)), "total debe ser $225, dio %s", total)
}

// TestComputePieces_Determinista: la misma entrada produce siempre los mismos
// totales, sin deriva de punto flotante.
func TestComputePieces_Determinista(t *testing.T) {
	pieces := []pricing.PieceInput{
		{Location: "Recámara", Width: decimal.NewFromFloat(1.37), Height: decimal.NewFromFloat(2.11)},
		{Location: "Estudio", Width: decimal.NewFromFloat(0.93), Height: decimal.NewFromFloat(1.77)},
	}
	general := decimal.NewFromFloat(815.50)

	_, area1, total1, err1 := pricing.ComputePieces(pieces, general, entity.UnitMeters)
	_, area2, total2, err2 := pricing.ComputePieces(pieces, general, entity.UnitMeters)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.True(t, area1.Equal(area2), "el área total debe ser idéntica entre corridas")
	assert.True(t, total1.Equal(total2), "el total debe ser idéntico entre corridas")
}

// TestComputePieces_OrdenDeCaptura: las piezas salen en el mismo orden en que
// entraron.
func TestComputePieces_OrdenDeCaptura(t *testing.T) {
	pieces := []pricing.PieceInput{
		{Location: "A", Width: decimal.NewFromInt(1), Height: decimal.NewFromInt(1)},
		{Location: "B", Width: decimal.NewFromInt(1), Height: decimal.NewFromInt(2)},
		{Location: "C", Width: decimal.NewFromInt(2), Height: decimal.NewFromInt(2)},
	}
	priced, _, _, err := pricing.ComputePieces(pieces, decimal.NewFromInt(100), entity.UnitMeters)
	require.NoError(t, err)
	require.Len(t, priced, 3)
	assert.Equal(t, "A", priced[0].Location)
	assert.Equal(t, "B", priced[1].Location)
	assert.Equal(t, "C", priced[2].Location)
}

// ── Validación: todo falla antes de calcular nada ─────────────────────────────

func TestComputePieces_ErrorSinPiezas(t *testing.T) {
	_, _, _, err := pricing.ComputePieces(nil, decimal.NewFromInt(750), entity.UnitMeters)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una cotización sin piezas debe ser inválida")
}

func TestComputePieces_ErrorUnidadInvalida(t *testing.T) {
	pieces := []pricing.PieceInput{
		{Location: "Sala", Width: decimal.NewFromInt(2), Height: decimal.NewFromInt(1)},
	}
	_, _, _, err := pricing.ComputePieces(pieces, decimal.NewFromInt(750), entity.MeasureUnit("pulgadas"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComputePieces_ErrorDimensionCero(t *testing.T) {
	pieces := []pricing.PieceInput{
		{Location: "Sala", Width: decimal.Zero, Height: decimal.NewFromInt(1)},
	}
	_, _, _, err := pricing.ComputePieces(pieces, decimal.NewFromInt(750), entity.UnitMeters)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ancho cero debe rechazarse")
}

func TestComputePieces_ErrorDimensionNegativa(t *testing.T) {
	pieces := []pricing.PieceInput{
		{Location: "Sala", Width: decimal.NewFromInt(2), Height: decimal.NewFromInt(-1)},
	}
	_, _, _, err := pricing.ComputePieces(pieces, decimal.NewFromInt(750), entity.UnitMeters)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "alto negativo debe rechazarse")
}

// TestComputePieces_ErrorSinPrecio: pieza sin precio propio y sin precio
// general no puede cotizarse.
func TestComputePieces_ErrorSinPrecio(t *testing.T) {
	pieces := []pricing.PieceInput{
		{Location: "Sala", Width: decimal.NewFromInt(2), Height: decimal.NewFromInt(1)},
	}
	_, _, _, err := pricing.ComputePieces(pieces, decimal.Zero, entity.UnitMeters)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestComputePieces_ErrorEnPiezaPosteriorNoDevuelveParciales: si la tercera
// pieza es inválida no se devuelve ningún resultado parcial.
func TestComputePieces_ErrorEnPiezaPosteriorNoDevuelveParciales(t *testing.T) {
	pieces := []pricing.PieceInput{
		{Location: "Sala", Width: decimal.NewFromInt(2), Height: decimal.NewFromInt(1)},
		{Location: "Cocina", Width: decimal.NewFromInt(1), Height: decimal.NewFromInt(1)},
		{Location: "Baño", Width: decimal.Zero, Height: decimal.NewFromInt(1)},
	}
	priced, totalArea, total, err := pricing.ComputePieces(pieces, decimal.NewFromInt(750), entity.UnitMeters)
	require.Error(t, err)
	assert.Nil(t, priced)
	assert.True(t, totalArea.IsZero())
	assert.True(t, total.IsZero())
}
