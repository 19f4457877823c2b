// Package pdf implementa la versión imprimible de la cotización que se envía
// al cliente después de la visita de medición.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  N° Cotización + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto + dirección de instalación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ubicación | Medidas | Área m² | Precio/m² | Subtotal │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Área total / TOTAL + esquema de pago 60/40         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: vigencia de la cotización                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/decortina/ventas-api/internal/application/quotes"
	"github.com/decortina/ventas-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 83, Blue: 58}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ quotes.QuotePDFGenerator = (*MarotoQuoteGenerator)(nil)

// MarotoQuoteGenerator implementa quotes.QuotePDFGenerator usando Maroto v2.
type MarotoQuoteGenerator struct {
	BusinessName string
}

// NewMarotoQuoteGenerator construye el generador.
func NewMarotoQuoteGenerator(businessName string) *MarotoQuoteGenerator {
	return &MarotoQuoteGenerator{BusinessName: businessName}
}

// GenerateQuotePDF genera el PDF de la cotización y devuelve sus bytes.
func (g *MarotoQuoteGenerator) GenerateQuotePDF(_ context.Context, quote *entity.Quote, prospect *entity.Prospect) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización "+quote.ID, true).
		WithAuthor(g.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.BusinessName, quote))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(prospect))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(quote) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(quote))
	m.AddRows(paymentRow(quote))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(quote))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y N° cotización + fecha (der).
func headerRow(businessName string, quote *entity.Quote) core.Row {
	fecha := quote.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cortinas y persianas a medida", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COTIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(quote.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos del prospecto y dirección de instalación.
func clientRow(prospect *entity.Prospect) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(prospect.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s   |   Dirección: %s",
				nonEmpty(prospect.Phone, "—"),
				nonEmpty(prospect.Email, "—"),
				nonEmpty(prospect.Address, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de piezas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Ubicación", 3, align.Left),
		h("Medidas", 3, align.Center),
		h("Área m²", 2, align.Right),
		h("Precio/m²", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// tableItemRows: una fila por pieza, en orden de captura.
func tableItemRows(quote *entity.Quote) []core.Row {
	result := make([]core.Row, 0, len(quote.Items))
	for _, it := range quote.Items {
		medidas := fmt.Sprintf("%s × %s %s", it.Width.String(), it.Height.String(), quote.Unit)
		desc := it.Location
		if it.ProductLabel != "" {
			desc += " — " + it.ProductLabel
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(desc, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(3).Add(text.New(medidas, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(it.AreaM2.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(it.PricePerM2.StringFixed(0)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(it.Subtotal.StringFixed(0)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: área total y total a pagar.
func totalsRow(quote *entity.Quote) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	grand := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: c, Right: 1,
		})
	}
	return row.New(16).Add(
		col.New(5),
		col.New(4).Add(
			label("Área total:"),
			grand("TOTAL:", colorPrimary),
		),
		col.New(3).Add(
			text.New(quote.TotalArea.StringFixed(2)+" m²", props.Text{Size: 9, Align: align.Right, Right: 1}),
			grand("$"+formatMoney(quote.Total.StringFixed(0)), colorPrimary),
		),
	)
}

// paymentRow: esquema de pago anticipo/saldo al aprobar.
func paymentRow(quote *entity.Quote) core.Row {
	deposit := quote.Total.Mul(decimal.NewFromFloat(0.60)).Round(2)
	balance := quote.Total.Sub(deposit)
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf(
				"Al aprobar: anticipo 60%% de $%s y saldo de $%s contra instalación.",
				formatMoney(deposit.StringFixed(0)), formatMoney(balance.StringFixed(0)),
			), props.Text{Size: 8, Color: colorGray, Top: 2}),
		),
	)
}

// footerRow: vigencia.
func footerRow(quote *entity.Quote) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Cotización válida hasta el "+quote.ValidUntil.Format("02/01/2006")+
				". Precios sujetos a confirmación de medidas en sitio.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID recorta un UUID a su primer bloque para mostrarlo como folio.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
