package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/decortina/ventas-api/internal/domain/entity"
)

// PieceRequest una pieza medida en la visita.
type PieceRequest struct {
	Location   string          `json:"location"`
	Width      decimal.Decimal `json:"width"`
	Height     decimal.Decimal `json:"height"`
	Product    string          `json:"product"`
	Color      string          `json:"color"`
	PricePerM2 decimal.Decimal `json:"price_per_m2"` // opcional; cero = usar precio general
}

// BuildQuoteRequest construcción de una cotización desde piezas medidas.
// La unidad aplica de manera uniforme a todas las piezas de la llamada.
type BuildQuoteRequest struct {
	ProspectID        string          `json:"prospect_id"`
	Unit              string          `json:"unit"` // m|cm
	GeneralPricePerM2 decimal.Decimal `json:"general_price_per_m2"`
	Pieces            []PieceRequest  `json:"pieces"`
}

// QuoteItemResponse una pieza de la cotización, en orden de captura.
type QuoteItemResponse struct {
	ID         string          `json:"id"`
	Location   string          `json:"location"`
	Width      decimal.Decimal `json:"width"`
	Height     decimal.Decimal `json:"height"`
	Product    string          `json:"product"`
	Color      string          `json:"color,omitempty"`
	PricePerM2 decimal.Decimal `json:"price_per_m2"`
	AreaM2     decimal.Decimal `json:"area_m2"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// QuoteResponse representación HTTP de una cotización.
type QuoteResponse struct {
	ID         string              `json:"id"`
	ProspectID string              `json:"prospect_id"`
	Unit       string              `json:"unit"`
	Items      []QuoteItemResponse `json:"items"`
	TotalArea  decimal.Decimal     `json:"total_area"`
	Total      decimal.Decimal     `json:"total"`
	Status     string              `json:"status"`
	ValidUntil time.Time           `json:"valid_until"`
	CreatedAt  time.Time           `json:"created_at"`
}

// ToQuoteResponse convierte la entidad a su representación HTTP.
func ToQuoteResponse(q *entity.Quote) *QuoteResponse {
	resp := &QuoteResponse{
		ID:         q.ID,
		ProspectID: q.ProspectID,
		Unit:       string(q.Unit),
		TotalArea:  q.TotalArea,
		Total:      q.Total,
		Status:     string(q.Status),
		ValidUntil: q.ValidUntil,
		CreatedAt:  q.CreatedAt,
	}
	for _, it := range q.Items {
		resp.Items = append(resp.Items, QuoteItemResponse{
			ID:         it.ID,
			Location:   it.Location,
			Width:      it.Width,
			Height:     it.Height,
			Product:    it.ProductLabel,
			Color:      it.Color,
			PricePerM2: it.PricePerM2,
			AreaM2:     it.AreaM2,
			Subtotal:   it.Subtotal,
		})
	}
	return resp
}
