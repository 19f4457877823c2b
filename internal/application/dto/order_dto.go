package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/decortina/ventas-api/internal/domain/entity"
	"github.com/decortina/ventas-api/internal/domain/fabrication"
)

// UpdateProductStateRequest avance de fabricación de un producto del pedido.
type UpdateProductStateRequest struct {
	State string `json:"state"` // pendiente|en_proceso|terminado|instalado
}

// PaymentPartResponse anticipo o saldo del pedido.
type PaymentPartResponse struct {
	Percentage decimal.Decimal `json:"percentage,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Paid       bool            `json:"paid"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
}

// OrderProductResponse un producto del pedido con su estado de fabricación.
type OrderProductResponse struct {
	ID       string          `json:"id"`
	Location string          `json:"location"`
	Product  string          `json:"product"`
	Color    string          `json:"color,omitempty"`
	AreaM2   decimal.Decimal `json:"area_m2"`
	Subtotal decimal.Decimal `json:"subtotal"`
	State    string          `json:"state"`
}

// OrderResponse representación HTTP de un pedido, con avance y retraso calculados.
type OrderResponse struct {
	ID                      string                 `json:"id"`
	QuoteID                 string                 `json:"quote_id"`
	ProspectID              string                 `json:"prospect_id"`
	TotalAmount             decimal.Decimal        `json:"total_amount"`
	Deposit                 PaymentPartResponse    `json:"deposit"`
	Balance                 PaymentPartResponse    `json:"balance"`
	Products                []OrderProductResponse `json:"products"`
	Progress                float64                `json:"progress"`
	Delayed                 bool                   `json:"delayed"`
	EstimatedFabricationEnd time.Time              `json:"estimated_fabrication_end"`
	EstimatedInstallation   time.Time              `json:"estimated_installation"`
	CreatedAt               time.Time              `json:"created_at"`
}

// ToOrderResponse convierte la entidad a su representación HTTP. El avance y
// el retraso se calculan al momento de responder, nunca se persisten.
func ToOrderResponse(o *entity.Order, now time.Time) *OrderResponse {
	resp := &OrderResponse{
		ID:          o.ID,
		QuoteID:     o.QuoteID,
		ProspectID:  o.ProspectID,
		TotalAmount: o.TotalAmount,
		Deposit: PaymentPartResponse{
			Percentage: o.Deposit.Percentage,
			Amount:     o.Deposit.Amount,
			Paid:       o.Deposit.Paid,
			PaidAt:     o.Deposit.PaidAt,
		},
		Balance: PaymentPartResponse{
			Amount: o.Balance.Amount,
			Paid:   o.Balance.Paid,
			PaidAt: o.Balance.PaidAt,
		},
		Progress:                fabrication.Progress(o),
		Delayed:                 fabrication.IsDelayed(o, now),
		EstimatedFabricationEnd: o.EstimatedFabricationEnd,
		EstimatedInstallation:   o.EstimatedInstallation,
		CreatedAt:               o.CreatedAt,
	}
	for _, p := range o.Products {
		resp.Products = append(resp.Products, OrderProductResponse{
			ID:       p.ID,
			Location: p.Location,
			Product:  p.ProductLabel,
			Color:    p.Color,
			AreaM2:   p.AreaM2,
			Subtotal: p.Subtotal,
			State:    string(p.FabricationState),
		})
	}
	return resp
}
