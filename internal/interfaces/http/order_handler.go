package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/decortina/ventas-api/internal/application/dto"
	"github.com/decortina/ventas-api/internal/application/fabrication"
	"github.com/decortina/ventas-api/internal/application/orders"
	"github.com/decortina/ventas-api/internal/application/ports"
	"github.com/decortina/ventas-api/internal/domain"
	"github.com/decortina/ventas-api/internal/domain/entity"
)

// OrderHandler maneja las peticiones HTTP de pedidos y fabricación.
type OrderHandler struct {
	orderUC    *orders.OrderUseCase
	convertUC  *orders.ConvertQuoteUseCase
	progressUC *fabrication.ProgressUseCase
	clock      ports.Clock
}

// NewOrderHandler construye el handler.
func NewOrderHandler(
	orderUC *orders.OrderUseCase,
	convertUC *orders.ConvertQuoteUseCase,
	progressUC *fabrication.ProgressUseCase,
	clock ports.Clock,
) *OrderHandler {
	return &OrderHandler{orderUC: orderUC, convertUC: convertUC, progressUC: progressUC, clock: clock}
}

// GetByID GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.orderUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order, h.clock.Now()))
}

// Convert reintenta manualmente la conversión de la cotización aprobada de un
// prospecto, por ejemplo cuando la cascada de la transición dejó un warning.
// POST /api/prospects/:id/convert
func (h *OrderHandler) Convert(c *fiber.Ctx) error {
	prospectID := c.Params("id")
	if prospectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	order, err := h.convertUC.ConvertFromApprovedQuote(c.Context(), prospectID)
	if err != nil {
		if errors.Is(err, domain.ErrNoApprovedQuote) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_APPROVED_QUOTE", Message: "el prospecto no tiene cotización aprobada"})
		}
		return orderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToOrderResponse(order, h.clock.Now()))
}

// UpdateProductState avanza el estado de fabricación de un producto.
// PATCH /api/orders/:id/products/:pid/state
func (h *OrderHandler) UpdateProductState(c *fiber.Ctx) error {
	var in dto.UpdateProductStateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, _, err := h.progressUC.UpdateProductState(
		c.Context(), c.Params("id"), c.Params("pid"), entity.FabricationState(in.State),
	)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order, h.clock.Now()))
}

// MarkDepositPaid registra el pago del anticipo (60%).
// POST /api/orders/:id/deposit/paid
func (h *OrderHandler) MarkDepositPaid(c *fiber.Ctx) error {
	order, err := h.orderUC.MarkDepositPaid(c.Context(), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order, h.clock.Now()))
}

// MarkBalancePaid registra el pago del saldo (40%), exige anticipo pagado.
// POST /api/orders/:id/balance/paid
func (h *OrderHandler) MarkBalancePaid(c *fiber.Ctx) error {
	order, err := h.orderUC.MarkBalancePaid(c.Context(), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order, h.clock.Now()))
}

// orderError mapea errores de dominio de pedido a códigos HTTP.
func orderError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STATE_CONFLICT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
