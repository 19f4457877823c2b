package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/decortina/ventas-api/internal/application/dto"
	"github.com/decortina/ventas-api/internal/application/quotes"
	"github.com/decortina/ventas-api/internal/domain"
	"github.com/decortina/ventas-api/internal/domain/entity"
)

// QuoteHandler maneja las peticiones HTTP de cotizaciones.
type QuoteHandler struct {
	builderUC *quotes.BuilderUseCase
	statusUC  *quotes.StatusUseCase
	pdfUC     *quotes.PDFUseCase
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(builderUC *quotes.BuilderUseCase, statusUC *quotes.StatusUseCase, pdfUC *quotes.PDFUseCase) *QuoteHandler {
	return &QuoteHandler{builderUC: builderUC, statusUC: statusUC, pdfUC: pdfUC}
}

// Create construye una cotización desde las piezas medidas en la visita.
// POST /api/quotes
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.BuildQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	quote, err := h.builderUC.Build(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "prospecto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToQuoteResponse(quote))
}

// GetByID GET /api/quotes/:id
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	quote, err := h.statusUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return quoteError(c, err)
	}
	return c.JSON(dto.ToQuoteResponse(quote))
}

// ListByProspect GET /api/quotes?prospect_id=...
func (h *QuoteHandler) ListByProspect(c *fiber.Ctx) error {
	prospectID := c.Query("prospect_id")
	if prospectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "prospect_id requerido"})
	}
	list, err := h.statusUC.ListByProspect(c.Context(), prospectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		out = append(out, dto.ToQuoteResponse(q))
	}
	return c.JSON(out)
}

// PDF descarga la cotización en PDF.
// GET /api/quotes/:id/pdf
func (h *QuoteHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	pdfBytes, err := h.pdfUC.GenerateQuotePDF(c.Context(), id)
	if err != nil {
		return quoteError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cotizacion-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}

// Send POST /api/quotes/:id/send
func (h *QuoteHandler) Send(c *fiber.Ctx) error {
	return h.setStatus(c, h.statusUC.Send)
}

// MarkViewed POST /api/quotes/:id/view
func (h *QuoteHandler) MarkViewed(c *fiber.Ctx) error {
	return h.setStatus(c, h.statusUC.MarkViewed)
}

// Approve POST /api/quotes/:id/approve
func (h *QuoteHandler) Approve(c *fiber.Ctx) error {
	return h.setStatus(c, h.statusUC.Approve)
}

// Reject POST /api/quotes/:id/reject
func (h *QuoteHandler) Reject(c *fiber.Ctx) error {
	return h.setStatus(c, h.statusUC.Reject)
}

// setStatus aplica una transición de estado de cotización y responde la
// cotización actualizada.
func (h *QuoteHandler) setStatus(c *fiber.Ctx, fn func(ctx context.Context, id string) (*entity.Quote, error)) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	quote, err := fn(c.Context(), id)
	if err != nil {
		return quoteError(c, err)
	}
	return c.JSON(dto.ToQuoteResponse(quote))
}

// quoteError mapea errores de dominio de cotización a códigos HTTP.
func quoteError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cotización no encontrada"})
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STATE_CONFLICT", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
