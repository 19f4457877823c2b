package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/decortina/ventas-api/internal/application/dto"
	"github.com/decortina/ventas-api/internal/application/pipeline"
	"github.com/decortina/ventas-api/internal/application/ports"
	"github.com/decortina/ventas-api/internal/domain"
	"github.com/decortina/ventas-api/internal/domain/entity"
)

// ProspectHandler maneja las peticiones HTTP de prospectos y del pipeline.
type ProspectHandler struct {
	prospectUC   *pipeline.ProspectUseCase
	transitionUC *pipeline.TransitionUseCase
	clock        ports.Clock
}

// NewProspectHandler construye el handler.
func NewProspectHandler(prospectUC *pipeline.ProspectUseCase, transitionUC *pipeline.TransitionUseCase, clock ports.Clock) *ProspectHandler {
	return &ProspectHandler{prospectUC: prospectUC, transitionUC: transitionUC, clock: clock}
}

// Create POST /api/prospects
func (h *ProspectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProspectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	prospect, err := h.prospectUC.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProspectResponse(prospect))
}

// GetByID GET /api/prospects/:id
func (h *ProspectHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	prospect, err := h.prospectUC.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "prospecto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToProspectResponse(prospect))
}

// ListByStage GET /api/prospects?stage=cotizacion
func (h *ProspectHandler) ListByStage(c *fiber.Ctx) error {
	stage := entity.Stage(c.Query("stage"))
	if !stage.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stage inválido"})
	}
	list, err := h.prospectUC.ListByStage(c.Context(), stage)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.ProspectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ToProspectResponse(p))
	}
	return c.JSON(out)
}

// Transition cambia la etapa del prospecto. Al pasar a "pedido" dispara la
// conversión de la cotización aprobada; si la cascada falla la transición
// se mantiene y la respuesta trae un warning.
// PATCH /api/prospects/:id/stage
func (h *ProspectHandler) Transition(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.transitionUC.Transition(c.Context(), id, entity.Stage(in.Stage), in.Reason, in.Actor)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "prospecto no encontrado"})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STATE_CONFLICT", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	resp := dto.TransitionResponse{
		Prospect: dto.ToProspectResponse(result.Prospect),
		Warning:  result.Warning,
	}
	if result.Order != nil {
		resp.Order = dto.ToOrderResponse(result.Order, h.clock.Now())
	}
	return c.JSON(resp)
}
