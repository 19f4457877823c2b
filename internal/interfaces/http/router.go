package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/decortina/ventas-api/internal/application/fabrication"
	"github.com/decortina/ventas-api/internal/application/orders"
	"github.com/decortina/ventas-api/internal/application/pipeline"
	"github.com/decortina/ventas-api/internal/application/ports"
	"github.com/decortina/ventas-api/internal/application/quotes"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProspectUC   *pipeline.ProspectUseCase
	TransitionUC *pipeline.TransitionUseCase
	QuoteBuilder *quotes.BuilderUseCase
	QuoteStatus  *quotes.StatusUseCase
	QuotePDF     *quotes.PDFUseCase
	OrderUC      *orders.OrderUseCase
	ConvertUC    *orders.ConvertQuoteUseCase
	ProgressUC   *fabrication.ProgressUseCase
	Clock        ports.Clock
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Prospectos y pipeline
	prospects := api.Group("/prospects")
	prospectHandler := NewProspectHandler(deps.ProspectUC, deps.TransitionUC, deps.Clock)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ConvertUC, deps.ProgressUC, deps.Clock)
	prospects.Post("/", prospectHandler.Create)
	prospects.Get("/", prospectHandler.ListByStage)
	prospects.Get("/:id", prospectHandler.GetByID)
	prospects.Patch("/:id/stage", prospectHandler.Transition)
	prospects.Post("/:id/convert", orderHandler.Convert)

	// Cotizaciones
	quotesGroup := api.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteBuilder, deps.QuoteStatus, deps.QuotePDF)
	quotesGroup.Post("/", quoteHandler.Create)
	quotesGroup.Get("/", quoteHandler.ListByProspect)
	quotesGroup.Get("/:id", quoteHandler.GetByID)
	quotesGroup.Get("/:id/pdf", quoteHandler.PDF)
	quotesGroup.Post("/:id/send", quoteHandler.Send)
	quotesGroup.Post("/:id/view", quoteHandler.MarkViewed)
	quotesGroup.Post("/:id/approve", quoteHandler.Approve)
	quotesGroup.Post("/:id/reject", quoteHandler.Reject)

	// Pedidos y fabricación
	ordersGroup := api.Group("/orders")
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Patch("/:id/products/:pid/state", orderHandler.UpdateProductState)
	ordersGroup.Post("/:id/deposit/paid", orderHandler.MarkDepositPaid)
	ordersGroup.Post("/:id/balance/paid", orderHandler.MarkBalancePaid)
}
