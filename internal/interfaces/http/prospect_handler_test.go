package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decortina/ventas-api/internal/application/dto"
	appfab "github.com/decortina/ventas-api/internal/application/fabrication"
	"github.com/decortina/ventas-api/internal/application/orders"
	"github.com/decortina/ventas-api/internal/application/pipeline"
	"github.com/decortina/ventas-api/internal/application/ports"
	"github.com/decortina/ventas-api/internal/application/quotes"
	"github.com/decortina/ventas-api/internal/domain/entity"
	"github.com/decortina/ventas-api/internal/domain/repository"
	"github.com/decortina/ventas-api/internal/infrastructure/memory"
	apphttp "github.com/decortina/ventas-api/internal/interfaces/http"
	"github.com/decortina/ventas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para levantar la API completa en los tests
// ──────────────────────────────────────────────────────────────────────────────

type memProspectRepo struct {
	prospects map[string]*entity.Prospect
}

func (m *memProspectRepo) Create(_ context.Context, p *entity.Prospect) error {
	m.prospects[p.ID] = p
	return nil
}
func (m *memProspectRepo) Get(_ context.Context, id string) (*entity.Prospect, error) {
	return m.prospects[id], nil
}
func (m *memProspectRepo) UpdateStage(_ context.Context, id string, stage entity.Stage) error {
	if p, ok := m.prospects[id]; ok {
		p.Stage = stage
	}
	return nil
}
func (m *memProspectRepo) AppendHistory(_ context.Context, id string, change entity.StageChange) error {
	if p, ok := m.prospects[id]; ok {
		p.StageHistory = append(p.StageHistory, change)
	}
	return nil
}
func (m *memProspectRepo) ListByStage(_ context.Context, stage entity.Stage) ([]*entity.Prospect, error) {
	var out []*entity.Prospect
	for _, p := range m.prospects {
		if p.Stage == stage {
			out = append(out, p)
		}
	}
	return out, nil
}

type memQuoteRepo struct {
	quotes map[string]*entity.Quote
}

func (m *memQuoteRepo) Save(_ context.Context, q *entity.Quote) error {
	m.quotes[q.ID] = q
	return nil
}
func (m *memQuoteRepo) GetByID(_ context.Context, id string) (*entity.Quote, error) {
	return m.quotes[id], nil
}
func (m *memQuoteRepo) FindByProspect(_ context.Context, prospectID string) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range m.quotes {
		if q.ProspectID == prospectID {
			out = append(out, q)
		}
	}
	return out, nil
}
func (m *memQuoteRepo) FindApproved(_ context.Context, prospectID string) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range m.quotes {
		if q.ProspectID == prospectID && q.Status.IsConvertible() {
			out = append(out, q)
		}
	}
	return out, nil
}
func (m *memQuoteRepo) UpdateStatus(_ context.Context, id string, status entity.QuoteStatus) error {
	if q, ok := m.quotes[id]; ok {
		q.Status = status
	}
	return nil
}
func (m *memQuoteRepo) MarkConverted(ctx context.Context, id string) error {
	return m.UpdateStatus(ctx, id, entity.QuoteStatusConvertida)
}

type memOrderRepo struct {
	orders map[string]*entity.Order
}

func (m *memOrderRepo) Save(_ context.Context, o *entity.Order) error {
	m.orders[o.ID] = o
	return nil
}
func (m *memOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	return m.orders[id], nil
}
func (m *memOrderRepo) FindByQuoteID(_ context.Context, quoteID string) (*entity.Order, error) {
	for _, o := range m.orders {
		if o.QuoteID == quoteID {
			return o, nil
		}
	}
	return nil, nil
}
func (m *memOrderRepo) UpdateProduct(_ context.Context, orderID, productID string, state entity.FabricationState) error {
	o := m.orders[orderID]
	for i := range o.Products {
		if o.Products[i].ID == productID {
			o.Products[i].FabricationState = state
		}
	}
	return nil
}
func (m *memOrderRepo) MarkDepositPaid(_ context.Context, orderID string) error {
	m.orders[orderID].Deposit.Paid = true
	return nil
}
func (m *memOrderRepo) MarkBalancePaid(_ context.Context, orderID string) error {
	m.orders[orderID].Balance.Paid = true
	return nil
}

// memTxRunner entrega los repositorios en memoria tal cual; aquí no hay
// transacción que simular.
type memTxRunner struct {
	prospects *memProspectRepo
	quotes    *memQuoteRepo
	orders    *memOrderRepo
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	repository.ProspectRepository,
	repository.QuoteRepository,
	repository.OrderRepository,
) error) error {
	return fn(r.prospects, r.quotes, r.orders)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

// buildTestApp levanta la API con repositorios en memoria y reloj fijo.
func buildTestApp(prospectRepo *memProspectRepo, quoteRepo *memQuoteRepo, orderRepo *memOrderRepo) *fiber.App {
	clock := ports.FixedClock{T: testNow}
	cache := memory.NewProspectCache()
	txRunner := &memTxRunner{prospects: prospectRepo, quotes: quoteRepo, orders: orderRepo}

	convertUC := orders.NewConvertQuoteUseCase(txRunner, quoteRepo, orderRepo, clock, orders.ConvertConfig{
		DepositPercentage:   decimal.NewFromFloat(0.60),
		FabricationLeadDays: 15,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProspectUC:   pipeline.NewProspectUseCase(prospectRepo, cache, clock),
		TransitionUC: pipeline.NewTransitionUseCase(txRunner, prospectRepo, cache, convertUC, clock, logger.Nop()),
		QuoteBuilder: quotes.NewBuilderUseCase(txRunner, prospectRepo, clock, quotes.BuilderConfig{
			ValidityDays:      15,
			DefaultPricePerM2: decimal.NewFromInt(750),
		}),
		QuoteStatus: quotes.NewStatusUseCase(quoteRepo),
		OrderUC:     orders.NewOrderUseCase(orderRepo),
		ConvertUC:   convertUC,
		ProgressUC:  appfab.NewProgressUseCase(orderRepo, clock),
		Clock:       clock,
	})
	return app
}

func emptyRepos() (*memProspectRepo, *memQuoteRepo, *memOrderRepo) {
	return &memProspectRepo{prospects: map[string]*entity.Prospect{}},
		&memQuoteRepo{quotes: map[string]*entity.Quote{}},
		&memOrderRepo{orders: map[string]*entity.Order{}}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), "respuesta: %s", raw)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// TestAPI_AltaYLecturaDeProspecto: POST crea en etapa nuevo, GET lo devuelve
// con etiqueta de presentación.
func TestAPI_AltaYLecturaDeProspecto(t *testing.T) {
	app := buildTestApp(emptyRepos())

	resp := doJSON(t, app, http.MethodPost, "/api/prospects/", dto.CreateProspectRequest{
		Name:  "María Gómez",
		Phone: "555-0102",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ProspectResponse](t, resp)
	assert.Equal(t, "nuevo", created.Stage)
	assert.Equal(t, "🆕 Nuevo", created.StageLabel)
	assert.Equal(t, "media", created.Priority, "sin prioridad explícita se asigna media")

	resp = doJSON(t, app, http.MethodGet, "/api/prospects/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.ProspectResponse](t, resp)
	assert.Equal(t, created.ID, got.ID)
}

func TestAPI_AltaSinNombreFalla(t *testing.T) {
	app := buildTestApp(emptyRepos())

	resp := doJSON(t, app, http.MethodPost, "/api/prospects/", dto.CreateProspectRequest{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errResp.Code)
}

func TestAPI_ProspectoInexistente404(t *testing.T) {
	app := buildTestApp(emptyRepos())

	resp := doJSON(t, app, http.MethodGet, "/api/prospects/no-existe", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_FOUND", errResp.Code)
}

// TestAPI_TransicionAPedidoConCascada: el flujo completo por HTTP — alta,
// cotización, aprobación y transición a pedido — devuelve el pedido con
// anticipo y saldo exactos.
func TestAPI_TransicionAPedidoConCascada(t *testing.T) {
	prospectRepo, quoteRepo, orderRepo := emptyRepos()
	app := buildTestApp(prospectRepo, quoteRepo, orderRepo)

	resp := doJSON(t, app, http.MethodPost, "/api/prospects/", dto.CreateProspectRequest{Name: "María Gómez"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	prospect := decode[dto.ProspectResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/quotes/", dto.BuildQuoteRequest{
		ProspectID:        prospect.ID,
		Unit:              "m",
		GeneralPricePerM2: decimal.NewFromInt(1000),
		Pieces: []dto.PieceRequest{
			{Location: "Sala", Width: decimal.NewFromFloat(5.0), Height: decimal.NewFromFloat(2.0)},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	quote := decode[dto.QuoteResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/quotes/"+quote.ID+"/approve", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPatch, "/api/prospects/"+prospect.ID+"/stage", dto.TransitionRequest{
		Stage:  "pedido",
		Reason: "anticipo recibido",
		Actor:  "vendedor-1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[dto.TransitionResponse](t, resp)

	assert.Equal(t, "pedido", result.Prospect.Stage)
	assert.Empty(t, result.Warning)
	require.NotNil(t, result.Order)
	// 10 m² × $1 000 = $10 000 → anticipo $6 000, saldo $4 000
	assert.True(t, result.Order.Deposit.Amount.Equal(decimal.NewFromInt(6000)))
	assert.True(t, result.Order.Balance.Amount.Equal(decimal.NewFromInt(4000)))
	require.Len(t, result.Order.Products, 1)
	assert.Equal(t, "pendiente", result.Order.Products[0].State)
}

// TestAPI_TransicionAPedidoSinCotizacion: la transición queda y se devuelve
// warning, respuesta 200.
func TestAPI_TransicionAPedidoSinCotizacion(t *testing.T) {
	prospectRepo, quoteRepo, orderRepo := emptyRepos()
	app := buildTestApp(prospectRepo, quoteRepo, orderRepo)

	resp := doJSON(t, app, http.MethodPost, "/api/prospects/", dto.CreateProspectRequest{Name: "María Gómez"})
	prospect := decode[dto.ProspectResponse](t, resp)

	resp = doJSON(t, app, http.MethodPatch, "/api/prospects/"+prospect.ID+"/stage", dto.TransitionRequest{
		Stage:  "pedido",
		Reason: "anticipo recibido",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[dto.TransitionResponse](t, resp)

	assert.Equal(t, "pedido", result.Prospect.Stage, "la transición no se revierte")
	assert.Nil(t, result.Order)
	assert.NotEmpty(t, result.Warning)
}

func TestAPI_TransicionSinMotivoFalla(t *testing.T) {
	prospectRepo, quoteRepo, orderRepo := emptyRepos()
	app := buildTestApp(prospectRepo, quoteRepo, orderRepo)

	resp := doJSON(t, app, http.MethodPost, "/api/prospects/", dto.CreateProspectRequest{Name: "María Gómez"})
	prospect := decode[dto.ProspectResponse](t, resp)

	resp = doJSON(t, app, http.MethodPatch, "/api/prospects/"+prospect.ID+"/stage", dto.TransitionRequest{
		Stage: "contactado",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestAPI_AvanceDeFabricacion: avanzar un producto por HTTP devuelve el
// pedido con el avance recalculado; retroceder responde conflicto.
func TestAPI_AvanceDeFabricacion(t *testing.T) {
	prospectRepo, quoteRepo, orderRepo := emptyRepos()
	app := buildTestApp(prospectRepo, quoteRepo, orderRepo)

	orderRepo.orders["pedido-1"] = &entity.Order{
		ID:          "pedido-1",
		QuoteID:     "cot-1",
		TotalAmount: decimal.NewFromInt(10_000),
		Products: []entity.OrderProduct{
			{ID: "prod-1", Location: "Sala", FabricationState: entity.FabricationPendiente},
		},
		EstimatedFabricationEnd: testNow.AddDate(0, 0, 21),
	}

	resp := doJSON(t, app, http.MethodPatch, "/api/orders/pedido-1/products/prod-1/state",
		dto.UpdateProductStateRequest{State: "terminado"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	order := decode[dto.OrderResponse](t, resp)
	assert.Equal(t, "terminado", order.Products[0].State)
	assert.InDelta(t, 75.0, order.Progress, 1e-9)
	assert.False(t, order.Delayed)

	// retroceso rechazado
	resp = doJSON(t, app, http.MethodPatch, "/api/orders/pedido-1/products/prod-1/state",
		dto.UpdateProductStateRequest{State: "en_proceso"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "STATE_CONFLICT", errResp.Code)
}

// TestAPI_ConversionManualSinCotizacion: el reintento manual responde 409 con
// código propio cuando no hay cotización aprobada.
func TestAPI_ConversionManualSinCotizacion(t *testing.T) {
	prospectRepo, quoteRepo, orderRepo := emptyRepos()
	app := buildTestApp(prospectRepo, quoteRepo, orderRepo)

	resp := doJSON(t, app, http.MethodPost, "/api/prospects/prospecto-1/convert", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NO_APPROVED_QUOTE", errResp.Code)
}
