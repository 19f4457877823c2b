package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/decortina/ventas-api/internal/application/ports"
	"github.com/decortina/ventas-api/internal/domain"
	"github.com/decortina/ventas-api/internal/domain/entity"
	"github.com/decortina/ventas-api/internal/domain/repository"
	"github.com/decortina/ventas-api/pkg/fechas"
)

// ConvertConfig políticas de conversión de cotización a pedido.
type ConvertConfig struct {
	DepositPercentage   decimal.Decimal // fracción del total cobrada como anticipo
	FabricationLeadDays int             // días hábiles estimados de fabricación
}

// ConvertQuoteUseCase convierte la cotización aprobada más reciente de un
// prospecto en un pedido con anticipo y saldo. La operación es idempotente
// por cotización: a lo sumo existe un pedido por quote_id.
type ConvertQuoteUseCase struct {
	txRunner  ports.TxRunner
	quoteRepo repository.QuoteRepository
	orderRepo repository.OrderRepository
	clock     ports.Clock
	cfg       ConvertConfig
}

// NewConvertQuoteUseCase construye el caso de uso.
func NewConvertQuoteUseCase(
	txRunner ports.TxRunner,
	quoteRepo repository.QuoteRepository,
	orderRepo repository.OrderRepository,
	clock ports.Clock,
	cfg ConvertConfig,
) *ConvertQuoteUseCase {
	return &ConvertQuoteUseCase{
		txRunner:  txRunner,
		quoteRepo: quoteRepo,
		orderRepo: orderRepo,
		clock:     clock,
		cfg:       cfg,
	}
}

// ConvertFromApprovedQuote busca las cotizaciones convertibles del prospecto
// (aprobada o activa), elige la de creación más reciente y crea el pedido.
// Si la cotización elegida ya tiene pedido, devuelve ese pedido sin crear
// otro, por lo que la llamada es segura de reintentar.
func (uc *ConvertQuoteUseCase) ConvertFromApprovedQuote(ctx context.Context, prospectID string) (*entity.Order, error) {
	if prospectID == "" {
		return nil, fmt.Errorf("prospect_id requerido: %w", domain.ErrInvalidInput)
	}

	candidates, err := uc.quoteRepo.FindApproved(ctx, prospectID)
	if err != nil {
		return nil, fmt.Errorf("buscar cotizaciones de %s: %w", prospectID, err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("prospecto %s: %w", prospectID, domain.ErrNoApprovedQuote)
	}

	// Desempate determinista: la de creación más reciente.
	quote := candidates[0]
	for _, q := range candidates[1:] {
		if q.CreatedAt.After(quote.CreatedAt) {
			quote = q
		}
	}

	// Idempotencia: un pedido por cotización.
	if existing, err := uc.orderRepo.FindByQuoteID(ctx, quote.ID); err != nil {
		return nil, fmt.Errorf("buscar pedido de cotización %s: %w", quote.ID, err)
	} else if existing != nil {
		// Reintento tras un fallo parcial: asegurar que la cotización quedó marcada.
		if quote.Status != entity.QuoteStatusConvertida {
			if err := uc.quoteRepo.MarkConverted(ctx, quote.ID); err != nil {
				return nil, fmt.Errorf("marcar cotización %s convertida: %w", quote.ID, err)
			}
		}
		return existing, nil
	}

	now := uc.clock.Now()
	deposit := quote.Total.Mul(uc.cfg.DepositPercentage).Round(2)
	// El saldo nunca se redondea por separado: total - anticipo garantiza
	// la suma exacta.
	balance := quote.Total.Sub(deposit)

	fabricationEnd := fechas.AddBusinessDays(now, uc.cfg.FabricationLeadDays)
	order := &entity.Order{
		ID:          uuid.New().String(),
		QuoteID:     quote.ID,
		ProspectID:  prospectID,
		TotalAmount: quote.Total,
		Deposit: entity.PaymentPart{
			Percentage: uc.cfg.DepositPercentage,
			Amount:     deposit,
		},
		Balance: entity.PaymentPart{
			Amount: balance,
		},
		EstimatedFabricationEnd: fabricationEnd,
		EstimatedInstallation:   fabricationEnd.AddDate(0, 0, 1),
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	for i, item := range quote.Items {
		order.Products = append(order.Products, entity.OrderProduct{
			ID:               uuid.New().String(),
			OrderID:          order.ID,
			Position:         i,
			Location:         item.Location,
			ProductLabel:     item.ProductLabel,
			Color:            item.Color,
			AreaM2:           item.AreaM2,
			Subtotal:         item.Subtotal,
			FabricationState: entity.FabricationPendiente,
		})
	}

	// Pedido y marca de convertida se confirman juntos: un fallo a mitad de
	// camino no deja pedido sin productos ni cotización a medio marcar.
	err = uc.txRunner.Run(ctx, func(
		_ repository.ProspectRepository,
		quoteRepo repository.QuoteRepository,
		orderRepo repository.OrderRepository,
	) error {
		if err := orderRepo.Save(ctx, order); err != nil {
			return err
		}
		return quoteRepo.MarkConverted(ctx, quote.ID)
	})
	if err != nil {
		// Carrera entre dos conversiones de la misma cotización: el índice
		// único sobre quote_id detiene la segunda; se devuelve el pedido ganador.
		if errors.Is(err, domain.ErrDuplicate) {
			existing, ferr := uc.orderRepo.FindByQuoteID(ctx, quote.ID)
			if ferr != nil || existing == nil {
				return nil, fmt.Errorf("pedido duplicado para cotización %s: %w", quote.ID, err)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("guardar pedido de cotización %s: %w", quote.ID, err)
	}
	return order, nil
}
