package quotes

import (
	"fmt"

	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/decortina/ventas-api/internal/application/dto"
	"github.com/decortina/ventas-api/internal/application/ports"
	"github.com/decortina/ventas-api/internal/domain"
	"github.com/decortina/ventas-api/internal/domain/entity"
	"github.com/decortina/ventas-api/internal/domain/pricing"
	"github.com/decortina/ventas-api/internal/domain/repository"
)

// BuilderConfig políticas comerciales para construir cotizaciones.
type BuilderConfig struct {
	ValidityDays      int             // vigencia de la cotización en días calendario
	DefaultPricePerM2 decimal.Decimal // precio general si la petición no trae uno
}

// BuilderUseCase convierte un conjunto de piezas medidas en una cotización
// con precio. El cálculo es puro (internal/domain/pricing); aquí solo se
// valida, se arma la entidad y se persiste.
type BuilderUseCase struct {
	txRunner     ports.TxRunner
	prospectRepo repository.ProspectRepository
	clock        ports.Clock
	cfg          BuilderConfig
}

// NewBuilderUseCase construye el caso de uso.
func NewBuilderUseCase(
	txRunner ports.TxRunner,
	prospectRepo repository.ProspectRepository,
	clock ports.Clock,
	cfg BuilderConfig,
) *BuilderUseCase {
	return &BuilderUseCase{
		txRunner:     txRunner,
		prospectRepo: prospectRepo,
		clock:        clock,
		cfg:          cfg,
	}
}

// Build valida las piezas, calcula áreas y subtotales y persiste la
// cotización en estado borrador. Toda validación ocurre antes de cualquier
// mutación; la misma entrada produce siempre los mismos totales.
func (uc *BuilderUseCase) Build(ctx context.Context, in dto.BuildQuoteRequest) (*entity.Quote, error) {
	if in.ProspectID == "" {
		return nil, fmt.Errorf("prospect_id requerido: %w", domain.ErrInvalidInput)
	}
	prospect, err := uc.prospectRepo.Get(ctx, in.ProspectID)
	if err != nil {
		return nil, err
	}
	if prospect == nil {
		return nil, fmt.Errorf("prospecto %s: %w", in.ProspectID, domain.ErrNotFound)
	}

	generalPrice := in.GeneralPricePerM2
	if !generalPrice.GreaterThan(decimal.Zero) {
		generalPrice = uc.cfg.DefaultPricePerM2
	}

	pieces := make([]pricing.PieceInput, 0, len(in.Pieces))
	for _, p := range in.Pieces {
		pieces = append(pieces, pricing.PieceInput{
			Location:     p.Location,
			Width:        p.Width,
			Height:       p.Height,
			ProductLabel: p.Product,
			Color:        p.Color,
			PricePerM2:   p.PricePerM2,
		})
	}

	unit := entity.MeasureUnit(in.Unit)
	priced, totalArea, total, err := pricing.ComputePieces(pieces, generalPrice, unit)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	quote := &entity.Quote{
		ID:         uuid.New().String(),
		ProspectID: in.ProspectID,
		Unit:       unit,
		TotalArea:  totalArea,
		Total:      total,
		Status:     entity.QuoteStatusBorrador,
		ValidUntil: now.AddDate(0, 0, uc.cfg.ValidityDays),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for i, p := range priced {
		quote.Items = append(quote.Items, entity.QuoteItem{
			ID:           uuid.New().String(),
			QuoteID:      quote.ID,
			Position:     i,
			Location:     p.Location,
			Width:        p.Width,
			Height:       p.Height,
			ProductLabel: p.ProductLabel,
			Color:        p.Color,
			PricePerM2:   pricing.EffectivePrice(p.PricePerM2, generalPrice),
			AreaM2:       p.AreaM2,
			Subtotal:     p.Subtotal,
		})
	}

	// Cabecera y piezas se confirman juntas: una cotización no puede quedar
	// persistida con un total que sus piezas no reconstruyen.
	err = uc.txRunner.Run(ctx, func(
		_ repository.ProspectRepository,
		quoteRepo repository.QuoteRepository,
		_ repository.OrderRepository,
	) error {
		return quoteRepo.Save(ctx, quote)
	})
	if err != nil {
		return nil, fmt.Errorf("guardar cotización: %w", err)
	}
	return quote, nil
}
