package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/decortina/ventas-api/internal/application/ports"
	"github.com/decortina/ventas-api/internal/domain"
	"github.com/decortina/ventas-api/internal/domain/entity"
	"github.com/decortina/ventas-api/internal/domain/repository"
	"github.com/decortina/ventas-api/pkg/logger"
)

// TransitionResult resultado de una transición de etapa. Order se llena
// cuando la cascada de conversión creó (o reutilizó) un pedido; Warning se
// llena cuando la cascada falló sin revertir la transición ya confirmada.
type TransitionResult struct {
	Prospect *entity.Prospect
	Order    *entity.Order
	Warning  string
}

// TransitionUseCase máquina de etapas del prospecto. Tanto la edición manual
// (etapa arbitraria con motivo) como el arrastre del tablero (etapa de la
// columna destino) pasan por Transition.
//
// No hay bloqueo entre llamadas concurrentes: gana la última escritura que
// llega al repositorio. Un prospecto lo edita normalmente un solo operador.
type TransitionUseCase struct {
	txRunner     ports.TxRunner
	prospectRepo repository.ProspectRepository
	cache        ProspectCache
	converter    OrderConverter
	clock        ports.Clock
	log          *logger.Logger
}

// NewTransitionUseCase construye el caso de uso.
func NewTransitionUseCase(
	txRunner ports.TxRunner,
	prospectRepo repository.ProspectRepository,
	cache ProspectCache,
	converter OrderConverter,
	clock ports.Clock,
	log *logger.Logger,
) *TransitionUseCase {
	return &TransitionUseCase{
		txRunner:     txRunner,
		prospectRepo: prospectRepo,
		cache:        cache,
		converter:    converter,
		clock:        clock,
		log:          log,
	}
}

// Transition cambia la etapa del prospecto:
//
//  1. lee el prospecto actual,
//  2. aplica la nueva etapa a la copia en caché (escritura optimista),
//  3. persiste el cambio y la entrada de historial en una sola transacción,
//  4. si la persistencia falla, revierte la copia optimista y devuelve
//     conflicto; no hay reintento automático,
//  5. si la etapa destino es pedido, dispara la conversión de cotización.
//     Un fallo de la cascada NO revierte la transición ya confirmada: se
//     devuelve como advertencia.
func (uc *TransitionUseCase) Transition(ctx context.Context, prospectID string, target entity.Stage, reason, actor string) (*TransitionResult, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("etapa %q: %w", target, domain.ErrInvalidInput)
	}
	if reason == "" {
		return nil, fmt.Errorf("motivo requerido para cambiar de etapa: %w", domain.ErrInvalidInput)
	}

	prospect, err := uc.prospectRepo.Get(ctx, prospectID)
	if err != nil {
		return nil, fmt.Errorf("leer prospecto %s: %w", prospectID, err)
	}
	if prospect == nil {
		return nil, fmt.Errorf("prospecto %s: %w", prospectID, domain.ErrNotFound)
	}

	prior := prospect.Stage
	now := uc.clock.Now()
	change := entity.StageChange{
		ID:         uuid.New().String(),
		ProspectID: prospectID,
		From:       prior,
		To:         target,
		Reason:     reason,
		Actor:      actor,
		ChangedAt:  now,
	}

	// Escritura optimista: el tablero ve la etapa nueva de inmediato.
	updated := *prospect
	updated.Stage = target
	updated.UpdatedAt = now
	updated.StageHistory = append(append([]entity.StageChange{}, prospect.StageHistory...), change)
	uc.cache.Put(&updated)

	// Etapa e historial se confirman juntos: sin la entrada de auditoría la
	// etapa nueva no debe quedar persistida.
	err = uc.txRunner.Run(ctx, func(
		prospectRepo repository.ProspectRepository,
		_ repository.QuoteRepository,
		_ repository.OrderRepository,
	) error {
		if err := prospectRepo.UpdateStage(ctx, prospectID, target); err != nil {
			return err
		}
		return prospectRepo.AppendHistory(ctx, prospectID, change)
	})
	if err != nil {
		uc.cache.Put(prospect) // revertir a la etapa anterior
		return nil, fmt.Errorf("persistir etapa de %s: %v: %w", prospectID, err, domain.ErrConflict)
	}

	uc.log.Info().
		Str("prospect_id", prospectID).
		Str("from", string(prior)).
		Str("to", string(target)).
		Str("actor", actor).
		Msg("etapa cambiada")

	result := &TransitionResult{Prospect: &updated}
	if target != entity.StagePedido {
		return result, nil
	}

	// Cascada: entrar a pedido convierte la cotización aprobada más reciente.
	// La transición ya quedó confirmada; un fallo aquí se reporta como
	// advertencia, nunca la revierte.
	order, err := uc.converter.ConvertFromApprovedQuote(ctx, prospectID)
	switch {
	case err == nil:
		result.Order = order
	case errors.Is(err, domain.ErrNoApprovedQuote):
		result.Warning = fmt.Sprintf("el prospecto %s pasó a pedido sin cotización aprobada; no se creó pedido", prospectID)
		uc.log.Warn().Str("prospect_id", prospectID).Msg("transición a pedido sin cotización aprobada")
	default:
		result.Warning = fmt.Sprintf("la conversión a pedido de %s falló: %v", prospectID, err)
		uc.log.Warn().Err(err).Str("prospect_id", prospectID).Msg("cascada de conversión falló")
	}
	return result, nil
}
