package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/decortina/ventas-api/internal/application/dto"
	"github.com/decortina/ventas-api/internal/application/ports"
	"github.com/decortina/ventas-api/internal/domain"
	"github.com/decortina/ventas-api/internal/domain/entity"
	"github.com/decortina/ventas-api/internal/domain/repository"
)

// ProspectUseCase alta y consulta de prospectos. Las lecturas por ID pasan
// primero por la caché local para que el tablero vea las escrituras
// optimistas pendientes.
type ProspectUseCase struct {
	prospectRepo repository.ProspectRepository
	cache        ProspectCache
	clock        ports.Clock
}

// NewProspectUseCase construye el caso de uso.
func NewProspectUseCase(prospectRepo repository.ProspectRepository, cache ProspectCache, clock ports.Clock) *ProspectUseCase {
	return &ProspectUseCase{prospectRepo: prospectRepo, cache: cache, clock: clock}
}

// Create da de alta un prospecto en la etapa nuevo.
func (uc *ProspectUseCase) Create(ctx context.Context, in dto.CreateProspectRequest) (*entity.Prospect, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("nombre requerido: %w", domain.ErrInvalidInput)
	}
	priority := entity.Priority(in.Priority)
	if in.Priority == "" {
		priority = entity.PriorityMedia
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("prioridad %q: %w", in.Priority, domain.ErrInvalidInput)
	}

	now := uc.clock.Now()
	p := &entity.Prospect{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
		Stage:     entity.StageNuevo,
		Priority:  priority,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.prospectRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("crear prospecto: %w", err)
	}
	uc.cache.Put(p)
	return p, nil
}

// Get lee un prospecto, primero de la caché local y si no del repositorio.
func (uc *ProspectUseCase) Get(ctx context.Context, id string) (*entity.Prospect, error) {
	if p, ok := uc.cache.Get(id); ok {
		return p, nil
	}
	p, err := uc.prospectRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("prospecto %s: %w", id, domain.ErrNotFound)
	}
	uc.cache.Put(p)
	return p, nil
}

// ListByStage lista los prospectos de una columna del tablero.
func (uc *ProspectUseCase) ListByStage(ctx context.Context, stage entity.Stage) ([]*entity.Prospect, error) {
	if !stage.IsValid() {
		return nil, fmt.Errorf("etapa %q: %w", stage, domain.ErrInvalidInput)
	}
	return uc.prospectRepo.ListByStage(ctx, stage)
}
