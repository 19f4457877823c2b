package repository

import (
	"context"

	"github.com/decortina/ventas-api/internal/domain/entity"
)

// ProspectRepository define el puerto de persistencia para Prospect.
type ProspectRepository interface {
	Create(ctx context.Context, p *entity.Prospect) error
	Get(ctx context.Context, id string) (*entity.Prospect, error)
	UpdateStage(ctx context.Context, id string, stage entity.Stage) error
	AppendHistory(ctx context.Context, id string, change entity.StageChange) error
	ListByStage(ctx context.Context, stage entity.Stage) ([]*entity.Prospect, error)
}
