package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/decortina/ventas-api/internal/domain"
	"github.com/decortina/ventas-api/internal/domain/entity"
	"github.com/decortina/ventas-api/internal/domain/repository"
)

var _ repository.ProspectRepository = (*ProspectRepo)(nil)

// ProspectRepo implementación de ProspectRepository (usable con pool o tx).
type ProspectRepo struct {
	q Querier
}

// NewProspectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProspectRepository(q Querier) *ProspectRepo {
	return &ProspectRepo{q: q}
}

// Create persiste un nuevo prospecto.
func (r *ProspectRepo) Create(ctx context.Context, p *entity.Prospect) error {
	query := `
		INSERT INTO prospects (id, name, phone, email, address, stage, priority, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Phone, p.Email, p.Address, p.Stage, p.Priority, p.Notes,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert prospect: %w", err)
	}
	return nil
}

// Get obtiene un prospecto por ID con su historial de etapas en orden cronológico.
func (r *ProspectRepo) Get(ctx context.Context, id string) (*entity.Prospect, error) {
	query := `
		SELECT id, name, phone, email, address, stage, priority, notes, created_at, updated_at
		FROM prospects WHERE id = $1`
	var p entity.Prospect
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Phone, &p.Email, &p.Address, &p.Stage, &p.Priority, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get prospect: %w", err)
	}

	history, err := r.history(ctx, id)
	if err != nil {
		return nil, err
	}
	p.StageHistory = history
	return &p, nil
}

// UpdateStage persiste la etapa nueva del prospecto. El motivo del cambio
// vive en el historial, no en la fila del prospecto.
func (r *ProspectRepo) UpdateStage(ctx context.Context, id string, stage entity.Stage) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE prospects SET stage = $2, updated_at = now() WHERE id = $1`,
		id, stage,
	)
	if err != nil {
		return fmt.Errorf("update stage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendHistory agrega una entrada de auditoría al historial de etapas.
func (r *ProspectRepo) AppendHistory(ctx context.Context, id string, change entity.StageChange) error {
	query := `
		INSERT INTO prospect_stage_history (id, prospect_id, from_stage, to_stage, reason, actor, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		change.ID, id, change.From, change.To, change.Reason, change.Actor, change.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stage history: %w", err)
	}
	return nil
}

// ListByStage lista los prospectos de una etapa, más reciente primero.
func (r *ProspectRepo) ListByStage(ctx context.Context, stage entity.Stage) ([]*entity.Prospect, error) {
	query := `
		SELECT id, name, phone, email, address, stage, priority, notes, created_at, updated_at
		FROM prospects WHERE stage = $1 ORDER BY updated_at DESC`
	rows, err := r.q.Query(ctx, query, stage)
	if err != nil {
		return nil, fmt.Errorf("list prospects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Prospect
	for rows.Next() {
		var p entity.Prospect
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Phone, &p.Email, &p.Address, &p.Stage, &p.Priority, &p.Notes,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan prospect: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *ProspectRepo) history(ctx context.Context, prospectID string) ([]entity.StageChange, error) {
	query := `
		SELECT id, prospect_id, from_stage, to_stage, reason, actor, changed_at
		FROM prospect_stage_history WHERE prospect_id = $1 ORDER BY changed_at`
	rows, err := r.q.Query(ctx, query, prospectID)
	if err != nil {
		return nil, fmt.Errorf("get stage history: %w", err)
	}
	defer rows.Close()
	var history []entity.StageChange
	for rows.Next() {
		var c entity.StageChange
		if err := rows.Scan(&c.ID, &c.ProspectID, &c.From, &c.To, &c.Reason, &c.Actor, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan stage history: %w", err)
		}
		history = append(history, c)
	}
	return history, rows.Err()
}
