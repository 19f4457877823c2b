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

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implementación de QuoteRepository (usable con pool o tx).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteColumns = `id, prospect_id, unit, total_area, total, status, valid_until, created_at, updated_at`

// Save persiste la cotización con sus piezas en orden de captura.
func (r *QuoteRepo) Save(ctx context.Context, q *entity.Quote) error {
	query := `
		INSERT INTO quotes (id, prospect_id, unit, total_area, total, status, valid_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		q.ID, q.ProspectID, q.Unit, q.TotalArea, q.Total, q.Status, q.ValidUntil,
		q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	itemQuery := `
		INSERT INTO quote_items (id, quote_id, position, location, width, height, product_label, color, price_per_m2, area_m2, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, it := range q.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			it.ID, q.ID, it.Position, it.Location, it.Width, it.Height,
			it.ProductLabel, it.Color, it.PricePerM2, it.AreaM2, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert quote item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una cotización por ID con sus piezas.
func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	var q entity.Quote
	err := r.q.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id).Scan(
		&q.ID, &q.ProspectID, &q.Unit, &q.TotalArea, &q.Total, &q.Status, &q.ValidUntil,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	items, err := r.items(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Items = items
	return &q, nil
}

// FindByProspect lista las cotizaciones del prospecto, más reciente primero.
func (r *QuoteRepo) FindByProspect(ctx context.Context, prospectID string) ([]*entity.Quote, error) {
	return r.find(ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE prospect_id = $1 ORDER BY created_at DESC`,
		prospectID,
	)
}

// FindApproved devuelve las cotizaciones convertibles del prospecto
// (aprobada o activa), más reciente primero.
func (r *QuoteRepo) FindApproved(ctx context.Context, prospectID string) ([]*entity.Quote, error) {
	return r.find(ctx,
		`SELECT `+quoteColumns+` FROM quotes
		 WHERE prospect_id = $1 AND status IN ($2, $3)
		 ORDER BY created_at DESC`,
		prospectID, entity.QuoteStatusAprobada, entity.QuoteStatusActiva,
	)
}

// UpdateStatus actualiza el estado de la cotización.
func (r *QuoteRepo) UpdateStatus(ctx context.Context, id string, status entity.QuoteStatus) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE quotes SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkConverted marca la cotización como convertida a pedido.
func (r *QuoteRepo) MarkConverted(ctx context.Context, id string) error {
	return r.UpdateStatus(ctx, id, entity.QuoteStatusConvertida)
}

func (r *QuoteRepo) find(ctx context.Context, query string, args ...any) ([]*entity.Quote, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		var q entity.Quote
		if err := rows.Scan(
			&q.ID, &q.ProspectID, &q.Unit, &q.TotalArea, &q.Total, &q.Status, &q.ValidUntil,
			&q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, q := range list {
		items, err := r.items(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		q.Items = items
	}
	return list, nil
}

func (r *QuoteRepo) items(ctx context.Context, quoteID string) ([]entity.QuoteItem, error) {
	query := `
		SELECT id, quote_id, position, location, width, height, product_label, color, price_per_m2, area_m2, subtotal
		FROM quote_items WHERE quote_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("get quote items: %w", err)
	}
	defer rows.Close()
	var items []entity.QuoteItem
	for rows.Next() {
		var it entity.QuoteItem
		if err := rows.Scan(
			&it.ID, &it.QuoteID, &it.Position, &it.Location, &it.Width, &it.Height,
			&it.ProductLabel, &it.Color, &it.PricePerM2, &it.AreaM2, &it.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
