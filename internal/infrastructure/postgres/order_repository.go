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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
// La tabla orders tiene índice único sobre quote_id: a lo sumo un pedido
// por cotización, también bajo llamadas concurrentes.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, quote_id, prospect_id, total_amount,
	deposit_percentage, deposit_amount, deposit_paid, deposit_paid_at,
	balance_amount, balance_paid, balance_paid_at,
	estimated_fabrication_end, estimated_installation, created_at, updated_at`

// Save persiste el pedido con sus productos.
func (r *OrderRepo) Save(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, quote_id, prospect_id, total_amount,
			deposit_percentage, deposit_amount, deposit_paid, deposit_paid_at,
			balance_amount, balance_paid, balance_paid_at,
			estimated_fabrication_end, estimated_installation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.QuoteID, o.ProspectID, o.TotalAmount,
		o.Deposit.Percentage, o.Deposit.Amount, o.Deposit.Paid, o.Deposit.PaidAt,
		o.Balance.Amount, o.Balance.Paid, o.Balance.PaidAt,
		o.EstimatedFabricationEnd, o.EstimatedInstallation, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	productQuery := `
		INSERT INTO order_products (id, order_id, position, location, product_label, color, area_m2, subtotal, fabrication_state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, p := range o.Products {
		_, err := r.q.Exec(ctx, productQuery,
			p.ID, o.ID, p.Position, p.Location, p.ProductLabel, p.Color,
			p.AreaM2, p.Subtotal, p.FabricationState,
		)
		if err != nil {
			return fmt.Errorf("insert order product: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un pedido por ID con sus productos.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getBy(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// FindByQuoteID devuelve el pedido de la cotización, o nil si no existe.
func (r *OrderRepo) FindByQuoteID(ctx context.Context, quoteID string) (*entity.Order, error) {
	return r.getBy(ctx, `SELECT `+orderColumns+` FROM orders WHERE quote_id = $1`, quoteID)
}

// UpdateProduct persiste el estado de fabricación nuevo de un producto.
func (r *OrderRepo) UpdateProduct(ctx context.Context, orderID, productID string, state entity.FabricationState) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE order_products SET fabrication_state = $3 WHERE order_id = $1 AND id = $2`,
		orderID, productID, state,
	)
	if err != nil {
		return fmt.Errorf("update order product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	_, err = r.q.Exec(ctx, `UPDATE orders SET updated_at = now() WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("touch order: %w", err)
	}
	return nil
}

// MarkDepositPaid registra el pago del anticipo.
func (r *OrderRepo) MarkDepositPaid(ctx context.Context, orderID string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE orders SET deposit_paid = true, deposit_paid_at = now(), updated_at = now() WHERE id = $1`,
		orderID,
	)
	if err != nil {
		return fmt.Errorf("mark deposit paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkBalancePaid registra el pago del saldo.
func (r *OrderRepo) MarkBalancePaid(ctx context.Context, orderID string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE orders SET balance_paid = true, balance_paid_at = now(), updated_at = now() WHERE id = $1`,
		orderID,
	)
	if err != nil {
		return fmt.Errorf("mark balance paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) getBy(ctx context.Context, query string, arg any) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&o.ID, &o.QuoteID, &o.ProspectID, &o.TotalAmount,
		&o.Deposit.Percentage, &o.Deposit.Amount, &o.Deposit.Paid, &o.Deposit.PaidAt,
		&o.Balance.Amount, &o.Balance.Paid, &o.Balance.PaidAt,
		&o.EstimatedFabricationEnd, &o.EstimatedInstallation, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	products, err := r.products(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Products = products
	return &o, nil
}

func (r *OrderRepo) products(ctx context.Context, orderID string) ([]entity.OrderProduct, error) {
	query := `
		SELECT id, order_id, position, location, product_label, color, area_m2, subtotal, fabrication_state
		FROM order_products WHERE order_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order products: %w", err)
	}
	defer rows.Close()
	var products []entity.OrderProduct
	for rows.Next() {
		var p entity.OrderProduct
		if err := rows.Scan(
			&p.ID, &p.OrderID, &p.Position, &p.Location, &p.ProductLabel, &p.Color,
			&p.AreaM2, &p.Subtotal, &p.FabricationState,
		); err != nil {
			return nil, fmt.Errorf("scan order product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
