package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics-orders/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the persistence contract for orders and their
// child records. Partial updates merge only the supplied fields; every
// child operation is scoped by the parent order id. The repository performs
// no recalculation or status synchronization of its own — that is the
// coordinator's job.
type RepositoryInterface interface {
	// WithTx runs fn against a repository bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(RepositoryInterface) error) error

	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error)
	FindOrder(ctx context.Context, orderID int) (*models.Order, error)
	ListOrders(ctx context.Context, offset, limit int) ([]*models.Order, error)
	UpdateOrder(ctx context.Context, orderID int, req models.UpdateOrderRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, orderID int) error
	SetOrderTotal(ctx context.Context, orderID int, total float64) error
	SetOrderStatus(ctx context.Context, orderID int, status models.OrderStatus) error

	CreateItem(ctx context.Context, orderID int, req models.CreateItemRequest) (*models.OrderItem, error)
	FindItem(ctx context.Context, orderID, itemID int) (*models.OrderItem, error)
	ListItems(ctx context.Context, orderID int) ([]*models.OrderItem, error)
	UpdateItem(ctx context.Context, orderID, itemID int, req models.UpdateItemRequest) (*models.OrderItem, error)
	DeleteItem(ctx context.Context, orderID, itemID int) error

	CreateCalculation(ctx context.Context, orderID int, values models.CalculationValues) (*models.PriceCalculation, error)
	FindCalculation(ctx context.Context, orderID, calculationID int) (*models.PriceCalculation, error)
	ListCalculations(ctx context.Context, orderID int) ([]*models.PriceCalculation, error)
	UpdateCalculation(ctx context.Context, orderID, calculationID int, values models.CalculationValues) (*models.PriceCalculation, error)
	DeleteCalculation(ctx context.Context, orderID, calculationID int) error

	CreateHistory(ctx context.Context, orderID int, status models.OrderStatus, changedBy int, notes *string) (*models.OrderStatusHistory, error)
	FindHistory(ctx context.Context, orderID, historyID int) (*models.OrderStatusHistory, error)
	ListHistory(ctx context.Context, orderID int) ([]*models.OrderStatusHistory, error)
	DeleteHistory(ctx context.Context, orderID, historyID int) error
}

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the
// same repository methods run inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository implements RepositoryInterface on PostgreSQL.
type Repository struct {
	db   querier
	pool *pgxpool.Pool
}

// NewRepository creates a new order repository backed by the pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool, pool: pool}
}

// WithTx begins a transaction and runs fn against a transaction-bound copy
// of the repository.
func (r *Repository) WithTx(ctx context.Context, fn func(RepositoryInterface) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository.WithTx.Begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&Repository{db: tx, pool: r.pool}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository.WithTx.Commit: %w", err)
	}
	return nil
}

// mapPgError converts store-level failures into the service error taxonomy.
func mapPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return models.ErrConflict
	}
	return err
}

const orderColumns = `order_id, customer_id, pickup_location, delivery_location,
		requested_pickup_date, delivery_deadline, total_price, status, created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.OrderID,
		&o.CustomerID,
		&o.PickupLocation,
		&o.DeliveryLocation,
		&o.RequestedPickupDate,
		&o.DeliveryDeadline,
		&o.TotalPrice,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &o, nil
}

// CreateOrder inserts a new order. Status always starts as pending; the
// client-supplied total is the only direct total write it will ever get.
func (r *Repository) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	query := `
		INSERT INTO orders (customer_id, pickup_location, delivery_location,
			requested_pickup_date, delivery_deadline, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING ` + orderColumns

	order, err := scanOrder(r.db.QueryRow(ctx, query,
		req.CustomerID, req.PickupLocation, req.DeliveryLocation,
		req.RequestedPickupDate, req.DeliveryDeadline, req.TotalPrice))
	if err != nil {
		return nil, fmt.Errorf("repository.CreateOrder: %w", err)
	}
	return order, nil
}

// FindOrder retrieves a single order by id.
func (r *Repository) FindOrder(ctx context.Context, orderID int) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1`
	order, err := scanOrder(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		return nil, fmt.Errorf("repository.FindOrder: %w", err)
	}
	return order, nil
}

// ListOrders retrieves orders with offset/limit pagination, oldest first.
func (r *Repository) ListOrders(ctx context.Context, offset, limit int) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("repository.ListOrders.Query: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListOrders.Scan: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// UpdateOrder applies only the fields present in the partial payload.
func (r *Repository) UpdateOrder(ctx context.Context, orderID int, req models.UpdateOrderRequest) (*models.Order, error) {
	var setClauses []string
	var args []any
	argIdx := 1

	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.CustomerID != nil {
		add("customer_id", *req.CustomerID)
	}
	if req.PickupLocation != nil {
		add("pickup_location", *req.PickupLocation)
	}
	if req.DeliveryLocation != nil {
		add("delivery_location", *req.DeliveryLocation)
	}
	if req.RequestedPickupDate != nil {
		add("requested_pickup_date", *req.RequestedPickupDate)
	}
	if req.DeliveryDeadline != nil {
		add("delivery_deadline", *req.DeliveryDeadline)
	}
	if req.Status != nil {
		add("status", *req.Status)
	}

	if len(setClauses) == 0 {
		return r.FindOrder(ctx, orderID)
	}
	add("updated_at", time.Now())

	args = append(args, orderID)
	query := fmt.Sprintf(`UPDATE orders SET %s WHERE order_id = $%d RETURNING `+orderColumns,
		strings.Join(setClauses, ", "), argIdx)

	order, err := scanOrder(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateOrder: %w", err)
	}
	return order, nil
}

// DeleteOrder removes an order; items, calculations and history rows go
// with it via the cascade foreign keys.
func (r *Repository) DeleteOrder(ctx context.Context, orderID int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("repository.DeleteOrder: %w", mapPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetOrderTotal overwrites the order's authoritative total price.
func (r *Repository) SetOrderTotal(ctx context.Context, orderID int, total float64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE orders SET total_price = $1, updated_at = NOW() WHERE order_id = $2`, total, orderID)
	if err != nil {
		return fmt.Errorf("repository.SetOrderTotal: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetOrderStatus overwrites the order's current status.
func (r *Repository) SetOrderStatus(ctx context.Context, orderID int, status models.OrderStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE order_id = $2`, status, orderID)
	if err != nil {
		return fmt.Errorf("repository.SetOrderStatus: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
