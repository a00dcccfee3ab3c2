package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics-orders/internal/models"

	"github.com/jackc/pgx/v5"
)

const itemColumns = `item_id, order_id, cargo_type, weight_kg, dimensions_cm,
		special_requirements, item_price, status, created_at, updated_at`

func scanItem(row pgx.Row) (*models.OrderItem, error) {
	var it models.OrderItem
	err := row.Scan(
		&it.ItemID,
		&it.OrderID,
		&it.CargoType,
		&it.WeightKg,
		&it.DimensionsCm,
		&it.SpecialRequirements,
		&it.ItemPrice,
		&it.Status,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &it, nil
}

// CreateItem inserts a new item under the given order.
func (r *Repository) CreateItem(ctx context.Context, orderID int, req models.CreateItemRequest) (*models.OrderItem, error) {
	status := req.Status
	if status == "" {
		status = models.ItemStatusPending
	}

	query := `
		INSERT INTO order_items (order_id, cargo_type, weight_kg, dimensions_cm,
			special_requirements, item_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + itemColumns

	item, err := scanItem(r.db.QueryRow(ctx, query,
		orderID, req.CargoType, req.WeightKg, req.DimensionsCm,
		req.SpecialRequirements, req.ItemPrice, status))
	if err != nil {
		return nil, fmt.Errorf("repository.CreateItem: %w", err)
	}
	return item, nil
}

// FindItem retrieves one item scoped by its order.
func (r *Repository) FindItem(ctx context.Context, orderID, itemID int) (*models.OrderItem, error) {
	query := `SELECT ` + itemColumns + ` FROM order_items WHERE order_id = $1 AND item_id = $2`
	item, err := scanItem(r.db.QueryRow(ctx, query, orderID, itemID))
	if err != nil {
		return nil, fmt.Errorf("repository.FindItem: %w", err)
	}
	return item, nil
}

// ListItems retrieves all live items of an order.
func (r *Repository) ListItems(ctx context.Context, orderID int) ([]*models.OrderItem, error) {
	query := `SELECT ` + itemColumns + ` FROM order_items WHERE order_id = $1 ORDER BY item_id`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListItems.Query: %w", err)
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListItems.Scan: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem applies only the fields present in the partial payload.
func (r *Repository) UpdateItem(ctx context.Context, orderID, itemID int, req models.UpdateItemRequest) (*models.OrderItem, error) {
	var setClauses []string
	var args []any
	argIdx := 1

	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.CargoType != nil {
		add("cargo_type", *req.CargoType)
	}
	if req.WeightKg != nil {
		add("weight_kg", *req.WeightKg)
	}
	if req.DimensionsCm != nil {
		add("dimensions_cm", *req.DimensionsCm)
	}
	if req.SpecialRequirements != nil {
		add("special_requirements", *req.SpecialRequirements)
	}
	if req.ItemPrice != nil {
		add("item_price", *req.ItemPrice)
	}
	if req.Status != nil {
		add("status", *req.Status)
	}

	if len(setClauses) == 0 {
		return r.FindItem(ctx, orderID, itemID)
	}
	add("updated_at", time.Now())

	args = append(args, orderID, itemID)
	query := fmt.Sprintf(`UPDATE order_items SET %s WHERE order_id = $%d AND item_id = $%d RETURNING `+itemColumns,
		strings.Join(setClauses, ", "), argIdx, argIdx+1)

	item, err := scanItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateItem: %w", err)
	}
	return item, nil
}

// DeleteItem removes one item scoped by its order.
func (r *Repository) DeleteItem(ctx context.Context, orderID, itemID int) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM order_items WHERE order_id = $1 AND item_id = $2`, orderID, itemID)
	if err != nil {
		return fmt.Errorf("repository.DeleteItem: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
