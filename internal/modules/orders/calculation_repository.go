package orders

import (
	"context"
	"errors"
	"fmt"

	"logistics-orders/internal/models"

	"github.com/jackc/pgx/v5"
)

const calculationColumns = `calculation_id, order_id, base_price, distance_factor,
		weight_factor, urgency_factor, final_price, created_at, updated_at`

func scanCalculation(row pgx.Row) (*models.PriceCalculation, error) {
	var pc models.PriceCalculation
	err := row.Scan(
		&pc.CalculationID,
		&pc.OrderID,
		&pc.BasePrice,
		&pc.DistanceFactor,
		&pc.WeightFactor,
		&pc.UrgencyFactor,
		&pc.FinalPrice,
		&pc.CreatedAt,
		&pc.UpdatedAt,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &pc, nil
}

// CreateCalculation inserts a fully resolved price calculation.
func (r *Repository) CreateCalculation(ctx context.Context, orderID int, values models.CalculationValues) (*models.PriceCalculation, error) {
	query := `
		INSERT INTO price_calculations (order_id, base_price, distance_factor,
			weight_factor, urgency_factor, final_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + calculationColumns

	calc, err := scanCalculation(r.db.QueryRow(ctx, query,
		orderID, values.BasePrice, values.DistanceFactor,
		values.WeightFactor, values.UrgencyFactor, values.FinalPrice))
	if err != nil {
		return nil, fmt.Errorf("repository.CreateCalculation: %w", err)
	}
	return calc, nil
}

// FindCalculation retrieves one calculation scoped by its order.
func (r *Repository) FindCalculation(ctx context.Context, orderID, calculationID int) (*models.PriceCalculation, error) {
	query := `SELECT ` + calculationColumns + ` FROM price_calculations
		WHERE order_id = $1 AND calculation_id = $2`
	calc, err := scanCalculation(r.db.QueryRow(ctx, query, orderID, calculationID))
	if err != nil {
		return nil, fmt.Errorf("repository.FindCalculation: %w", err)
	}
	return calc, nil
}

// ListCalculations retrieves all calculations of an order.
func (r *Repository) ListCalculations(ctx context.Context, orderID int) ([]*models.PriceCalculation, error) {
	query := `SELECT ` + calculationColumns + ` FROM price_calculations
		WHERE order_id = $1 ORDER BY calculation_id`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListCalculations.Query: %w", err)
	}
	defer rows.Close()

	var calcs []*models.PriceCalculation
	for rows.Next() {
		calc, err := scanCalculation(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListCalculations.Scan: %w", err)
		}
		calcs = append(calcs, calc)
	}
	return calcs, rows.Err()
}

// UpdateCalculation overwrites the pricing columns with the resolved value
// set. The merge of supplied and stored factors happens in the coordinator,
// so by the time it reaches the store the row is written whole.
func (r *Repository) UpdateCalculation(ctx context.Context, orderID, calculationID int, values models.CalculationValues) (*models.PriceCalculation, error) {
	query := `
		UPDATE price_calculations
		SET base_price = $1, distance_factor = $2, weight_factor = $3,
			urgency_factor = $4, final_price = $5, updated_at = NOW()
		WHERE order_id = $6 AND calculation_id = $7
		RETURNING ` + calculationColumns

	calc, err := scanCalculation(r.db.QueryRow(ctx, query,
		values.BasePrice, values.DistanceFactor, values.WeightFactor,
		values.UrgencyFactor, values.FinalPrice, orderID, calculationID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateCalculation: %w", err)
	}
	return calc, nil
}

// DeleteCalculation removes one calculation scoped by its order.
func (r *Repository) DeleteCalculation(ctx context.Context, orderID, calculationID int) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM price_calculations WHERE order_id = $1 AND calculation_id = $2`, orderID, calculationID)
	if err != nil {
		return fmt.Errorf("repository.DeleteCalculation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
