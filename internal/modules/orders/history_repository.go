package orders

import (
	"context"
	"fmt"

	"logistics-orders/internal/models"

	"github.com/jackc/pgx/v5"
)

const historyColumns = `history_id, order_id, status, changed_at, changed_by, notes`

func scanHistory(row pgx.Row) (*models.OrderStatusHistory, error) {
	var h models.OrderStatusHistory
	err := row.Scan(
		&h.HistoryID,
		&h.OrderID,
		&h.Status,
		&h.ChangedAt,
		&h.ChangedBy,
		&h.Notes,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &h, nil
}

// CreateHistory appends an immutable status history entry with a
// server-assigned changed_at timestamp.
func (r *Repository) CreateHistory(ctx context.Context, orderID int, status models.OrderStatus, changedBy int, notes *string) (*models.OrderStatusHistory, error) {
	query := `
		INSERT INTO order_status_history (order_id, status, changed_by, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + historyColumns

	entry, err := scanHistory(r.db.QueryRow(ctx, query, orderID, status, changedBy, notes))
	if err != nil {
		return nil, fmt.Errorf("repository.CreateHistory: %w", err)
	}
	return entry, nil
}

// FindHistory retrieves one history entry scoped by its order.
func (r *Repository) FindHistory(ctx context.Context, orderID, historyID int) (*models.OrderStatusHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM order_status_history
		WHERE order_id = $1 AND history_id = $2`
	entry, err := scanHistory(r.db.QueryRow(ctx, query, orderID, historyID))
	if err != nil {
		return nil, fmt.Errorf("repository.FindHistory: %w", err)
	}
	return entry, nil
}

// ListHistory retrieves an order's history, most recent change first.
func (r *Repository) ListHistory(ctx context.Context, orderID int) ([]*models.OrderStatusHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM order_status_history
		WHERE order_id = $1 ORDER BY changed_at DESC, history_id DESC`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListHistory.Query: %w", err)
	}
	defer rows.Close()

	var entries []*models.OrderStatusHistory
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListHistory.Scan: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DeleteHistory removes one history entry. It does not touch the parent
// order's status.
func (r *Repository) DeleteHistory(ctx context.Context, orderID, historyID int) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM order_status_history WHERE order_id = $1 AND history_id = $2`, orderID, historyID)
	if err != nil {
		return fmt.Errorf("repository.DeleteHistory: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
