package orders

import (
	"context"
	"fmt"

	"logistics-orders/internal/models"
	"logistics-orders/pkg/events"
)

// RecordStatus appends an immutable history entry and overwrites the
// order's current status with it — unconditionally; any status is accepted
// from any prior status. After the commit it emits an order_status.updated
// event and, when a notifier is configured, a best-effort email.
func (s *Service) RecordStatus(ctx context.Context, orderID int, req models.CreateHistoryRequest) (*models.OrderStatusHistory, error) {
	var entry *models.OrderStatusHistory
	err := s.repo.WithTx(ctx, func(r RepositoryInterface) error {
		if _, err := r.FindOrder(ctx, orderID); err != nil {
			return err
		}
		var err error
		entry, err = r.CreateHistory(ctx, orderID, req.Status, req.ChangedBy, req.Notes)
		if err != nil {
			return err
		}
		return r.SetOrderStatus(ctx, orderID, req.Status)
	})
	if err != nil {
		return nil, fmt.Errorf("service.RecordStatus: %w", err)
	}

	s.publish(ctx, events.OrderStatusUpdated, entry)
	if s.notifier != nil {
		s.notifier.NotifyStatusChange(ctx, orderID, string(req.Status))
	}
	return entry, nil
}

// GetHistoryEntry retrieves one history entry of an order.
func (s *Service) GetHistoryEntry(ctx context.Context, orderID, historyID int) (*models.OrderStatusHistory, error) {
	entry, err := s.repo.FindHistory(ctx, orderID, historyID)
	if err != nil {
		return nil, fmt.Errorf("service.GetHistoryEntry: %w", err)
	}
	return entry, nil
}

// ListHistory retrieves an order's status history, most recent first.
func (s *Service) ListHistory(ctx context.Context, orderID int) ([]*models.OrderStatusHistory, error) {
	if _, err := s.repo.FindOrder(ctx, orderID); err != nil {
		return nil, fmt.Errorf("service.ListHistory: %w", err)
	}
	entries, err := s.repo.ListHistory(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service.ListHistory: %w", err)
	}
	return entries, nil
}

// DeleteHistoryEntry removes a history row only. The order's current status
// is intentionally left alone, even when the deleted entry was the one that
// set it; deletion is an administrative correction, not a transition.
func (s *Service) DeleteHistoryEntry(ctx context.Context, orderID, historyID int) error {
	var last *models.OrderStatusHistory
	err := s.repo.WithTx(ctx, func(r RepositoryInterface) error {
		var err error
		last, err = r.FindHistory(ctx, orderID, historyID)
		if err != nil {
			return err
		}
		return r.DeleteHistory(ctx, orderID, historyID)
	})
	if err != nil {
		return fmt.Errorf("service.DeleteHistoryEntry: %w", err)
	}

	s.publish(ctx, events.OrderStatusHistoryDeleted, map[string]any{
		"history_id": historyID,
		"order_id":   orderID,
		"details":    last,
	})
	return nil
}
