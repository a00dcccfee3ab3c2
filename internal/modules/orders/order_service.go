package orders

import (
	"context"
	"fmt"
	"os"

	"logistics-orders/internal/models"
	"logistics-orders/pkg/events"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "orders").Logger()

// StatusNotifier is an optional hook fired after a status transition
// commits. Implementations must be best-effort; the coordinator ignores
// their outcome entirely.
type StatusNotifier interface {
	NotifyStatusChange(ctx context.Context, orderID int, status string)
}

// ServiceInterface is the order lifecycle coordinator: the entry point the
// HTTP layer calls for every entity and operation. Each mutation performs
// its repository writes in one transaction, applies the pricing or status
// rules the operation requires, and publishes a change event strictly after
// the commit. A publish failure never fails or reverses the mutation.
type ServiceInterface interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, orderID int) (*models.Order, error)
	ListOrders(ctx context.Context, offset, limit int) ([]*models.Order, error)
	UpdateOrder(ctx context.Context, orderID int, req models.UpdateOrderRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, orderID int) error

	AddItem(ctx context.Context, orderID int, req models.CreateItemRequest) (*models.OrderItem, error)
	GetItem(ctx context.Context, orderID, itemID int) (*models.OrderItem, error)
	ListItems(ctx context.Context, orderID int) ([]*models.OrderItem, error)
	UpdateItem(ctx context.Context, orderID, itemID int, req models.UpdateItemRequest) (*models.OrderItem, error)
	RemoveItem(ctx context.Context, orderID, itemID int) error

	CreateCalculation(ctx context.Context, orderID int, req models.CreateCalculationRequest) (*models.PriceCalculation, error)
	GetCalculation(ctx context.Context, orderID, calculationID int) (*models.PriceCalculation, error)
	ListCalculations(ctx context.Context, orderID int) ([]*models.PriceCalculation, error)
	UpdateCalculation(ctx context.Context, orderID, calculationID int, req models.UpdateCalculationRequest) (*models.PriceCalculation, error)
	DeleteCalculation(ctx context.Context, orderID, calculationID int) error

	RecordStatus(ctx context.Context, orderID int, req models.CreateHistoryRequest) (*models.OrderStatusHistory, error)
	GetHistoryEntry(ctx context.Context, orderID, historyID int) (*models.OrderStatusHistory, error)
	ListHistory(ctx context.Context, orderID int) ([]*models.OrderStatusHistory, error)
	DeleteHistoryEntry(ctx context.Context, orderID, historyID int) error
}

// Service implements the coordinator.
type Service struct {
	repo      RepositoryInterface
	publisher events.Publisher
	notifier  StatusNotifier // nil disables notification emails
}

// NewService creates the order lifecycle coordinator. notifier may be nil.
func NewService(repo RepositoryInterface, publisher events.Publisher, notifier StatusNotifier) *Service {
	return &Service{repo: repo, publisher: publisher, notifier: notifier}
}

// publish emits one event for a committed mutation. A failed publish is
// logged and otherwise ignored: the caller of the mutation has already been
// promised success.
func (s *Service) publish(ctx context.Context, eventType string, payload any) {
	if !s.publisher.Publish(ctx, eventType, payload) {
		logger.Warn().Str("event", eventType).Msg("change event not delivered")
	}
}

// syncItemTotal recomputes and persists the item-driven order total.
func (s *Service) syncItemTotal(ctx context.Context, r RepositoryInterface, orderID int) error {
	items, err := r.ListItems(ctx, orderID)
	if err != nil {
		return err
	}
	return r.SetOrderTotal(ctx, orderID, itemTotal(items))
}

// CreateOrder creates an order and its initial pending history entry.
func (s *Service) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var order *models.Order
	err := s.repo.WithTx(ctx, func(r RepositoryInterface) error {
		var err error
		order, err = r.CreateOrder(ctx, req)
		if err != nil {
			return err
		}
		notes := "Order created"
		_, err = r.CreateHistory(ctx, order.OrderID, models.OrderStatusPending, req.CustomerID, &notes)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("service.CreateOrder: %w", err)
	}

	s.publish(ctx, events.OrderCreated, order)
	return order, nil
}

// GetOrder retrieves a single order.
func (s *Service) GetOrder(ctx context.Context, orderID int) (*models.Order, error) {
	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service.GetOrder: %w", err)
	}
	return order, nil
}

// ListOrders retrieves orders with offset/limit pagination.
func (s *Service) ListOrders(ctx context.Context, offset, limit int) ([]*models.Order, error) {
	orders, err := s.repo.ListOrders(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("service.ListOrders: %w", err)
	}
	return orders, nil
}

// UpdateOrder applies a partial update. A status change in the payload also
// appends a history entry, mirroring what RecordStatus would have written.
func (s *Service) UpdateOrder(ctx context.Context, orderID int, req models.UpdateOrderRequest) (*models.Order, error) {
	var order *models.Order
	err := s.repo.WithTx(ctx, func(r RepositoryInterface) error {
		current, err := r.FindOrder(ctx, orderID)
		if err != nil {
			return err
		}

		if req.Status != nil && *req.Status != current.Status {
			changedBy := current.CustomerID
			if req.CustomerID != nil {
				changedBy = *req.CustomerID
			}
			notes := fmt.Sprintf("Status changed to %s", *req.Status)
			if _, err := r.CreateHistory(ctx, orderID, *req.Status, changedBy, &notes); err != nil {
				return err
			}
		}

		order, err = r.UpdateOrder(ctx, orderID, req)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("service.UpdateOrder: %w", err)
	}

	s.publish(ctx, events.OrderUpdated, order)
	return order, nil
}

// DeleteOrder removes an order and, via cascade, all of its children.
func (s *Service) DeleteOrder(ctx context.Context, orderID int) error {
	var last *models.Order
	err := s.repo.WithTx(ctx, func(r RepositoryInterface) error {
		var err error
		last, err = r.FindOrder(ctx, orderID)
		if err != nil {
			return err
		}
		return r.DeleteOrder(ctx, orderID)
	})
	if err != nil {
		return fmt.Errorf("service.DeleteOrder: %w", err)
	}

	s.publish(ctx, events.OrderDeleted, map[string]any{
		"order_id": orderID,
		"details":  last,
	})
	return nil
}

// AddItem creates an item and recomputes the item-driven order total.
func (s *Service) AddItem(ctx context.Context, orderID int, req models.CreateItemRequest) (*models.OrderItem, error) {
	var item *models.OrderItem
	err := s.repo.WithTx(ctx, func(r RepositoryInterface) error {
		if _, err := r.FindOrder(ctx, orderID); err != nil {
			return err
		}
		var err error
		item, err = r.CreateItem(ctx, orderID, req)
		if err != nil {
			return err
		}
		return s.syncItemTotal(ctx, r, orderID)
	})
	if err != nil {
		return nil, fmt.Errorf("service.AddItem: %w", err)
	}

	s.publish(ctx, events.OrderItemCreated, item)
	return item, nil
}

// GetItem retrieves one item of an order.
func (s *Service) GetItem(ctx context.Context, orderID, itemID int) (*models.OrderItem, error) {
	item, err := s.repo.FindItem(ctx, orderID, itemID)
	if err != nil {
		return nil, fmt.Errorf("service.GetItem: %w", err)
	}
	return item, nil
}

// ListItems retrieves all items of an order.
func (s *Service) ListItems(ctx context.Context, orderID int) ([]*models.OrderItem, error) {
	if _, err := s.repo.FindOrder(ctx, orderID); err != nil {
		return nil, fmt.Errorf("service.ListItems: %w", err)
	}
	items, err := s.repo.ListItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service.ListItems: %w", err)
	}
	return items, nil
}

// UpdateItem applies a partial item update; the order total is recomputed
// only when the payload carries an item price.
func (s *Service) UpdateItem(ctx context.Context, orderID, itemID int, req models.UpdateItemRequest) (*models.OrderItem, error) {
	var item *models.OrderItem
	err := s.repo.WithTx(ctx, func(r RepositoryInterface) error {
		var err error
		item, err = r.UpdateItem(ctx, orderID, itemID, req)
		if err != nil {
			return err
		}
		if req.ItemPrice != nil {
			return s.syncItemTotal(ctx, r, orderID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.UpdateItem: %w", err)
	}

	s.publish(ctx, events.OrderItemUpdated, item)
	return item, nil
}

// RemoveItem deletes an item and recomputes the item-driven order total.
func (s *Service) RemoveItem(ctx context.Context, orderID, itemID int) error {
	var last *models.OrderItem
	err := s.repo.WithTx(ctx, func(r RepositoryInterface) error {
		var err error
		last, err = r.FindItem(ctx, orderID, itemID)
		if err != nil {
			return err
		}
		if err := r.DeleteItem(ctx, orderID, itemID); err != nil {
			return err
		}
		return s.syncItemTotal(ctx, r, orderID)
	})
	if err != nil {
		return fmt.Errorf("service.RemoveItem: %w", err)
	}

	s.publish(ctx, events.OrderItemDeleted, map[string]any{
		"item_id":  itemID,
		"order_id": orderID,
		"details":  last,
	})
	return nil
}
