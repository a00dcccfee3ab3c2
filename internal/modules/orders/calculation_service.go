package orders

import (
	"context"
	"fmt"

	"logistics-orders/internal/models"
	"logistics-orders/pkg/events"
)

// CreateCalculation stores a new price calculation and unconditionally
// overwrites the order total with its final price. The item-driven sum does
// not get a say; whichever pricing source writes last wins.
func (s *Service) CreateCalculation(ctx context.Context, orderID int, req models.CreateCalculationRequest) (*models.PriceCalculation, error) {
	var calc *models.PriceCalculation
	err := s.repo.WithTx(ctx, func(r RepositoryInterface) error {
		if _, err := r.FindOrder(ctx, orderID); err != nil {
			return err
		}
		values := resolveCreateValues(req)
		var err error
		calc, err = r.CreateCalculation(ctx, orderID, values)
		if err != nil {
			return err
		}
		return r.SetOrderTotal(ctx, orderID, values.FinalPrice)
	})
	if err != nil {
		return nil, fmt.Errorf("service.CreateCalculation: %w", err)
	}

	s.publish(ctx, events.PriceCalculationCreated, calc)
	return calc, nil
}

// GetCalculation retrieves one calculation of an order.
func (s *Service) GetCalculation(ctx context.Context, orderID, calculationID int) (*models.PriceCalculation, error) {
	calc, err := s.repo.FindCalculation(ctx, orderID, calculationID)
	if err != nil {
		return nil, fmt.Errorf("service.GetCalculation: %w", err)
	}
	return calc, nil
}

// ListCalculations retrieves all calculations of an order.
func (s *Service) ListCalculations(ctx context.Context, orderID int) ([]*models.PriceCalculation, error) {
	if _, err := s.repo.FindOrder(ctx, orderID); err != nil {
		return nil, fmt.Errorf("service.ListCalculations: %w", err)
	}
	calcs, err := s.repo.ListCalculations(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service.ListCalculations: %w", err)
	}
	return calcs, nil
}

// UpdateCalculation merges the partial payload over the stored calculation,
// reapplies the formula when any factor was supplied, and pushes a changed
// final price onto the order total.
func (s *Service) UpdateCalculation(ctx context.Context, orderID, calculationID int, req models.UpdateCalculationRequest) (*models.PriceCalculation, error) {
	var calc *models.PriceCalculation
	err := s.repo.WithTx(ctx, func(r RepositoryInterface) error {
		current, err := r.FindCalculation(ctx, orderID, calculationID)
		if err != nil {
			return err
		}

		values, finalChanged := resolveUpdateValues(current, req)
		calc, err = r.UpdateCalculation(ctx, orderID, calculationID, values)
		if err != nil {
			return err
		}
		if finalChanged {
			return r.SetOrderTotal(ctx, orderID, values.FinalPrice)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.UpdateCalculation: %w", err)
	}

	s.publish(ctx, events.PriceCalculationUpdated, calc)
	return calc, nil
}

// DeleteCalculation removes a calculation. The order total stays where the
// last write left it; there is no fallback to the item-driven sum.
func (s *Service) DeleteCalculation(ctx context.Context, orderID, calculationID int) error {
	var last *models.PriceCalculation
	err := s.repo.WithTx(ctx, func(r RepositoryInterface) error {
		var err error
		last, err = r.FindCalculation(ctx, orderID, calculationID)
		if err != nil {
			return err
		}
		return r.DeleteCalculation(ctx, orderID, calculationID)
	})
	if err != nil {
		return fmt.Errorf("service.DeleteCalculation: %w", err)
	}

	s.publish(ctx, events.PriceCalculationDeleted, map[string]any{
		"calculation_id": calculationID,
		"order_id":       orderID,
		"details":        last,
	})
	return nil
}
