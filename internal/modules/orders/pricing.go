package orders

import (
	"math"

	"logistics-orders/internal/models"
)

// The order total has two independent sources: the sum of live item prices
// and the final price of the most recently written calculation. Whichever
// rule fires last wins; there is no reconciliation between the two, and
// deleting a calculation recomputes nothing.

// round2 applies the monetary rounding policy: two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// itemTotal is the item-driven total: the rounded sum of item prices.
// An order with no items totals zero.
func itemTotal(items []*models.OrderItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.ItemPrice
	}
	return round2(sum)
}

// finalPrice is the calculation-driven total:
// base_price * (1 + distance_factor + weight_factor + urgency_factor),
// rounded to two decimal places.
func finalPrice(basePrice, distanceFactor, weightFactor, urgencyFactor float64) float64 {
	return round2(basePrice * (1 + distanceFactor + weightFactor + urgencyFactor))
}

// resolveCreateValues turns a creation request into the stored column set,
// deriving the final price from the factors unless the caller supplied one.
func resolveCreateValues(req models.CreateCalculationRequest) models.CalculationValues {
	values := models.CalculationValues{
		BasePrice:      req.BasePrice,
		DistanceFactor: req.DistanceFactor,
		WeightFactor:   req.WeightFactor,
		UrgencyFactor:  req.UrgencyFactor,
	}
	if req.FinalPrice != nil {
		values.FinalPrice = *req.FinalPrice
	} else {
		values.FinalPrice = finalPrice(req.BasePrice, req.DistanceFactor, req.WeightFactor, req.UrgencyFactor)
	}
	return values
}

// resolveUpdateValues merges a partial update over the stored calculation.
// When any pricing factor is supplied the formula is reapplied over the
// merged factors; otherwise a supplied final price is taken as-is. The
// second result reports whether the final price was (re)written and the
// order total must follow it.
func resolveUpdateValues(current *models.PriceCalculation, req models.UpdateCalculationRequest) (models.CalculationValues, bool) {
	values := models.CalculationValues{
		BasePrice:      current.BasePrice,
		DistanceFactor: current.DistanceFactor,
		WeightFactor:   current.WeightFactor,
		UrgencyFactor:  current.UrgencyFactor,
		FinalPrice:     current.FinalPrice,
	}

	factorsSupplied := false
	if req.BasePrice != nil {
		values.BasePrice = *req.BasePrice
		factorsSupplied = true
	}
	if req.DistanceFactor != nil {
		values.DistanceFactor = *req.DistanceFactor
		factorsSupplied = true
	}
	if req.WeightFactor != nil {
		values.WeightFactor = *req.WeightFactor
		factorsSupplied = true
	}
	if req.UrgencyFactor != nil {
		values.UrgencyFactor = *req.UrgencyFactor
		factorsSupplied = true
	}

	switch {
	case factorsSupplied:
		values.FinalPrice = finalPrice(values.BasePrice, values.DistanceFactor, values.WeightFactor, values.UrgencyFactor)
		return values, true
	case req.FinalPrice != nil:
		values.FinalPrice = *req.FinalPrice
		return values, true
	default:
		return values, false
	}
}
