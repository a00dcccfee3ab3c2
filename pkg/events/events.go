// Package events emits change-notification messages for order mutations.
//
// Delivery is best-effort: a failed publish is logged and reported to the
// caller as false, and consumers must tolerate duplicate or missing events.
package events

import "context"

// Event types follow the <entity>.<created|updated|deleted> pattern. History
// creation is announced as a status update rather than a history creation.
const (
	OrderCreated = "order.created"
	OrderUpdated = "order.updated"
	OrderDeleted = "order.deleted"

	OrderItemCreated = "order_item.created"
	OrderItemUpdated = "order_item.updated"
	OrderItemDeleted = "order_item.deleted"

	PriceCalculationCreated = "price_calculation.created"
	PriceCalculationUpdated = "price_calculation.updated"
	PriceCalculationDeleted = "price_calculation.deleted"

	OrderStatusUpdated        = "order_status.updated"
	OrderStatusHistoryDeleted = "order_status_history.deleted"
)

// Publisher sends one event describing a committed mutation. The payload is
// the full serialized entity, or {id fields, details} for deletions. The
// boolean result is informational only; callers never treat false as an
// error of the triggering mutation.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) bool
}
