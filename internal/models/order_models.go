package models

import "time"

// OrderStatus is the status vocabulary shared by orders and their status
// history. Any status may follow any other; no transition graph is enforced.
type OrderStatus string

const (
	OrderStatusPending     OrderStatus = "pending"
	OrderStatusProcessing  OrderStatus = "processing"
	OrderStatusPickupReady OrderStatus = "pickup_ready"
	OrderStatusInTransit   OrderStatus = "in_transit"
	OrderStatusDelivered   OrderStatus = "delivered"
	OrderStatusCancelled   OrderStatus = "cancelled"
	OrderStatusReturned    OrderStatus = "returned"
)

// ItemStatus is the status vocabulary for order items.
type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusPacked    ItemStatus = "packed"
	ItemStatusShipped   ItemStatus = "shipped"
	ItemStatusDelivered ItemStatus = "delivered"
	ItemStatusReturned  ItemStatus = "returned"
)

// Order is the top-level logistics request entity. TotalPrice always holds
// the value last written by the pricing rules; clients only set it at
// creation time.
type Order struct {
	OrderID             int         `json:"order_id"`
	CustomerID          int         `json:"customer_id"`
	PickupLocation      string      `json:"pickup_location"`
	DeliveryLocation    string      `json:"delivery_location"`
	RequestedPickupDate time.Time   `json:"requested_pickup_date"`
	DeliveryDeadline    time.Time   `json:"delivery_deadline"`
	TotalPrice          float64     `json:"total_price"`
	Status              OrderStatus `json:"status"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// OrderItem is a single piece of cargo belonging to an order.
type OrderItem struct {
	ItemID              int        `json:"item_id"`
	OrderID             int        `json:"order_id"`
	CargoType           string     `json:"cargo_type"`
	WeightKg            float64    `json:"weight_kg"`
	DimensionsCm        string     `json:"dimensions_cm"`
	SpecialRequirements *string    `json:"special_requirements,omitempty"`
	ItemPrice           float64    `json:"item_price"`
	Status              ItemStatus `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// PriceCalculation is one pricing run for an order. The most recently
// created or updated calculation is authoritative for the order total.
type PriceCalculation struct {
	CalculationID  int       `json:"calculation_id"`
	OrderID        int       `json:"order_id"`
	BasePrice      float64   `json:"base_price"`
	DistanceFactor float64   `json:"distance_factor"`
	WeightFactor   float64   `json:"weight_factor"`
	UrgencyFactor  float64   `json:"urgency_factor"`
	FinalPrice     float64   `json:"final_price"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OrderStatusHistory is an append-only record of a status transition.
// Entries are never updated, only created or deleted.
type OrderStatusHistory struct {
	HistoryID int         `json:"history_id"`
	OrderID   int         `json:"order_id"`
	Status    OrderStatus `json:"status"`
	ChangedAt time.Time   `json:"changed_at"`
	ChangedBy int         `json:"changed_by"`
	Notes     *string     `json:"notes,omitempty"`
}

// CreateOrderRequest carries the client-supplied fields for a new order.
// TotalPrice is accepted here and nowhere else; afterwards it belongs to
// the pricing rules.
type CreateOrderRequest struct {
	CustomerID          int       `json:"customer_id" validate:"required,gt=0"`
	PickupLocation      string    `json:"pickup_location" validate:"required"`
	DeliveryLocation    string    `json:"delivery_location" validate:"required"`
	RequestedPickupDate time.Time `json:"requested_pickup_date" validate:"required"`
	DeliveryDeadline    time.Time `json:"delivery_deadline" validate:"required"`
	TotalPrice          float64   `json:"total_price" validate:"gte=0"`
}

// UpdateOrderRequest is a partial update; nil fields are left untouched.
type UpdateOrderRequest struct {
	CustomerID          *int         `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	PickupLocation      *string      `json:"pickup_location,omitempty"`
	DeliveryLocation    *string      `json:"delivery_location,omitempty"`
	RequestedPickupDate *time.Time   `json:"requested_pickup_date,omitempty"`
	DeliveryDeadline    *time.Time   `json:"delivery_deadline,omitempty"`
	Status              *OrderStatus `json:"status,omitempty" validate:"omitempty,oneof=pending processing pickup_ready in_transit delivered cancelled returned"`
}

// CreateItemRequest carries the fields for a new order item. Status defaults
// to pending when omitted.
type CreateItemRequest struct {
	CargoType           string     `json:"cargo_type" validate:"required"`
	WeightKg            float64    `json:"weight_kg" validate:"gt=0"`
	DimensionsCm        string     `json:"dimensions_cm" validate:"required"`
	SpecialRequirements *string    `json:"special_requirements,omitempty"`
	ItemPrice           float64    `json:"item_price" validate:"gte=0"`
	Status              ItemStatus `json:"status,omitempty" validate:"omitempty,oneof=pending packed shipped delivered returned"`
}

// UpdateItemRequest is a partial update; nil fields are left untouched.
type UpdateItemRequest struct {
	CargoType           *string     `json:"cargo_type,omitempty"`
	WeightKg            *float64    `json:"weight_kg,omitempty" validate:"omitempty,gt=0"`
	DimensionsCm        *string     `json:"dimensions_cm,omitempty"`
	SpecialRequirements *string     `json:"special_requirements,omitempty"`
	ItemPrice           *float64    `json:"item_price,omitempty" validate:"omitempty,gte=0"`
	Status              *ItemStatus `json:"status,omitempty" validate:"omitempty,oneof=pending packed shipped delivered returned"`
}

// CreateCalculationRequest carries the pricing factors for a new
// calculation. When FinalPrice is omitted it is derived from the factors.
type CreateCalculationRequest struct {
	BasePrice      float64  `json:"base_price" validate:"gte=0"`
	DistanceFactor float64  `json:"distance_factor" validate:"gte=0"`
	WeightFactor   float64  `json:"weight_factor" validate:"gte=0"`
	UrgencyFactor  float64  `json:"urgency_factor" validate:"gte=0"`
	FinalPrice     *float64 `json:"final_price,omitempty" validate:"omitempty,gte=0"`
}

// UpdateCalculationRequest is a partial update. Supplying any pricing factor
// reapplies the formula over the merged factor set; unsupplied factors fall
// back to the stored values.
type UpdateCalculationRequest struct {
	BasePrice      *float64 `json:"base_price,omitempty" validate:"omitempty,gte=0"`
	DistanceFactor *float64 `json:"distance_factor,omitempty" validate:"omitempty,gte=0"`
	WeightFactor   *float64 `json:"weight_factor,omitempty" validate:"omitempty,gte=0"`
	UrgencyFactor  *float64 `json:"urgency_factor,omitempty" validate:"omitempty,gte=0"`
	FinalPrice     *float64 `json:"final_price,omitempty" validate:"omitempty,gte=0"`
}

// CalculationValues is the full resolved column set persisted for a price
// calculation after the formula has been applied.
type CalculationValues struct {
	BasePrice      float64
	DistanceFactor float64
	WeightFactor   float64
	UrgencyFactor  float64
	FinalPrice     float64
}

// CreateHistoryRequest carries the fields for a new status history entry.
type CreateHistoryRequest struct {
	Status    OrderStatus `json:"status" validate:"required,oneof=pending processing pickup_ready in_transit delivered cancelled returned"`
	ChangedBy int         `json:"changed_by" validate:"required,gt=0"`
	Notes     *string     `json:"notes,omitempty"`
}
