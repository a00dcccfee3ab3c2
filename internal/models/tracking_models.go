package models

// TrackingUpdate is a single live-location frame pushed to browser clients
// over the tracking WebSocket.
type TrackingUpdate struct {
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	OrderStatus OrderStatus `json:"order_status"`
}
