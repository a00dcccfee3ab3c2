package orders

import (
	"context"
	"time"

	"logistics-orders/internal/models"
)

// fakeRepository is an in-memory RepositoryInterface with the same
// observable semantics as the PostgreSQL implementation: scoped child
// lookups, cascade delete and server-assigned monotonic timestamps.
type fakeRepository struct {
	nextOrderID   int
	nextItemID    int
	nextCalcID    int
	nextHistoryID int

	orders  map[int]*models.Order
	items   map[int]*models.OrderItem
	calcs   map[int]*models.PriceCalculation
	history map[int]*models.OrderStatusHistory

	clock time.Time
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		orders:  make(map[int]*models.Order),
		items:   make(map[int]*models.OrderItem),
		calcs:   make(map[int]*models.PriceCalculation),
		history: make(map[int]*models.OrderStatusHistory),
		clock:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp, like NOW() under load.
func (f *fakeRepository) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRepository) WithTx(ctx context.Context, fn func(RepositoryInterface) error) error {
	return fn(f)
}

// --- Orders ---

func (f *fakeRepository) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	f.nextOrderID++
	now := f.tick()
	order := &models.Order{
		OrderID:             f.nextOrderID,
		CustomerID:          req.CustomerID,
		PickupLocation:      req.PickupLocation,
		DeliveryLocation:    req.DeliveryLocation,
		RequestedPickupDate: req.RequestedPickupDate,
		DeliveryDeadline:    req.DeliveryDeadline,
		TotalPrice:          req.TotalPrice,
		Status:              models.OrderStatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	f.orders[order.OrderID] = order
	cp := *order
	return &cp, nil
}

func (f *fakeRepository) FindOrder(ctx context.Context, orderID int) (*models.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *order
	return &cp, nil
}

func (f *fakeRepository) ListOrders(ctx context.Context, offset, limit int) ([]*models.Order, error) {
	var orders []*models.Order
	for id := 1; id <= f.nextOrderID; id++ {
		if order, ok := f.orders[id]; ok {
			cp := *order
			orders = append(orders, &cp)
		}
	}
	if offset >= len(orders) {
		return nil, nil
	}
	orders = orders[offset:]
	if limit < len(orders) {
		orders = orders[:limit]
	}
	return orders, nil
}

func (f *fakeRepository) UpdateOrder(ctx context.Context, orderID int, req models.UpdateOrderRequest) (*models.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if req.CustomerID != nil {
		order.CustomerID = *req.CustomerID
	}
	if req.PickupLocation != nil {
		order.PickupLocation = *req.PickupLocation
	}
	if req.DeliveryLocation != nil {
		order.DeliveryLocation = *req.DeliveryLocation
	}
	if req.RequestedPickupDate != nil {
		order.RequestedPickupDate = *req.RequestedPickupDate
	}
	if req.DeliveryDeadline != nil {
		order.DeliveryDeadline = *req.DeliveryDeadline
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	order.UpdatedAt = f.tick()
	cp := *order
	return &cp, nil
}

func (f *fakeRepository) DeleteOrder(ctx context.Context, orderID int) error {
	if _, ok := f.orders[orderID]; !ok {
		return models.ErrNotFound
	}
	delete(f.orders, orderID)
	for id, item := range f.items {
		if item.OrderID == orderID {
			delete(f.items, id)
		}
	}
	for id, calc := range f.calcs {
		if calc.OrderID == orderID {
			delete(f.calcs, id)
		}
	}
	for id, entry := range f.history {
		if entry.OrderID == orderID {
			delete(f.history, id)
		}
	}
	return nil
}

func (f *fakeRepository) SetOrderTotal(ctx context.Context, orderID int, total float64) error {
	order, ok := f.orders[orderID]
	if !ok {
		return models.ErrNotFound
	}
	order.TotalPrice = total
	order.UpdatedAt = f.tick()
	return nil
}

func (f *fakeRepository) SetOrderStatus(ctx context.Context, orderID int, status models.OrderStatus) error {
	order, ok := f.orders[orderID]
	if !ok {
		return models.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = f.tick()
	return nil
}

// --- Items ---

func (f *fakeRepository) CreateItem(ctx context.Context, orderID int, req models.CreateItemRequest) (*models.OrderItem, error) {
	if _, ok := f.orders[orderID]; !ok {
		return nil, models.ErrConflict
	}
	status := req.Status
	if status == "" {
		status = models.ItemStatusPending
	}
	f.nextItemID++
	now := f.tick()
	item := &models.OrderItem{
		ItemID:              f.nextItemID,
		OrderID:             orderID,
		CargoType:           req.CargoType,
		WeightKg:            req.WeightKg,
		DimensionsCm:        req.DimensionsCm,
		SpecialRequirements: req.SpecialRequirements,
		ItemPrice:           req.ItemPrice,
		Status:              status,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	f.items[item.ItemID] = item
	cp := *item
	return &cp, nil
}

func (f *fakeRepository) FindItem(ctx context.Context, orderID, itemID int) (*models.OrderItem, error) {
	item, ok := f.items[itemID]
	if !ok || item.OrderID != orderID {
		return nil, models.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeRepository) ListItems(ctx context.Context, orderID int) ([]*models.OrderItem, error) {
	var items []*models.OrderItem
	for id := 1; id <= f.nextItemID; id++ {
		if item, ok := f.items[id]; ok && item.OrderID == orderID {
			cp := *item
			items = append(items, &cp)
		}
	}
	return items, nil
}

func (f *fakeRepository) UpdateItem(ctx context.Context, orderID, itemID int, req models.UpdateItemRequest) (*models.OrderItem, error) {
	item, ok := f.items[itemID]
	if !ok || item.OrderID != orderID {
		return nil, models.ErrNotFound
	}
	if req.CargoType != nil {
		item.CargoType = *req.CargoType
	}
	if req.WeightKg != nil {
		item.WeightKg = *req.WeightKg
	}
	if req.DimensionsCm != nil {
		item.DimensionsCm = *req.DimensionsCm
	}
	if req.SpecialRequirements != nil {
		item.SpecialRequirements = req.SpecialRequirements
	}
	if req.ItemPrice != nil {
		item.ItemPrice = *req.ItemPrice
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	item.UpdatedAt = f.tick()
	cp := *item
	return &cp, nil
}

func (f *fakeRepository) DeleteItem(ctx context.Context, orderID, itemID int) error {
	item, ok := f.items[itemID]
	if !ok || item.OrderID != orderID {
		return models.ErrNotFound
	}
	delete(f.items, itemID)
	return nil
}

// --- Price calculations ---

func (f *fakeRepository) CreateCalculation(ctx context.Context, orderID int, values models.CalculationValues) (*models.PriceCalculation, error) {
	if _, ok := f.orders[orderID]; !ok {
		return nil, models.ErrConflict
	}
	f.nextCalcID++
	now := f.tick()
	calc := &models.PriceCalculation{
		CalculationID:  f.nextCalcID,
		OrderID:        orderID,
		BasePrice:      values.BasePrice,
		DistanceFactor: values.DistanceFactor,
		WeightFactor:   values.WeightFactor,
		UrgencyFactor:  values.UrgencyFactor,
		FinalPrice:     values.FinalPrice,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.calcs[calc.CalculationID] = calc
	cp := *calc
	return &cp, nil
}

func (f *fakeRepository) FindCalculation(ctx context.Context, orderID, calculationID int) (*models.PriceCalculation, error) {
	calc, ok := f.calcs[calculationID]
	if !ok || calc.OrderID != orderID {
		return nil, models.ErrNotFound
	}
	cp := *calc
	return &cp, nil
}

func (f *fakeRepository) ListCalculations(ctx context.Context, orderID int) ([]*models.PriceCalculation, error) {
	var calcs []*models.PriceCalculation
	for id := 1; id <= f.nextCalcID; id++ {
		if calc, ok := f.calcs[id]; ok && calc.OrderID == orderID {
			cp := *calc
			calcs = append(calcs, &cp)
		}
	}
	return calcs, nil
}

func (f *fakeRepository) UpdateCalculation(ctx context.Context, orderID, calculationID int, values models.CalculationValues) (*models.PriceCalculation, error) {
	calc, ok := f.calcs[calculationID]
	if !ok || calc.OrderID != orderID {
		return nil, models.ErrNotFound
	}
	calc.BasePrice = values.BasePrice
	calc.DistanceFactor = values.DistanceFactor
	calc.WeightFactor = values.WeightFactor
	calc.UrgencyFactor = values.UrgencyFactor
	calc.FinalPrice = values.FinalPrice
	calc.UpdatedAt = f.tick()
	cp := *calc
	return &cp, nil
}

func (f *fakeRepository) DeleteCalculation(ctx context.Context, orderID, calculationID int) error {
	calc, ok := f.calcs[calculationID]
	if !ok || calc.OrderID != orderID {
		return models.ErrNotFound
	}
	delete(f.calcs, calculationID)
	return nil
}

// --- Status history ---

func (f *fakeRepository) CreateHistory(ctx context.Context, orderID int, status models.OrderStatus, changedBy int, notes *string) (*models.OrderStatusHistory, error) {
	if _, ok := f.orders[orderID]; !ok {
		return nil, models.ErrConflict
	}
	f.nextHistoryID++
	entry := &models.OrderStatusHistory{
		HistoryID: f.nextHistoryID,
		OrderID:   orderID,
		Status:    status,
		ChangedAt: f.tick(),
		ChangedBy: changedBy,
		Notes:     notes,
	}
	f.history[entry.HistoryID] = entry
	cp := *entry
	return &cp, nil
}

func (f *fakeRepository) FindHistory(ctx context.Context, orderID, historyID int) (*models.OrderStatusHistory, error) {
	entry, ok := f.history[historyID]
	if !ok || entry.OrderID != orderID {
		return nil, models.ErrNotFound
	}
	cp := *entry
	return &cp, nil
}

func (f *fakeRepository) ListHistory(ctx context.Context, orderID int) ([]*models.OrderStatusHistory, error) {
	var entries []*models.OrderStatusHistory
	for id := f.nextHistoryID; id >= 1; id-- {
		if entry, ok := f.history[id]; ok && entry.OrderID == orderID {
			cp := *entry
			entries = append(entries, &cp)
		}
	}
	return entries, nil
}

func (f *fakeRepository) DeleteHistory(ctx context.Context, orderID, historyID int) error {
	entry, ok := f.history[historyID]
	if !ok || entry.OrderID != orderID {
		return models.ErrNotFound
	}
	delete(f.history, historyID)
	return nil
}

// --- Publisher fake ---

type publishedEvent struct {
	eventType string
	payload   any
}

// fakePublisher records every publish attempt; fail makes each attempt
// report delivery failure the way a broker outage would.
type fakePublisher struct {
	events []publishedEvent
	fail   bool
}

func (p *fakePublisher) Publish(ctx context.Context, eventType string, payload any) bool {
	p.events = append(p.events, publishedEvent{eventType: eventType, payload: payload})
	return !p.fail
}

func (p *fakePublisher) eventTypes() []string {
	types := make([]string, len(p.events))
	for i, ev := range p.events {
		types[i] = ev.eventType
	}
	return types
}
