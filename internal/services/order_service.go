package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	domain "github.com/hatbazar/api/internal/domain"
	"github.com/hatbazar/api/internal/repositories"
)

const (
	orderIDPrefix      = "ord_"
	orderNumberCounter = "orders"

	// Two counter digits keep concurrent order numbers within one second unique.
	orderNumberSuffixMod = 100
)

var (
	// ErrOrderInvalidInput signals the caller provided invalid checkout data.
	ErrOrderInvalidInput = errors.New("order: invalid input")
	// ErrOrderNotFound indicates the order could not be located.
	ErrOrderNotFound = errors.New("order: not found")
	// ErrOrderInvalidStatus indicates a status string outside the known lifecycle.
	ErrOrderInvalidStatus = errors.New("order: invalid status")
	// ErrOrderInvalidState indicates a disallowed lifecycle transition.
	ErrOrderInvalidState = errors.New("order: invalid status transition")
)

// OrderServiceDeps bundles collaborators required to construct the order service.
type OrderServiceDeps struct {
	Orders   repositories.OrderRepository
	Counters repositories.CounterRepository
	Events   OrderEventPublisher
	// Sequence names the counter document backing order numbers. Defaults to
	// "orders".
	Sequence    string
	Clock       func() time.Time
	IDGenerator func() string
	Logger      func(ctx context.Context, event string, fields map[string]any)
}

type orderService struct {
	orders   repositories.OrderRepository
	counters repositories.CounterRepository
	events   OrderEventPublisher
	sequence string
	clock    func() time.Time
	newID    func() string
	logger   func(context.Context, string, map[string]any)
}

// NewOrderService wires dependencies into a concrete OrderService implementation.
func NewOrderService(deps OrderServiceDeps) (OrderService, error) {
	if deps.Orders == nil {
		return nil, errors.New("order service: order repository is required")
	}
	if deps.Counters == nil {
		return nil, errors.New("order service: counter repository is required")
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string {
			return ulid.Make().String()
		}
	}

	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	sequence := strings.TrimSpace(deps.Sequence)
	if sequence == "" {
		sequence = orderNumberCounter
	}

	return &orderService{
		orders:   deps.Orders,
		counters: deps.Counters,
		events:   deps.Events,
		sequence: sequence,
		clock: func() time.Time {
			return clock().UTC()
		},
		newID:  idGen,
		logger: logger,
	}, nil
}

func (s *orderService) Create(ctx context.Context, cmd CreateOrderCommand) (Order, error) {
	info, err := normalizeCustomerInfo(cmd.CustomerInfo)
	if err != nil {
		return Order{}, err
	}

	items, total, err := normalizeItems(cmd.Items)
	if err != nil {
		return Order{}, err
	}

	now := s.clock()

	number, err := s.generateOrderNumber(ctx, now)
	if err != nil {
		return Order{}, s.mapRepositoryError(err)
	}

	order := Order{
		ID:           orderIDPrefix + s.newID(),
		OrderNumber:  number,
		UserID:       strings.TrimSpace(cmd.UserID),
		CustomerInfo: info,
		Items:        items,
		Total:        total,
		Status:       domain.OrderStatusPlaced,
		CreatedAt:    now,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return Order{}, s.mapRepositoryError(err)
	}

	s.publishEvent(ctx, OrderEventMessage{
		Type:        OrderEventCreated,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      string(order.Status),
		Total:       order.Total,
		OccurredAt:  now,
	})

	return order, nil
}

func (s *orderService) Get(ctx context.Context, orderID string) (Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return Order{}, fmt.Errorf("%w: order id is required", ErrOrderInvalidInput)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return Order{}, s.mapRepositoryError(err)
	}
	return order, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrOrderInvalidInput)
	}

	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.mapRepositoryError(err)
	}
	return orders, nil
}

func (s *orderService) ListAll(ctx context.Context) ([]Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, s.mapRepositoryError(err)
	}
	return orders, nil
}

// Search tries the term as an order number first, then as a customer phone
// number, taking the most recent order on a phone match.
func (s *orderService) Search(ctx context.Context, term string) (Order, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return Order{}, fmt.Errorf("%w: search term is required", ErrOrderInvalidInput)
	}

	order, err := s.orders.FindByOrderNumber(ctx, term)
	if err == nil {
		return order, nil
	}
	if !isRepositoryNotFound(err) {
		return Order{}, s.mapRepositoryError(err)
	}

	order, err = s.orders.FindLatestByPhone(ctx, term)
	if err != nil {
		return Order{}, s.mapRepositoryError(err)
	}
	return order, nil
}

func (s *orderService) TransitionStatus(ctx context.Context, cmd OrderStatusCommand) (Order, error) {
	orderID := strings.TrimSpace(cmd.OrderID)
	if orderID == "" {
		return Order{}, fmt.Errorf("%w: order id is required", ErrOrderInvalidInput)
	}

	target, ok := domain.ParseOrderStatus(cmd.Status)
	if !ok {
		return Order{}, fmt.Errorf("%w: %q", ErrOrderInvalidStatus, cmd.Status)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return Order{}, s.mapRepositoryError(err)
	}

	previous := order.Status
	if previous == target {
		return order, nil
	}

	if target == domain.OrderStatusCancelled && previous == domain.OrderStatusDelivered {
		return Order{}, fmt.Errorf("%w: cannot cancel a delivered order", ErrOrderInvalidState)
	}

	if err := s.orders.SetStatus(ctx, order.ID, target); err != nil {
		return Order{}, s.mapRepositoryError(err)
	}
	order.Status = target

	s.publishEvent(ctx, OrderEventMessage{
		Type:           OrderEventStatusChanged,
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		UserID:         order.UserID,
		Status:         string(target),
		PreviousStatus: string(previous),
		Total:          order.Total,
		OccurredAt:     s.clock(),
	})

	return order, nil
}

func normalizeCustomerInfo(info CustomerInfo) (CustomerInfo, error) {
	info.Name = strings.TrimSpace(info.Name)
	info.PhoneNumber = strings.TrimSpace(info.PhoneNumber)
	info.Address = strings.TrimSpace(info.Address)
	info.TransactionID = strings.TrimSpace(info.TransactionID)
	info.SenderNumber = strings.TrimSpace(info.SenderNumber)

	if info.Name == "" {
		return CustomerInfo{}, fmt.Errorf("%w: customer name is required", ErrOrderInvalidInput)
	}
	if info.PhoneNumber == "" {
		return CustomerInfo{}, fmt.Errorf("%w: customer phone number is required", ErrOrderInvalidInput)
	}
	if info.Address == "" {
		return CustomerInfo{}, fmt.Errorf("%w: delivery address is required", ErrOrderInvalidInput)
	}
	switch info.PaymentOption {
	case domain.PaymentOptionCODWithAdvance, domain.PaymentOptionFullAdvance:
	default:
		return CustomerInfo{}, fmt.Errorf("%w: unknown payment option %q", ErrOrderInvalidInput, info.PaymentOption)
	}
	switch info.PaymentMethod {
	case domain.PaymentMethodBkash, domain.PaymentMethodNagad:
	default:
		return CustomerInfo{}, fmt.Errorf("%w: unknown payment method %q", ErrOrderInvalidInput, info.PaymentMethod)
	}
	if info.TransactionID == "" {
		return CustomerInfo{}, fmt.Errorf("%w: transaction id is required", ErrOrderInvalidInput)
	}

	return info, nil
}

func normalizeItems(items []OrderItem) ([]OrderItem, int64, error) {
	if len(items) == 0 {
		return nil, 0, fmt.Errorf("%w: order must contain at least one item", ErrOrderInvalidInput)
	}

	normalized := make([]OrderItem, 0, len(items))
	var total int64
	for i, item := range items {
		item.ProductID = strings.TrimSpace(item.ProductID)
		item.Name = strings.TrimSpace(item.Name)
		if item.ProductID == "" {
			return nil, 0, fmt.Errorf("%w: item %d product id is required", ErrOrderInvalidInput, i)
		}
		if item.Name == "" {
			return nil, 0, fmt.Errorf("%w: item %d name is required", ErrOrderInvalidInput, i)
		}
		if item.Quantity < 1 {
			return nil, 0, fmt.Errorf("%w: item %d quantity must be at least 1", ErrOrderInvalidInput, i)
		}
		if item.Price < 0 {
			return nil, 0, fmt.Errorf("%w: item %d price must not be negative", ErrOrderInvalidInput, i)
		}
		total += item.Price * int64(item.Quantity)
		normalized = append(normalized, item)
	}

	return normalized, total, nil
}

// generateOrderNumber derives the user-facing order number from the creation
// second plus a counter suffix, so two orders placed in the same instant never
// share a number.
func (s *orderService) generateOrderNumber(ctx context.Context, now time.Time) (string, error) {
	seq, err := s.counters.Next(ctx, s.sequence, 1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d%02d", now.Unix(), seq%orderNumberSuffixMod), nil
}

func (s *orderService) mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		switch {
		case repoErr.IsNotFound():
			return fmt.Errorf("%w: %v", ErrOrderNotFound, err)
		case repoErr.IsUnavailable():
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}

	var counterErr *repositories.CounterError
	if errors.As(err, &counterErr) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return err
}

func isRepositoryNotFound(err error) bool {
	var repoErr repositories.RepositoryError
	return errors.As(err, &repoErr) && repoErr.IsNotFound()
}

func (s *orderService) publishEvent(ctx context.Context, message OrderEventMessage) {
	if s.events == nil {
		return
	}
	if _, err := s.events.PublishOrderEvent(ctx, message); err != nil {
		s.logger(ctx, "order.event.publish.failed", map[string]any{
			"type":   message.Type,
			"order":  message.OrderID,
			"status": message.Status,
			"error":  err.Error(),
		})
	}
}
