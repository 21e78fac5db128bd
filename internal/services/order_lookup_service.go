package services

import (
	"context"
	"errors"
	"time"

	domain "github.com/hatbazar/api/internal/domain"
)

// OrderLookupServiceDeps bundles collaborators for the lookup service.
type OrderLookupServiceDeps struct {
	Orders OrderService
}

type orderLookupService struct {
	orders OrderService
}

// NewOrderLookupService builds the stateless presentation layer over the
// order service.
func NewOrderLookupService(deps OrderLookupServiceDeps) (OrderLookupService, error) {
	if deps.Orders == nil {
		return nil, errors.New("order lookup service: order service is required")
	}
	return &orderLookupService{orders: deps.Orders}, nil
}

func (s *orderLookupService) ViewOrder(ctx context.Context, orderID string) (OrderView, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return OrderView{}, err
	}
	return buildOrderView(order), nil
}

func (s *orderLookupService) ViewOrdersByUser(ctx context.Context, userID string) ([]OrderView, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildOrderViews(orders), nil
}

func (s *orderLookupService) ViewAllOrders(ctx context.Context) ([]OrderView, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildOrderViews(orders), nil
}

func (s *orderLookupService) Track(ctx context.Context, term string) (OrderView, error) {
	order, err := s.orders.Search(ctx, term)
	if err != nil {
		return OrderView{}, err
	}
	return buildOrderView(order), nil
}

func buildOrderView(order Order) OrderView {
	return OrderView{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		UserID:       order.UserID,
		CustomerInfo: order.CustomerInfo,
		Items:        order.Items,
		Total:        order.Total,
		Status:       order.Status,
		CreatedAt:    order.CreatedAt.UTC().Format(time.RFC3339),
		AmountPaid:   domain.AmountPaid(order),
		AmountDue:    domain.AmountDue(order),
		PaymentType:  domain.PaymentTypeLabel(order.CustomerInfo.PaymentOption),
	}
}

func buildOrderViews(orders []Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, buildOrderView(order))
	}
	return views
}
