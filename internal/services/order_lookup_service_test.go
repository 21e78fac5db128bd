package services

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/hatbazar/api/internal/domain"
)

type stubOrderService struct {
	getFn    func(context.Context, string) (Order, error)
	listFn   func(context.Context, string) ([]Order, error)
	allFn    func(context.Context) ([]Order, error)
	searchFn func(context.Context, string) (Order, error)
}

func (s *stubOrderService) Create(context.Context, CreateOrderCommand) (Order, error) {
	return Order{}, errors.New("not implemented")
}

func (s *stubOrderService) Get(ctx context.Context, orderID string) (Order, error) {
	if s.getFn != nil {
		return s.getFn(ctx, orderID)
	}
	return Order{}, errors.New("not implemented")
}

func (s *stubOrderService) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubOrderService) ListAll(ctx context.Context) ([]Order, error) {
	if s.allFn != nil {
		return s.allFn(ctx)
	}
	return nil, nil
}

func (s *stubOrderService) Search(ctx context.Context, term string) (Order, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, term)
	}
	return Order{}, errors.New("not implemented")
}

func (s *stubOrderService) TransitionStatus(context.Context, OrderStatusCommand) (Order, error) {
	return Order{}, errors.New("not implemented")
}

func sampleOrder(option domain.PaymentOption, status domain.OrderStatus, total int64) Order {
	return Order{
		ID:          "ord_1",
		OrderNumber: "174653760012",
		UserID:      "user-1",
		CustomerInfo: CustomerInfo{
			Name:          "Rahim Uddin",
			PhoneNumber:   "01712345678",
			Address:       "Dhanmondi, Dhaka",
			PaymentOption: option,
			PaymentMethod: domain.PaymentMethodBkash,
			TransactionID: "TX1",
		},
		Items:     []OrderItem{{ProductID: "prd_1", Name: "Yoga Mat", Price: total, Quantity: 1}},
		Total:     total,
		Status:    status,
		CreatedAt: time.Date(2025, time.May, 6, 13, 20, 0, 0, time.UTC),
	}
}

func TestViewOrderStampsPaymentFigures(t *testing.T) {
	orders := &stubOrderService{
		getFn: func(context.Context, string) (Order, error) {
			return sampleOrder(domain.PaymentOptionCODWithAdvance, domain.OrderStatusPlaced, 1500), nil
		},
	}
	svc, err := NewOrderLookupService(OrderLookupServiceDeps{Orders: orders})
	if err != nil {
		t.Fatalf("NewOrderLookupService: %v", err)
	}

	view, err := svc.ViewOrder(context.Background(), "ord_1")
	if err != nil {
		t.Fatalf("ViewOrder: %v", err)
	}

	if view.AmountPaid != 120 {
		t.Fatalf("amount paid = %d, want 120", view.AmountPaid)
	}
	if view.AmountDue != 1380 {
		t.Fatalf("amount due = %d, want 1380", view.AmountDue)
	}
	if view.PaymentType != "Cash on Delivery" {
		t.Fatalf("payment type = %q", view.PaymentType)
	}
	if view.CreatedAt != "2025-05-06T13:20:00Z" {
		t.Fatalf("createdAt = %q", view.CreatedAt)
	}
}

func TestViewOrderDeliveredOwesNothing(t *testing.T) {
	orders := &stubOrderService{
		getFn: func(context.Context, string) (Order, error) {
			return sampleOrder(domain.PaymentOptionCODWithAdvance, domain.OrderStatusDelivered, 1500), nil
		},
	}
	svc, _ := NewOrderLookupService(OrderLookupServiceDeps{Orders: orders})

	view, err := svc.ViewOrder(context.Background(), "ord_1")
	if err != nil {
		t.Fatalf("ViewOrder: %v", err)
	}
	if view.AmountDue != 0 {
		t.Fatalf("delivered order due = %d, want 0", view.AmountDue)
	}
	if view.AmountPaid != 120 {
		t.Fatalf("amount paid = %d, want 120", view.AmountPaid)
	}
}

func TestTrackPropagatesSearchErrors(t *testing.T) {
	orders := &stubOrderService{
		searchFn: func(context.Context, string) (Order, error) {
			return Order{}, ErrOrderNotFound
		},
	}
	svc, _ := NewOrderLookupService(OrderLookupServiceDeps{Orders: orders})

	if _, err := svc.Track(context.Background(), "nope"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestViewOrdersByUserPreservesOrderAndFullAdvance(t *testing.T) {
	orders := &stubOrderService{
		listFn: func(context.Context, string) ([]Order, error) {
			newer := sampleOrder(domain.PaymentOptionFullAdvance, domain.OrderStatusProcessing, 990)
			newer.ID = "ord_2"
			older := sampleOrder(domain.PaymentOptionFullAdvance, domain.OrderStatusDelivered, 350)
			return []Order{newer, older}, nil
		},
	}
	svc, _ := NewOrderLookupService(OrderLookupServiceDeps{Orders: orders})

	views, err := svc.ViewOrdersByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ViewOrdersByUser: %v", err)
	}
	if len(views) != 2 || views[0].ID != "ord_2" {
		t.Fatalf("unexpected views %+v", views)
	}
	if views[0].AmountPaid != 990 || views[0].AmountDue != 0 {
		t.Fatalf("full advance figures wrong: %+v", views[0])
	}
	if views[0].PaymentType != "Full Advance" {
		t.Fatalf("payment type = %q", views[0].PaymentType)
	}
}
