package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hatbazar/api/internal/platform/auth"
	"github.com/hatbazar/api/internal/services"
)

func newOrderRouter(orders services.OrderService) chi.Router {
	r := chi.NewRouter()
	NewOrderHandlers(nil, orders).Routes(r)
	return r
}

const checkoutBody = `{
  "customerInfo": {
    "name": "Rahim Uddin",
    "phoneNumber": "01712345678",
    "address": "House 12, Road 5, Dhanmondi, Dhaka",
    "paymentOption": "cod_with_advance",
    "paymentMethod": "bkash",
    "transactionId": "TX12345",
    "senderNumber": "01712345678"
  },
  "items": [
    {"id": "prd_1", "name": "Classic Blue Jeans", "imageUrl": "https://picsum.photos/seed/p1/600", "price": 590, "quantity": 2}
  ]
}`

func TestCreateOrderGuestReturnsCreated(t *testing.T) {
	created := time.Date(2025, time.May, 6, 13, 20, 0, 0, time.UTC)
	orders := &stubOrderService{
		createFn: func(_ context.Context, cmd services.CreateOrderCommand) (services.Order, error) {
			if cmd.UserID != "" {
				t.Fatalf("guest checkout must not carry a user id, got %q", cmd.UserID)
			}
			if len(cmd.Items) != 1 || cmd.Items[0].ProductID != "prd_1" {
				t.Fatalf("unexpected items %+v", cmd.Items)
			}
			return services.Order{
				ID:          "ord_1",
				OrderNumber: "174653760012",
				Status:      "Placed",
				Total:       1180,
				CreatedAt:   created,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(checkoutBody))
	rr := httptest.NewRecorder()
	newOrderRouter(orders).ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if body["orderId"] != "174653760012" {
		t.Fatalf("orderId = %v", body["orderId"])
	}
	if body["createdAt"] != "2025-05-06T13:20:00Z" {
		t.Fatalf("createdAt = %v", body["createdAt"])
	}
}

func TestCreateOrderAuthenticatedCarriesUID(t *testing.T) {
	orders := &stubOrderService{
		createFn: func(_ context.Context, cmd services.CreateOrderCommand) (services.Order, error) {
			if cmd.UserID != "firebase-uid-1" {
				t.Fatalf("user id = %q", cmd.UserID)
			}
			return services.Order{ID: "ord_1", OrderNumber: "174653760012", Status: "Placed", CreatedAt: time.Now()}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(checkoutBody))
	req = req.WithContext(auth.WithIdentity(req.Context(), &auth.Identity{UID: "firebase-uid-1"}))
	rr := httptest.NewRecorder()
	newOrderRouter(orders).ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
}

func TestCreateOrderMalformedBody(t *testing.T) {
	orders := &stubOrderService{
		createFn: func(context.Context, services.CreateOrderCommand) (services.Order, error) {
			t.Fatal("service must not be called for malformed bodies")
			return services.Order{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"customerInfo": `))
	rr := httptest.NewRecorder()
	newOrderRouter(orders).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestCreateOrderInvalidInput(t *testing.T) {
	orders := &stubOrderService{
		createFn: func(context.Context, services.CreateOrderCommand) (services.Order, error) {
			return services.Order{}, services.ErrOrderInvalidInput
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(checkoutBody))
	rr := httptest.NewRecorder()
	newOrderRouter(orders).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

