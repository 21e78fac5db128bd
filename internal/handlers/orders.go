package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hatbazar/api/internal/platform/auth"
	"github.com/hatbazar/api/internal/platform/httpx"
	"github.com/hatbazar/api/internal/services"
)

// OrderHandlers exposes checkout. The authenticated customer's own orders
// live under /me.
type OrderHandlers struct {
	authn  *auth.Authenticator
	orders services.OrderService
}

// NewOrderHandlers constructs a new OrderHandlers instance.
func NewOrderHandlers(authn *auth.Authenticator, orders services.OrderService) *OrderHandlers {
	return &OrderHandlers{
		authn:  authn,
		orders: orders,
	}
}

// Routes registers the /orders endpoints. Checkout accepts guests, so order
// creation uses optional authentication.
func (h *OrderHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}

	if h.authn != nil {
		r.With(h.authn.OptionalFirebaseAuth()).Post("/", h.createOrder)
		return
	}
	r.Post("/", h.createOrder)
}

type createOrderItemRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type createOrderRequest struct {
	CustomerInfo customerInfoPayload      `json:"customerInfo"`
	Items        []createOrderItemRequest `json:"items"`
}

func (h *OrderHandlers) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createOrderRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be a JSON order", http.StatusBadRequest))
		return
	}

	var userID string
	if identity, ok := auth.IdentityFromContext(ctx); ok && identity != nil {
		userID = identity.UID
	}

	items := make([]services.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, services.OrderItem{
			ProductID: item.ID,
			Name:      item.Name,
			ImageURL:  item.ImageURL,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orders.Create(ctx, services.CreateOrderCommand{
		UserID: userID,
		CustomerInfo: services.CustomerInfo{
			Name:          req.CustomerInfo.Name,
			PhoneNumber:   req.CustomerInfo.PhoneNumber,
			Address:       req.CustomerInfo.Address,
			PaymentOption: services.PaymentOption(req.CustomerInfo.PaymentOption),
			PaymentMethod: services.PaymentMethod(req.CustomerInfo.PaymentMethod),
			TransactionID: req.CustomerInfo.TransactionID,
			SenderNumber:  req.CustomerInfo.SenderNumber,
		},
		Items: items,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, map[string]any{
		"id":        order.ID,
		"orderId":   order.OrderNumber,
		"status":    string(order.Status),
		"total":     order.Total,
		"createdAt": order.CreatedAt.UTC().Format(time.RFC3339),
	})
}

