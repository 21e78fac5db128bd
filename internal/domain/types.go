package domain

import (
	"strings"
	"time"
)

// OrderStatus enumerates valid lifecycle states for orders. The values are
// stored verbatim in Firestore and shown verbatim in the back-office, so they
// keep their display casing.
type OrderStatus string

const (
	// OrderStatusPlaced is the initial state assigned at checkout.
	OrderStatusPlaced OrderStatus = "Placed"
	// OrderStatusProcessing indicates the order has been picked up by staff.
	OrderStatusProcessing OrderStatus = "Processing"
	// OrderStatusShipped indicates the order has been handed to a courier.
	OrderStatusShipped OrderStatus = "Shipped"
	// OrderStatusDelivered indicates the order reached the customer (terminal).
	OrderStatusDelivered OrderStatus = "Delivered"
	// OrderStatusCancelled indicates the order was cancelled (terminal).
	OrderStatusCancelled OrderStatus = "Cancelled"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderStatusPlaced:     {},
	OrderStatusProcessing: {},
	OrderStatusShipped:    {},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// ParseOrderStatus validates a raw status string against the five known
// lifecycle states. Unknown strings (including wrong casing) are rejected.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	status := OrderStatus(strings.TrimSpace(raw))
	if _, ok := orderStatuses[status]; !ok {
		return "", false
	}
	return status, true
}

// IsTerminal reports whether no further forward transition is expected.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// PaymentOption enumerates the two checkout payment arrangements.
type PaymentOption string

const (
	// PaymentOptionCODWithAdvance collects a fixed advance up front and the
	// balance in cash on delivery.
	PaymentOptionCODWithAdvance PaymentOption = "cod_with_advance"
	// PaymentOptionFullAdvance collects the full total up front.
	PaymentOptionFullAdvance PaymentOption = "full_advance"
)

// PaymentMethod enumerates the supported mobile payment providers.
type PaymentMethod string

const (
	PaymentMethodBkash PaymentMethod = "bkash"
	PaymentMethodNagad PaymentMethod = "nagad"
)

// CustomerInfo is the shipping and payment snapshot captured at checkout.
// The transaction id and sender number reference the customer's manual mobile
// payment; they are free text confirmed by staff out-of-band.
type CustomerInfo struct {
	Name          string
	PhoneNumber   string
	Address       string
	PaymentOption PaymentOption
	PaymentMethod PaymentMethod
	TransactionID string
	SenderNumber  string
}

// OrderItem mirrors a cart line at the time of checkout. Prices are copied
// from the catalog and never re-read for existing orders.
type OrderItem struct {
	ProductID string
	Name      string
	ImageURL  string
	Price     int64
	Quantity  int
}

// Order captures the order header returned to handlers and services.
// Total is computed once at creation and never recomputed; Status is mutated
// only by the order service's lifecycle transition.
type Order struct {
	ID           string
	OrderNumber  string
	UserID       string
	CustomerInfo CustomerInfo
	Items        []OrderItem
	Total        int64
	Status       OrderStatus
	CreatedAt    time.Time
}

// PaymentNumber is a mobile-money destination rendered at checkout.
type PaymentNumber struct {
	ID          string
	Type        PaymentMethod
	Number      string
	AccountType string
}

// Review is a customer (or generated) product review embedded on a product.
type Review struct {
	Author  string
	Rating  int
	Comment string
}

// Product is a catalog entry. Rating and SoldCount are display metadata
// assigned at creation; Slug is derived from the name.
type Product struct {
	ID            string
	Slug          string
	Name          string
	Description   string
	Price         int64
	OriginalPrice int64
	ImageURL      string
	Category      string
	Rating        float64
	SoldCount     int
	Reviews       []Review
	IsHotDeal     bool
}

// Category is a catalog grouping keyed by its slug.
type Category struct {
	ID   string
	Name string
	Slug string
}

// Banner is a promotional image shown on the storefront home page.
type Banner struct {
	ID       string
	Alt      string
	ImageURL string
	Link     string
}
