package services

import (
	"context"
	"errors"
	"time"

	domain "github.com/hatbazar/api/internal/domain"
)

// Type aliases expose domain models to the services package without reversing dependency direction.
type (
	Order         = domain.Order
	OrderItem     = domain.OrderItem
	OrderStatus   = domain.OrderStatus
	CustomerInfo  = domain.CustomerInfo
	PaymentOption = domain.PaymentOption
	PaymentMethod = domain.PaymentMethod
	PaymentNumber = domain.PaymentNumber
	Product       = domain.Product
	Category      = domain.Category
	Banner        = domain.Banner
	Review        = domain.Review
)

// ErrStorageUnavailable indicates the persistence layer could not serve the
// request. Callers must treat it as a failure, never as an empty result.
var ErrStorageUnavailable = errors.New("storage unavailable")

// OrderService owns the order lifecycle: creation at checkout, reads for
// account and back-office views, search-based tracking, and status
// transitions. Only this service mutates an order's status.
type OrderService interface {
	Create(ctx context.Context, cmd CreateOrderCommand) (Order, error)
	Get(ctx context.Context, orderID string) (Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	// Search resolves a tracking term: exact order number first, then the most
	// recent order matching the customer phone number exactly.
	Search(ctx context.Context, term string) (Order, error)
	TransitionStatus(ctx context.Context, cmd OrderStatusCommand) (Order, error)
}

// CreateOrderCommand carries checkout input. UserID is empty for guests.
type CreateOrderCommand struct {
	UserID       string
	CustomerInfo CustomerInfo
	Items        []OrderItem
}

// OrderStatusCommand requests a lifecycle transition for an order.
type OrderStatusCommand struct {
	OrderID string
	Status  string
	ActorID string
}

// OrderLookupService decorates orders with payment figures for presentation.
type OrderLookupService interface {
	ViewOrder(ctx context.Context, orderID string) (OrderView, error)
	ViewOrdersByUser(ctx context.Context, userID string) ([]OrderView, error)
	ViewAllOrders(ctx context.Context) ([]OrderView, error)
	Track(ctx context.Context, term string) (OrderView, error)
}

// OrderView is an order enriched with the derived payment fields shown to
// customers and staff. CreatedAt is RFC3339.
type OrderView struct {
	ID           string
	OrderNumber  string
	UserID       string
	CustomerInfo CustomerInfo
	Items        []OrderItem
	Total        int64
	Status       OrderStatus
	CreatedAt    string
	AmountPaid   int64
	AmountDue    int64
	PaymentType  string
}

// CatalogService manages products, categories, and banners.
type CatalogService interface {
	CreateProduct(ctx context.Context, cmd ProductCommand) (Product, error)
	UpdateProduct(ctx context.Context, productID string, cmd ProductCommand) (Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	GetProduct(ctx context.Context, productID string) (Product, error)
	GetProductBySlug(ctx context.Context, slug string) (Product, error)
	ListProducts(ctx context.Context, query ProductQuery) ([]Product, error)

	SaveCategory(ctx context.Context, name string) (Category, error)
	DeleteCategory(ctx context.Context, slug string) error
	GetCategory(ctx context.Context, slug string) (Category, error)
	ListCategories(ctx context.Context) ([]Category, error)

	CreateBanner(ctx context.Context, cmd BannerCommand) (Banner, error)
	UpdateBanner(ctx context.Context, bannerID string, cmd BannerCommand) (Banner, error)
	DeleteBanner(ctx context.Context, bannerID string) error
	ListBanners(ctx context.Context) ([]Banner, error)
}

// ProductCommand carries admin input for creating or updating a product.
type ProductCommand struct {
	Name          string
	Description   string
	Price         int64
	OriginalPrice int64
	ImageURL      string
	Category      string
	IsHotDeal     bool
}

// ProductQuery narrows product listings. Search matches name or description
// with Unicode case folding.
type ProductQuery struct {
	Search       string
	Category     string
	HotDealsOnly bool
}

// BannerCommand carries admin input for a storefront banner.
type BannerCommand struct {
	Alt      string
	ImageURL string
	Link     string
}

// PaymentNumberService manages the mobile-money numbers shown at checkout.
type PaymentNumberService interface {
	Create(ctx context.Context, cmd PaymentNumberCommand) (PaymentNumber, error)
	Update(ctx context.Context, paymentNumberID string, cmd PaymentNumberCommand) (PaymentNumber, error)
	Delete(ctx context.Context, paymentNumberID string) error
	List(ctx context.Context) ([]PaymentNumber, error)
}

// PaymentNumberCommand carries admin input for a payment destination number.
type PaymentNumberCommand struct {
	Type        string
	Number      string
	AccountType string
}

// ReviewService generates and stores product reviews through the AI
// collaborator.
type ReviewService interface {
	GenerateReviews(ctx context.Context, productID string) ([]Review, error)
}

// RecommendationService resolves AI-ranked product ids against the catalog.
type RecommendationService interface {
	Recommend(ctx context.Context, query RecommendationQuery) ([]Product, error)
}

// RecommendationQuery carries the personalisation inputs. PurchaseHistory
// holds product ids the customer bought or browsed.
type RecommendationQuery struct {
	UserID          string
	PurchaseHistory []string
}

// SeedService populates the catalog and payment numbers when empty.
type SeedService interface {
	Seed(ctx context.Context) (SeedReport, error)
}

// SeedReport summarises a seeding run. Seeded is false when data already
// existed and nothing was written.
type SeedReport struct {
	Seeded         bool
	Products       int
	Categories     int
	Banners        int
	PaymentNumbers int
}

// OrderEventPublisher publishes order domain events for downstream consumers.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, message OrderEventMessage) (string, error)
}

// Order event types carried on OrderEventMessage.Type.
const (
	OrderEventCreated       = "order.created"
	OrderEventStatusChanged = "order.status.changed"
)

// OrderEventMessage is the payload published to the order events topic.
type OrderEventMessage struct {
	Type           string    `json:"type"`
	OrderID        string    `json:"orderId"`
	OrderNumber    string    `json:"orderNumber"`
	UserID         string    `json:"userId,omitempty"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	Total          int64     `json:"total"`
	OccurredAt     time.Time `json:"occurredAt"`
}
