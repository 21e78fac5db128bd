package repositories

import (
	"context"
	"time"

	domain "github.com/hatbazar/api/internal/domain"
)

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// OrderRepository persists order headers and provides the lookups needed by
// account, tracking, and admin views. Listings are ordered by creation time
// descending. SetStatus must touch only the status field of the document.
type OrderRepository interface {
	Insert(ctx context.Context, order domain.Order) error
	FindByID(ctx context.Context, orderID string) (domain.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (domain.Order, error)
	// FindLatestByPhone returns the most recently created order whose customer
	// phone number matches exactly.
	FindLatestByPhone(ctx context.Context, phoneNumber string) (domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

// ProductRepository stores catalog products with their embedded reviews.
type ProductRepository interface {
	Insert(ctx context.Context, product domain.Product) error
	Update(ctx context.Context, product domain.Product) error
	Delete(ctx context.Context, productID string) error
	FindByID(ctx context.Context, productID string) (domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	ReplaceReviews(ctx context.Context, productID string, reviews []domain.Review) error
	// Any reports whether at least one product exists; used by idempotent seeding.
	Any(ctx context.Context) (bool, error)
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	HotDealsOnly bool
	Category     string
}

// CategoryRepository stores catalog categories keyed by slug.
type CategoryRepository interface {
	Upsert(ctx context.Context, category domain.Category) error
	Delete(ctx context.Context, categoryID string) error
	FindBySlug(ctx context.Context, slug string) (domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// BannerRepository stores storefront promotional banners.
type BannerRepository interface {
	Insert(ctx context.Context, banner domain.Banner) error
	Update(ctx context.Context, banner domain.Banner) error
	Delete(ctx context.Context, bannerID string) error
	FindByID(ctx context.Context, bannerID string) (domain.Banner, error)
	List(ctx context.Context) ([]domain.Banner, error)
}

// PaymentNumberRepository stores mobile-money destination numbers shown at checkout.
type PaymentNumberRepository interface {
	Insert(ctx context.Context, number domain.PaymentNumber) error
	Update(ctx context.Context, number domain.PaymentNumber) error
	Delete(ctx context.Context, paymentNumberID string) error
	FindByID(ctx context.Context, paymentNumberID string) (domain.PaymentNumber, error)
	List(ctx context.Context) ([]domain.PaymentNumber, error)
}

// CounterRepository provides transaction-safe sequence numbers, used to keep
// order numbers unique within a single creation instant.
type CounterRepository interface {
	Next(ctx context.Context, counterID string, step int64) (int64, error)
	Configure(ctx context.Context, counterID string, cfg CounterConfig) error
}

// CounterConfig customises increment behaviour and bounds for a counter.
type CounterConfig struct {
	Step         int64
	MaxValue     *int64
	InitialValue *int64
}

// DependencyCheck probes a single downstream dependency for health reporting.
type DependencyCheck struct {
	Name    string
	Timeout time.Duration
	Check   func(ctx context.Context) error
}
