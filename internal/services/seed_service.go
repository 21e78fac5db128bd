package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"

	domain "github.com/hatbazar/api/internal/domain"
	"github.com/hatbazar/api/internal/platform/textutil"
	"github.com/hatbazar/api/internal/repositories"
)

// SeedServiceDeps bundles collaborators for the seed service.
type SeedServiceDeps struct {
	Products   repositories.ProductRepository
	Categories repositories.CategoryRepository
	Banners    repositories.BannerRepository
	Numbers    repositories.PaymentNumberRepository
	// Rating stamps display ratings on seeded products, as the catalog service
	// does for admin-created ones.
	Rating      func() float64
	IDGenerator func() string
	Logger      func(ctx context.Context, event string, fields map[string]any)
}

type seedService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	banners    repositories.BannerRepository
	numbers    repositories.PaymentNumberRepository
	rating     func() float64
	newID      func() string
	logger     func(context.Context, string, map[string]any)
}

// NewSeedService wires dependencies into a concrete SeedService implementation.
func NewSeedService(deps SeedServiceDeps) (SeedService, error) {
	if deps.Products == nil {
		return nil, errors.New("seed service: product repository is required")
	}
	if deps.Categories == nil {
		return nil, errors.New("seed service: category repository is required")
	}
	if deps.Banners == nil {
		return nil, errors.New("seed service: banner repository is required")
	}
	if deps.Numbers == nil {
		return nil, errors.New("seed service: payment number repository is required")
	}

	rating := deps.Rating
	if rating == nil {
		rating = defaultRating
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

	return &seedService{
		products:   deps.Products,
		categories: deps.Categories,
		banners:    deps.Banners,
		numbers:    deps.Numbers,
		rating:     rating,
		newID:      idGen,
		logger:     logger,
	}, nil
}

// Seed populates the catalog and payment numbers with the default storefront
// dataset. It is a no-op when any product already exists, so repeated calls
// are safe.
func (s *seedService) Seed(ctx context.Context) (SeedReport, error) {
	exists, err := s.products.Any(ctx)
	if err != nil {
		return SeedReport{}, mapCatalogError(err)
	}
	if exists {
		s.logger(ctx, "seed.skipped", map[string]any{"reason": "products exist"})
		return SeedReport{}, nil
	}

	report := SeedReport{Seeded: true}

	seen := make(map[string]struct{})
	for _, product := range seedProducts {
		if _, ok := seen[product.Category]; !ok {
			seen[product.Category] = struct{}{}
			slug := textutil.Slugify(product.Category)
			category := domain.Category{ID: slug, Name: product.Category, Slug: slug}
			if err := s.categories.Upsert(ctx, category); err != nil {
				return SeedReport{}, fmt.Errorf("seed category %q: %w", slug, mapCatalogError(err))
			}
			report.Categories++
		}

		product.ID = productIDPrefix + s.newID()
		product.Slug = textutil.Slugify(product.Name)
		product.Rating = s.rating()
		if err := s.products.Insert(ctx, product); err != nil {
			return SeedReport{}, fmt.Errorf("seed product %q: %w", product.Slug, mapCatalogError(err))
		}
		report.Products++
	}

	for _, number := range seedPaymentNumbers {
		number.ID = paymentNumberIDPrefix + s.newID()
		if err := s.numbers.Insert(ctx, number); err != nil {
			return SeedReport{}, fmt.Errorf("seed payment number %q: %w", number.Number, mapPaymentNumberError(err))
		}
		report.PaymentNumbers++
	}

	for _, banner := range seedBanners {
		banner.ID = bannerIDPrefix + s.newID()
		if err := s.banners.Insert(ctx, banner); err != nil {
			return SeedReport{}, fmt.Errorf("seed banner %q: %w", banner.Alt, mapCatalogError(err))
		}
		report.Banners++
	}

	s.logger(ctx, "seed.completed", map[string]any{
		"products":       report.Products,
		"categories":     report.Categories,
		"banners":        report.Banners,
		"paymentNumbers": report.PaymentNumbers,
	})
	return report, nil
}

var seedPaymentNumbers = []domain.PaymentNumber{
	{Type: domain.PaymentMethodBkash, Number: "01750016536", AccountType: AccountTypePersonal},
	{Type: domain.PaymentMethodNagad, Number: "01865870357", AccountType: AccountTypePersonal},
}

var seedBanners = []domain.Banner{
	{Alt: "Promotional Banner 1", ImageURL: "https://picsum.photos/1200/400?random=10", Link: "/category/apparel"},
	{Alt: "Promotional Banner 2", ImageURL: "https://picsum.photos/1200/400?random=11", Link: "/category/electronics"},
	{Alt: "Promotional Banner 3", ImageURL: "https://picsum.photos/1200/400?random=12", Link: "/"},
}

var seedProducts = []domain.Product{
	{
		Name:          "Classic Blue Jeans",
		Description:   "Timeless and durable, these classic blue jeans are a wardrobe staple. Made from 100% premium cotton for maximum comfort and longevity.",
		Price:         590,
		OriginalPrice: 750,
		ImageURL:      "https://picsum.photos/600/600?random=1",
		Category:      "Apparel",
		IsHotDeal:     true,
		SoldCount:     120,
		Reviews: []domain.Review{
			{Author: "Mehedi H.", Rating: 5, Comment: "Excellent fit and very comfortable. Highly recommended!"},
			{Author: "Sadia A.", Rating: 4, Comment: "Good quality denim, but the color is slightly darker than the picture."},
		},
	},
	{
		Name:        "Smart Home Hub",
		Description: "Control your entire smart home with this central hub. Compatible with thousands of devices from various brands. Voice control enabled.",
		Price:       1290,
		ImageURL:    "https://picsum.photos/600/600?random=2",
		Category:    "Electronics",
		SoldCount:   45,
	},
	{
		Name:        "Organic Green Tea",
		Description: "A soothing and healthy blend of organic green tea leaves, sourced from the finest gardens. Rich in antioxidants.",
		Price:       155,
		ImageURL:    "https://picsum.photos/600/600?random=3",
		Category:    "Groceries",
		SoldCount:   88,
	},
	{
		Name:          "Leather Messenger Bag",
		Description:   "A stylish and functional messenger bag crafted from genuine leather. Perfect for work, with multiple compartments including a padded laptop sleeve.",
		Price:         990,
		OriginalPrice: 1200,
		ImageURL:      "https://picsum.photos/600/600?random=4",
		Category:      "Accessories",
		IsHotDeal:     true,
		SoldCount:     64,
	},
	{
		Name:        "Wireless Noise-Cancelling Headphones",
		Description: "Immerse yourself in music with these top-tier noise-cancelling headphones. Features 30-hour battery life and crystal-clear audio quality.",
		Price:       2499,
		ImageURL:    "https://picsum.photos/600/600?random=5",
		Category:    "Electronics",
		IsHotDeal:   true,
		SoldCount:   150,
	},
	{
		Name:          "Modern Graphic T-Shirt",
		Description:   "Express yourself with this soft cotton t-shirt featuring a unique modern graphic design. Available in various sizes and colors.",
		Price:         249,
		OriginalPrice: 350,
		ImageURL:      "https://picsum.photos/600/600?random=6",
		Category:      "Apparel",
		IsHotDeal:     true,
		SoldCount:     95,
	},
	{
		Name:        "Yoga Mat",
		Description: "High-density, non-slip yoga mat for a comfortable and stable practice. Eco-friendly and easy to clean.",
		Price:       350,
		ImageURL:    "https://picsum.photos/600/600?random=7",
		Category:    "Sports & Outdoors",
		SoldCount:   30,
	},
	{
		Name:        "Stainless Steel Water Bottle",
		Description: "Stay hydrated with this double-walled, vacuum-insulated water bottle. Keeps drinks cold for 24 hours or hot for 12 hours.",
		Price:       225,
		ImageURL:    "https://picsum.photos/600/600?random=8",
		Category:    "Accessories",
		SoldCount:   110,
	},
	{
		Name:          "Gaming Mouse",
		Description:   "High-precision gaming mouse with customizable RGB lighting and programmable buttons.",
		Price:         490,
		OriginalPrice: 600,
		ImageURL:      "https://picsum.photos/600/600?random=9",
		Category:      "Electronics",
		IsHotDeal:     true,
		SoldCount:     78,
	},
	{
		Name:        "Summer T-Shirt",
		Description: "Lightweight and breathable t-shirt, perfect for hot summer days.",
		Price:       190,
		ImageURL:    "https://picsum.photos/600/600?random=10",
		Category:    "Apparel",
		SoldCount:   200,
	},
	{
		Name:          "Espresso Machine",
		Description:   "Barista-grade espresso machine for your home kitchen.",
		Price:         4990,
		OriginalPrice: 5500,
		ImageURL:      "https://picsum.photos/600/600?random=11",
		Category:      "Home & Kitchen",
		SoldCount:     25,
	},
	{
		Name:        "Vitamin C Serum",
		Description: "Brightening and anti-aging serum with 20% Vitamin C.",
		Price:       350,
		ImageURL:    "https://picsum.photos/600/600?random=12",
		Category:    "Beauty & Personal Care",
		SoldCount:   90,
	},
	{
		Name:        "The Alchemist",
		Description: "A classic novel by Paulo Coelho.",
		Price:       180,
		ImageURL:    "https://picsum.photos/600/600?random=13",
		Category:    "Books",
		SoldCount:   300,
	},
	{
		Name:        "Building Blocks Set",
		Description: "A 500-piece building block set for endless creativity.",
		Price:       550,
		ImageURL:    "https://picsum.photos/600/600?random=14",
		Category:    "Toys & Games",
		SoldCount:   15,
	},
	{
		Name:        "Car Phone Mount",
		Description: "Universal car phone mount with a strong suction cup.",
		Price:       250,
		ImageURL:    "https://picsum.photos/600/600?random=15",
		Category:    "Automotive",
		SoldCount:   180,
	},
}
