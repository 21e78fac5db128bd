package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/hatbazar/api/internal/platform/textutil"
	"github.com/hatbazar/api/internal/repositories"
)

const (
	productIDPrefix = "prd_"
	bannerIDPrefix  = "bnr_"
)

var (
	// ErrCatalogInvalidInput signals invalid catalog admin input.
	ErrCatalogInvalidInput = errors.New("catalog: invalid input")
	// ErrCatalogNotFound indicates a catalog entity could not be located.
	ErrCatalogNotFound = errors.New("catalog: not found")
)

// CatalogServiceDeps bundles collaborators for the catalog service.
type CatalogServiceDeps struct {
	Products   repositories.ProductRepository
	Categories repositories.CategoryRepository
	Banners    repositories.BannerRepository
	// Rating supplies the display rating stamped on new products. Defaults to
	// a uniform value in [3.5, 5.0] with one decimal, matching seeded data.
	Rating      func() float64
	IDGenerator func() string
}

type catalogService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	banners    repositories.BannerRepository
	rating     func() float64
	newID      func() string
}

// NewCatalogService wires dependencies into a concrete CatalogService implementation.
func NewCatalogService(deps CatalogServiceDeps) (CatalogService, error) {
	if deps.Products == nil {
		return nil, errors.New("catalog service: product repository is required")
	}
	if deps.Categories == nil {
		return nil, errors.New("catalog service: category repository is required")
	}
	if deps.Banners == nil {
		return nil, errors.New("catalog service: banner repository is required")
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

	return &catalogService{
		products:   deps.Products,
		categories: deps.Categories,
		banners:    deps.Banners,
		rating:     rating,
		newID:      idGen,
	}, nil
}

func defaultRating() float64 {
	return float64(35+rand.IntN(16)) / 10
}

func (s *catalogService) CreateProduct(ctx context.Context, cmd ProductCommand) (Product, error) {
	cmd, err := normalizeProductCommand(cmd)
	if err != nil {
		return Product{}, err
	}

	product := Product{
		ID:            productIDPrefix + s.newID(),
		Slug:          textutil.Slugify(cmd.Name),
		Name:          cmd.Name,
		Description:   cmd.Description,
		Price:         cmd.Price,
		OriginalPrice: cmd.OriginalPrice,
		ImageURL:      cmd.ImageURL,
		Category:      cmd.Category,
		Rating:        s.rating(),
		IsHotDeal:     cmd.IsHotDeal,
	}

	if err := s.products.Insert(ctx, product); err != nil {
		return Product{}, mapCatalogError(err)
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, productID string, cmd ProductCommand) (Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return Product{}, fmt.Errorf("%w: product id is required", ErrCatalogInvalidInput)
	}

	cmd, err := normalizeProductCommand(cmd)
	if err != nil {
		return Product{}, err
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return Product{}, mapCatalogError(err)
	}

	product.Name = cmd.Name
	product.Slug = textutil.Slugify(cmd.Name)
	product.Description = cmd.Description
	product.Price = cmd.Price
	product.OriginalPrice = cmd.OriginalPrice
	product.ImageURL = cmd.ImageURL
	product.Category = cmd.Category
	product.IsHotDeal = cmd.IsHotDeal

	if err := s.products.Update(ctx, product); err != nil {
		return Product{}, mapCatalogError(err)
	}
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return fmt.Errorf("%w: product id is required", ErrCatalogInvalidInput)
	}
	return mapCatalogError(s.products.Delete(ctx, productID))
}

func (s *catalogService) GetProduct(ctx context.Context, productID string) (Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return Product{}, fmt.Errorf("%w: product id is required", ErrCatalogInvalidInput)
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return Product{}, mapCatalogError(err)
	}
	return product, nil
}

func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Product{}, fmt.Errorf("%w: product slug is required", ErrCatalogInvalidInput)
	}
	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return Product{}, mapCatalogError(err)
	}
	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context, query ProductQuery) ([]Product, error) {
	products, err := s.products.List(ctx, repositories.ProductFilter{
		HotDealsOnly: query.HotDealsOnly,
		Category:     strings.TrimSpace(query.Category),
	})
	if err != nil {
		return nil, mapCatalogError(err)
	}

	search := strings.TrimSpace(query.Search)
	if search == "" {
		return products, nil
	}

	matched := make([]Product, 0, len(products))
	for _, product := range products {
		if textutil.FoldContains(product.Name, search) || textutil.FoldContains(product.Description, search) {
			matched = append(matched, product)
		}
	}
	return matched, nil
}

func (s *catalogService) SaveCategory(ctx context.Context, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, fmt.Errorf("%w: category name is required", ErrCatalogInvalidInput)
	}

	category := Category{
		ID:   textutil.Slugify(name),
		Name: name,
		Slug: textutil.Slugify(name),
	}
	if err := s.categories.Upsert(ctx, category); err != nil {
		return Category{}, mapCatalogError(err)
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return fmt.Errorf("%w: category slug is required", ErrCatalogInvalidInput)
	}
	return mapCatalogError(s.categories.Delete(ctx, slug))
}

func (s *catalogService) GetCategory(ctx context.Context, slug string) (Category, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Category{}, fmt.Errorf("%w: category slug is required", ErrCatalogInvalidInput)
	}
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return Category{}, mapCatalogError(err)
	}
	return category, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, mapCatalogError(err)
	}
	return categories, nil
}

func (s *catalogService) CreateBanner(ctx context.Context, cmd BannerCommand) (Banner, error) {
	cmd, err := normalizeBannerCommand(cmd)
	if err != nil {
		return Banner{}, err
	}

	banner := Banner{
		ID:       bannerIDPrefix + s.newID(),
		Alt:      cmd.Alt,
		ImageURL: cmd.ImageURL,
		Link:     cmd.Link,
	}
	if err := s.banners.Insert(ctx, banner); err != nil {
		return Banner{}, mapCatalogError(err)
	}
	return banner, nil
}

func (s *catalogService) UpdateBanner(ctx context.Context, bannerID string, cmd BannerCommand) (Banner, error) {
	bannerID = strings.TrimSpace(bannerID)
	if bannerID == "" {
		return Banner{}, fmt.Errorf("%w: banner id is required", ErrCatalogInvalidInput)
	}

	cmd, err := normalizeBannerCommand(cmd)
	if err != nil {
		return Banner{}, err
	}

	banner, err := s.banners.FindByID(ctx, bannerID)
	if err != nil {
		return Banner{}, mapCatalogError(err)
	}

	banner.Alt = cmd.Alt
	banner.ImageURL = cmd.ImageURL
	banner.Link = cmd.Link

	if err := s.banners.Update(ctx, banner); err != nil {
		return Banner{}, mapCatalogError(err)
	}
	return banner, nil
}

func (s *catalogService) DeleteBanner(ctx context.Context, bannerID string) error {
	bannerID = strings.TrimSpace(bannerID)
	if bannerID == "" {
		return fmt.Errorf("%w: banner id is required", ErrCatalogInvalidInput)
	}
	return mapCatalogError(s.banners.Delete(ctx, bannerID))
}

func (s *catalogService) ListBanners(ctx context.Context) ([]Banner, error) {
	banners, err := s.banners.List(ctx)
	if err != nil {
		return nil, mapCatalogError(err)
	}
	return banners, nil
}

func normalizeProductCommand(cmd ProductCommand) (ProductCommand, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Description = strings.TrimSpace(cmd.Description)
	cmd.ImageURL = strings.TrimSpace(cmd.ImageURL)
	cmd.Category = strings.TrimSpace(cmd.Category)

	if cmd.Name == "" {
		return ProductCommand{}, fmt.Errorf("%w: product name is required", ErrCatalogInvalidInput)
	}
	if cmd.Price < 0 {
		return ProductCommand{}, fmt.Errorf("%w: product price must not be negative", ErrCatalogInvalidInput)
	}
	if cmd.OriginalPrice < 0 {
		return ProductCommand{}, fmt.Errorf("%w: original price must not be negative", ErrCatalogInvalidInput)
	}
	if cmd.Category == "" {
		return ProductCommand{}, fmt.Errorf("%w: product category is required", ErrCatalogInvalidInput)
	}
	return cmd, nil
}

func normalizeBannerCommand(cmd BannerCommand) (BannerCommand, error) {
	cmd.Alt = strings.TrimSpace(cmd.Alt)
	cmd.ImageURL = strings.TrimSpace(cmd.ImageURL)
	cmd.Link = strings.TrimSpace(cmd.Link)

	if cmd.ImageURL == "" {
		return BannerCommand{}, fmt.Errorf("%w: banner image url is required", ErrCatalogInvalidInput)
	}
	return cmd, nil
}

func mapCatalogError(err error) error {
	if err == nil {
		return nil
	}

	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		switch {
		case repoErr.IsNotFound():
			return fmt.Errorf("%w: %v", ErrCatalogNotFound, err)
		case repoErr.IsUnavailable():
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}

	return err
}
