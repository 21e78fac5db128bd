package services

import (
	"context"
	"errors"
	"testing"

	domain "github.com/hatbazar/api/internal/domain"
	"github.com/hatbazar/api/internal/repositories"
)

type stubProductRepo struct {
	insertFn         func(context.Context, domain.Product) error
	updateFn         func(context.Context, domain.Product) error
	deleteFn         func(context.Context, string) error
	findFn           func(context.Context, string) (domain.Product, error)
	findBySlugFn     func(context.Context, string) (domain.Product, error)
	listFn           func(context.Context, repositories.ProductFilter) ([]domain.Product, error)
	replaceReviewsFn func(context.Context, string, []domain.Review) error
	anyFn            func(context.Context) (bool, error)
}

func (s *stubProductRepo) Insert(ctx context.Context, product domain.Product) error {
	if s.insertFn != nil {
		return s.insertFn(ctx, product)
	}
	return nil
}

func (s *stubProductRepo) Update(ctx context.Context, product domain.Product) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, product)
	}
	return nil
}

func (s *stubProductRepo) Delete(ctx context.Context, productID string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, productID)
	}
	return nil
}

func (s *stubProductRepo) FindByID(ctx context.Context, productID string) (domain.Product, error) {
	if s.findFn != nil {
		return s.findFn(ctx, productID)
	}
	return domain.Product{}, errors.New("not implemented")
}

func (s *stubProductRepo) FindBySlug(ctx context.Context, slug string) (domain.Product, error) {
	if s.findBySlugFn != nil {
		return s.findBySlugFn(ctx, slug)
	}
	return domain.Product{}, errors.New("not implemented")
}

func (s *stubProductRepo) List(ctx context.Context, filter repositories.ProductFilter) ([]domain.Product, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter)
	}
	return nil, nil
}

func (s *stubProductRepo) ReplaceReviews(ctx context.Context, productID string, reviews []domain.Review) error {
	if s.replaceReviewsFn != nil {
		return s.replaceReviewsFn(ctx, productID, reviews)
	}
	return nil
}

func (s *stubProductRepo) Any(ctx context.Context) (bool, error) {
	if s.anyFn != nil {
		return s.anyFn(ctx)
	}
	return false, nil
}

type stubCategoryRepo struct {
	upsertFn func(context.Context, domain.Category) error
	deleteFn func(context.Context, string) error
	findFn   func(context.Context, string) (domain.Category, error)
	listFn   func(context.Context) ([]domain.Category, error)
}

func (s *stubCategoryRepo) Upsert(ctx context.Context, category domain.Category) error {
	if s.upsertFn != nil {
		return s.upsertFn(ctx, category)
	}
	return nil
}

func (s *stubCategoryRepo) Delete(ctx context.Context, categoryID string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, categoryID)
	}
	return nil
}

func (s *stubCategoryRepo) FindBySlug(ctx context.Context, slug string) (domain.Category, error) {
	if s.findFn != nil {
		return s.findFn(ctx, slug)
	}
	return domain.Category{}, errors.New("not implemented")
}

func (s *stubCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

type stubBannerRepo struct {
	insertFn func(context.Context, domain.Banner) error
	updateFn func(context.Context, domain.Banner) error
	deleteFn func(context.Context, string) error
	findFn   func(context.Context, string) (domain.Banner, error)
	listFn   func(context.Context) ([]domain.Banner, error)
}

func (s *stubBannerRepo) Insert(ctx context.Context, banner domain.Banner) error {
	if s.insertFn != nil {
		return s.insertFn(ctx, banner)
	}
	return nil
}

func (s *stubBannerRepo) Update(ctx context.Context, banner domain.Banner) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, banner)
	}
	return nil
}

func (s *stubBannerRepo) Delete(ctx context.Context, bannerID string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, bannerID)
	}
	return nil
}

func (s *stubBannerRepo) FindByID(ctx context.Context, bannerID string) (domain.Banner, error) {
	if s.findFn != nil {
		return s.findFn(ctx, bannerID)
	}
	return domain.Banner{}, errors.New("not implemented")
}

func (s *stubBannerRepo) List(ctx context.Context) ([]domain.Banner, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func newTestCatalogService(t *testing.T, deps CatalogServiceDeps) CatalogService {
	t.Helper()
	if deps.Products == nil {
		deps.Products = &stubProductRepo{}
	}
	if deps.Categories == nil {
		deps.Categories = &stubCategoryRepo{}
	}
	if deps.Banners == nil {
		deps.Banners = &stubBannerRepo{}
	}
	if deps.Rating == nil {
		deps.Rating = func() float64 { return 4.2 }
	}
	if deps.IDGenerator == nil {
		deps.IDGenerator = func() string { return "01JTESTULID" }
	}
	svc, err := NewCatalogService(deps)
	if err != nil {
		t.Fatalf("NewCatalogService: %v", err)
	}
	return svc
}

func TestCreateProductSlugAndRating(t *testing.T) {
	var inserted domain.Product
	products := &stubProductRepo{
		insertFn: func(_ context.Context, product domain.Product) error {
			inserted = product
			return nil
		},
	}
	svc := newTestCatalogService(t, CatalogServiceDeps{Products: products})

	product, err := svc.CreateProduct(context.Background(), ProductCommand{
		Name:          "  Wireless Noise-Cancelling Headphones ",
		Description:   "30-hour battery life.",
		Price:         2499,
		OriginalPrice: 2999,
		Category:      "Electronics",
		IsHotDeal:     true,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	if product.ID != "prd_01JTESTULID" {
		t.Fatalf("id = %q", product.ID)
	}
	if product.Slug != "wireless-noise-cancelling-headphones" {
		t.Fatalf("slug = %q", product.Slug)
	}
	if product.Rating != 4.2 {
		t.Fatalf("rating = %v", product.Rating)
	}
	if inserted.Name != "Wireless Noise-Cancelling Headphones" {
		t.Fatalf("inserted name = %q", inserted.Name)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := newTestCatalogService(t, CatalogServiceDeps{})

	cases := []ProductCommand{
		{Name: "", Price: 100, Category: "Apparel"},
		{Name: "Jeans", Price: -1, Category: "Apparel"},
		{Name: "Jeans", Price: 100, Category: ""},
	}
	for i, cmd := range cases {
		if _, err := svc.CreateProduct(context.Background(), cmd); !errors.Is(err, ErrCatalogInvalidInput) {
			t.Fatalf("case %d: err = %v, want ErrCatalogInvalidInput", i, err)
		}
	}
}

func TestUpdateProductKeepsReviews(t *testing.T) {
	existing := domain.Product{
		ID:        "prd_1",
		Name:      "Old Name",
		Rating:    4.7,
		SoldCount: 12,
		Reviews:   []domain.Review{{Author: "Sadia A.", Rating: 4, Comment: "Good quality."}},
	}
	var updated domain.Product
	products := &stubProductRepo{
		findFn: func(context.Context, string) (domain.Product, error) { return existing, nil },
		updateFn: func(_ context.Context, product domain.Product) error {
			updated = product
			return nil
		},
	}
	svc := newTestCatalogService(t, CatalogServiceDeps{Products: products})

	product, err := svc.UpdateProduct(context.Background(), "prd_1", ProductCommand{
		Name:     "New Name",
		Price:    590,
		Category: "Apparel",
	})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if product.Slug != "new-name" {
		t.Fatalf("slug = %q", product.Slug)
	}
	if len(updated.Reviews) != 1 || updated.Rating != 4.7 || updated.SoldCount != 12 {
		t.Fatalf("update must preserve reviews and display metadata: %+v", updated)
	}
}

func TestListProductsSearchFoldsCase(t *testing.T) {
	products := &stubProductRepo{
		listFn: func(_ context.Context, filter repositories.ProductFilter) ([]domain.Product, error) {
			if !filter.HotDealsOnly {
				t.Fatal("hot deals filter must pass through to the repository")
			}
			return []domain.Product{
				{ID: "prd_1", Name: "Classic Blue Jeans", Description: "Premium cotton."},
				{ID: "prd_2", Name: "Gaming Mouse", Description: "RGB lighting."},
			}, nil
		},
	}
	svc := newTestCatalogService(t, CatalogServiceDeps{Products: products})

	matched, err := svc.ListProducts(context.Background(), ProductQuery{Search: "JEANS", HotDealsOnly: true})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != "prd_1" {
		t.Fatalf("unexpected matches %+v", matched)
	}
}

func TestSaveCategoryDerivesSlug(t *testing.T) {
	var saved domain.Category
	categories := &stubCategoryRepo{
		upsertFn: func(_ context.Context, category domain.Category) error {
			saved = category
			return nil
		},
	}
	svc := newTestCatalogService(t, CatalogServiceDeps{Categories: categories})

	category, err := svc.SaveCategory(context.Background(), "Sports & Outdoors")
	if err != nil {
		t.Fatalf("SaveCategory: %v", err)
	}
	if category.Slug != "sports-outdoors" {
		t.Fatalf("slug = %q", category.Slug)
	}
	if saved.ID != "sports-outdoors" {
		t.Fatalf("category id must be its slug, got %q", saved.ID)
	}
}

func TestGetProductNotFound(t *testing.T) {
	products := &stubProductRepo{
		findFn: func(context.Context, string) (domain.Product, error) {
			return domain.Product{}, stubRepositoryError{notFound: true}
		},
	}
	svc := newTestCatalogService(t, CatalogServiceDeps{Products: products})

	if _, err := svc.GetProduct(context.Background(), "prd_missing"); !errors.Is(err, ErrCatalogNotFound) {
		t.Fatalf("err = %v, want ErrCatalogNotFound", err)
	}
}

func TestCreateBannerRequiresImage(t *testing.T) {
	svc := newTestCatalogService(t, CatalogServiceDeps{})

	if _, err := svc.CreateBanner(context.Background(), BannerCommand{Alt: "Promo"}); !errors.Is(err, ErrCatalogInvalidInput) {
		t.Fatalf("err = %v, want ErrCatalogInvalidInput", err)
	}

	banner, err := svc.CreateBanner(context.Background(), BannerCommand{
		Alt:      "Promo",
		ImageURL: "https://cdn.example.com/banner.jpg",
		Link:     "/category/apparel",
	})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}
	if banner.ID != "bnr_01JTESTULID" {
		t.Fatalf("id = %q", banner.ID)
	}
}

func TestListProductsStorageUnavailable(t *testing.T) {
	products := &stubProductRepo{
		listFn: func(context.Context, repositories.ProductFilter) ([]domain.Product, error) {
			return nil, stubRepositoryError{unavailable: true}
		},
	}
	svc := newTestCatalogService(t, CatalogServiceDeps{Products: products})

	if _, err := svc.ListProducts(context.Background(), ProductQuery{}); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("err = %v, want ErrStorageUnavailable", err)
	}
}
