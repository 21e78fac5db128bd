package handlers

import (
	"context"
	"errors"

	"github.com/hatbazar/api/internal/platform/storage"
	"github.com/hatbazar/api/internal/services"
)

type stubOrderService struct {
	createFn     func(context.Context, services.CreateOrderCommand) (services.Order, error)
	transitionFn func(context.Context, services.OrderStatusCommand) (services.Order, error)
}

func (s *stubOrderService) Create(ctx context.Context, cmd services.CreateOrderCommand) (services.Order, error) {
	if s.createFn != nil {
		return s.createFn(ctx, cmd)
	}
	return services.Order{}, errors.New("not implemented")
}

func (s *stubOrderService) Get(context.Context, string) (services.Order, error) {
	return services.Order{}, errors.New("not implemented")
}

func (s *stubOrderService) ListByUser(context.Context, string) ([]services.Order, error) {
	return nil, errors.New("not implemented")
}

func (s *stubOrderService) ListAll(context.Context) ([]services.Order, error) {
	return nil, errors.New("not implemented")
}

func (s *stubOrderService) Search(context.Context, string) (services.Order, error) {
	return services.Order{}, errors.New("not implemented")
}

func (s *stubOrderService) TransitionStatus(ctx context.Context, cmd services.OrderStatusCommand) (services.Order, error) {
	if s.transitionFn != nil {
		return s.transitionFn(ctx, cmd)
	}
	return services.Order{}, errors.New("not implemented")
}

type stubLookupService struct {
	viewFn    func(context.Context, string) (services.OrderView, error)
	viewAllFn func(context.Context) ([]services.OrderView, error)
	byUserFn  func(context.Context, string) ([]services.OrderView, error)
	trackFn   func(context.Context, string) (services.OrderView, error)
}

func (s *stubLookupService) ViewOrder(ctx context.Context, orderID string) (services.OrderView, error) {
	if s.viewFn != nil {
		return s.viewFn(ctx, orderID)
	}
	return services.OrderView{}, errors.New("not implemented")
}

func (s *stubLookupService) ViewOrdersByUser(ctx context.Context, userID string) ([]services.OrderView, error) {
	if s.byUserFn != nil {
		return s.byUserFn(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (s *stubLookupService) ViewAllOrders(ctx context.Context) ([]services.OrderView, error) {
	if s.viewAllFn != nil {
		return s.viewAllFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (s *stubLookupService) Track(ctx context.Context, term string) (services.OrderView, error) {
	if s.trackFn != nil {
		return s.trackFn(ctx, term)
	}
	return services.OrderView{}, errors.New("not implemented")
}

type stubCatalogService struct {
	listProductsFn   func(context.Context, services.ProductQuery) ([]services.Product, error)
	getProductFn     func(context.Context, string) (services.Product, error)
	getBySlugFn      func(context.Context, string) (services.Product, error)
	createProductFn  func(context.Context, services.ProductCommand) (services.Product, error)
	updateProductFn  func(context.Context, string, services.ProductCommand) (services.Product, error)
	deleteProductFn  func(context.Context, string) error
	saveCategoryFn   func(context.Context, string) (services.Category, error)
	deleteCategoryFn func(context.Context, string) error
	getCategoryFn    func(context.Context, string) (services.Category, error)
	listCategorysFn  func(context.Context) ([]services.Category, error)
	createBannerFn   func(context.Context, services.BannerCommand) (services.Banner, error)
	deleteBannerFn   func(context.Context, string) error
	listBannersFn    func(context.Context) ([]services.Banner, error)
}

func (s *stubCatalogService) CreateProduct(ctx context.Context, cmd services.ProductCommand) (services.Product, error) {
	if s.createProductFn != nil {
		return s.createProductFn(ctx, cmd)
	}
	return services.Product{}, errors.New("not implemented")
}

func (s *stubCatalogService) UpdateProduct(ctx context.Context, productID string, cmd services.ProductCommand) (services.Product, error) {
	if s.updateProductFn != nil {
		return s.updateProductFn(ctx, productID, cmd)
	}
	return services.Product{}, errors.New("not implemented")
}

func (s *stubCatalogService) DeleteProduct(ctx context.Context, productID string) error {
	if s.deleteProductFn != nil {
		return s.deleteProductFn(ctx, productID)
	}
	return errors.New("not implemented")
}

func (s *stubCatalogService) GetProduct(ctx context.Context, productID string) (services.Product, error) {
	if s.getProductFn != nil {
		return s.getProductFn(ctx, productID)
	}
	return services.Product{}, errors.New("not implemented")
}

func (s *stubCatalogService) GetProductBySlug(ctx context.Context, slug string) (services.Product, error) {
	if s.getBySlugFn != nil {
		return s.getBySlugFn(ctx, slug)
	}
	return services.Product{}, errors.New("not implemented")
}

func (s *stubCatalogService) ListProducts(ctx context.Context, query services.ProductQuery) ([]services.Product, error) {
	if s.listProductsFn != nil {
		return s.listProductsFn(ctx, query)
	}
	return nil, nil
}

func (s *stubCatalogService) SaveCategory(ctx context.Context, name string) (services.Category, error) {
	if s.saveCategoryFn != nil {
		return s.saveCategoryFn(ctx, name)
	}
	return services.Category{}, errors.New("not implemented")
}

func (s *stubCatalogService) DeleteCategory(ctx context.Context, slug string) error {
	if s.deleteCategoryFn != nil {
		return s.deleteCategoryFn(ctx, slug)
	}
	return errors.New("not implemented")
}

func (s *stubCatalogService) GetCategory(ctx context.Context, slug string) (services.Category, error) {
	if s.getCategoryFn != nil {
		return s.getCategoryFn(ctx, slug)
	}
	return services.Category{}, errors.New("not implemented")
}

func (s *stubCatalogService) ListCategories(ctx context.Context) ([]services.Category, error) {
	if s.listCategorysFn != nil {
		return s.listCategorysFn(ctx)
	}
	return nil, nil
}

func (s *stubCatalogService) CreateBanner(ctx context.Context, cmd services.BannerCommand) (services.Banner, error) {
	if s.createBannerFn != nil {
		return s.createBannerFn(ctx, cmd)
	}
	return services.Banner{}, errors.New("not implemented")
}

func (s *stubCatalogService) UpdateBanner(context.Context, string, services.BannerCommand) (services.Banner, error) {
	return services.Banner{}, errors.New("not implemented")
}

func (s *stubCatalogService) DeleteBanner(ctx context.Context, bannerID string) error {
	if s.deleteBannerFn != nil {
		return s.deleteBannerFn(ctx, bannerID)
	}
	return errors.New("not implemented")
}

func (s *stubCatalogService) ListBanners(ctx context.Context) ([]services.Banner, error) {
	if s.listBannersFn != nil {
		return s.listBannersFn(ctx)
	}
	return nil, nil
}

type stubPaymentNumberService struct {
	createFn func(context.Context, services.PaymentNumberCommand) (services.PaymentNumber, error)
	listFn   func(context.Context) ([]services.PaymentNumber, error)
}

func (s *stubPaymentNumberService) Create(ctx context.Context, cmd services.PaymentNumberCommand) (services.PaymentNumber, error) {
	if s.createFn != nil {
		return s.createFn(ctx, cmd)
	}
	return services.PaymentNumber{}, errors.New("not implemented")
}

func (s *stubPaymentNumberService) Update(context.Context, string, services.PaymentNumberCommand) (services.PaymentNumber, error) {
	return services.PaymentNumber{}, errors.New("not implemented")
}

func (s *stubPaymentNumberService) Delete(context.Context, string) error {
	return errors.New("not implemented")
}

func (s *stubPaymentNumberService) List(ctx context.Context) ([]services.PaymentNumber, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

type stubRecommendationService struct {
	recommendFn func(context.Context, services.RecommendationQuery) ([]services.Product, error)
}

func (s *stubRecommendationService) Recommend(ctx context.Context, query services.RecommendationQuery) ([]services.Product, error) {
	if s.recommendFn != nil {
		return s.recommendFn(ctx, query)
	}
	return nil, nil
}

type stubReviewService struct {
	generateFn func(context.Context, string) ([]services.Review, error)
}

func (s *stubReviewService) GenerateReviews(ctx context.Context, productID string) ([]services.Review, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, productID)
	}
	return nil, errors.New("not implemented")
}

type stubSeedService struct {
	seedFn func(context.Context) (services.SeedReport, error)
}

func (s *stubSeedService) Seed(ctx context.Context) (services.SeedReport, error) {
	if s.seedFn != nil {
		return s.seedFn(ctx)
	}
	return services.SeedReport{}, nil
}

type stubMediaSigner struct {
	uploadFn func(context.Context, storage.UploadRequest) (storage.SignedUpload, error)
}

func (s *stubMediaSigner) UploadURL(ctx context.Context, req storage.UploadRequest) (storage.SignedUpload, error) {
	if s.uploadFn != nil {
		return s.uploadFn(ctx, req)
	}
	return storage.SignedUpload{}, errors.New("not implemented")
}
