package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hatbazar/api/internal/platform/httpx"
	"github.com/hatbazar/api/internal/services"
)

// PublicHandlers serves the unauthenticated storefront surface: catalog
// reads, checkout payment numbers, order tracking, and recommendations.
type PublicHandlers struct {
	catalog         services.CatalogService
	numbers         services.PaymentNumberService
	lookup          services.OrderLookupService
	recommendations services.RecommendationService
}

// NewPublicHandlers constructs the public route handlers.
func NewPublicHandlers(
	catalog services.CatalogService,
	numbers services.PaymentNumberService,
	lookup services.OrderLookupService,
	recommendations services.RecommendationService,
) *PublicHandlers {
	return &PublicHandlers{
		catalog:         catalog,
		numbers:         numbers,
		lookup:          lookup,
		recommendations: recommendations,
	}
}

// Routes registers the /public endpoints.
func (h *PublicHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/products", h.listProducts)
	r.Get("/products/{idOrSlug}", h.getProduct)
	r.Get("/categories", h.listCategories)
	r.Get("/categories/{slug}/products", h.listCategoryProducts)
	r.Get("/banners", h.listBanners)
	r.Get("/payment-numbers", h.listPaymentNumbers)
	r.Post("/orders:track", h.trackOrder)
	r.Post("/recommendations", h.recommend)
}

func (h *PublicHandlers) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	products, err := h.catalog.ListProducts(ctx, services.ProductQuery{
		Search:       query.Get("q"),
		Category:     query.Get("category"),
		HotDealsOnly: query.Get("hot") == "true",
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{"items": buildProductPayloads(products)})
}

// getProduct accepts either a document id or a slug, the way storefront
// product pages link both.
func (h *PublicHandlers) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idOrSlug := chi.URLParam(r, "idOrSlug")

	var (
		product services.Product
		err     error
	)
	if strings.HasPrefix(idOrSlug, "prd_") {
		product, err = h.catalog.GetProduct(ctx, idOrSlug)
	} else {
		product, err = h.catalog.GetProductBySlug(ctx, idOrSlug)
	}
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, buildProductPayload(product))
}

func (h *PublicHandlers) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	payloads := make([]categoryPayload, 0, len(categories))
	for _, category := range categories {
		payloads = append(payloads, categoryPayload(category))
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"items": payloads})
}

func (h *PublicHandlers) listCategoryProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	category, err := h.catalog.GetCategory(ctx, slug)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	products, err := h.catalog.ListProducts(ctx, services.ProductQuery{Category: category.Name})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"category": categoryPayload(category),
		"items":    buildProductPayloads(products),
	})
}

func (h *PublicHandlers) listBanners(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	banners, err := h.catalog.ListBanners(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	payloads := make([]bannerPayload, 0, len(banners))
	for _, banner := range banners {
		payloads = append(payloads, bannerPayload(banner))
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"items": payloads})
}

func (h *PublicHandlers) listPaymentNumbers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	numbers, err := h.numbers.List(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	payloads := make([]paymentNumberPayload, 0, len(numbers))
	for _, number := range numbers {
		payloads = append(payloads, buildPaymentNumberPayload(number))
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"items": payloads})
}

type trackOrderRequest struct {
	Term string `json:"term"`
}

func (h *PublicHandlers) trackOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req trackOrderRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be JSON with a term field", http.StatusBadRequest))
		return
	}

	view, err := h.lookup.Track(ctx, req.Term)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, buildOrderViewPayload(view))
}

type recommendationsRequest struct {
	UserID          string   `json:"userId"`
	PurchaseHistory []string `json:"purchaseHistory"`
}

func (h *PublicHandlers) recommend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req recommendationsRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be JSON", http.StatusBadRequest))
		return
	}

	products, err := h.recommendations.Recommend(ctx, services.RecommendationQuery{
		UserID:          req.UserID,
		PurchaseHistory: req.PurchaseHistory,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{"items": buildProductPayloads(products)})
}
