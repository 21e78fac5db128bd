package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hatbazar/api/internal/platform/httpx"
	"github.com/hatbazar/api/internal/services"
)

// AdminCatalogHandlers exposes back-office CRUD over products, categories,
// banners, and payment numbers, plus review generation.
type AdminCatalogHandlers struct {
	catalog services.CatalogService
	numbers services.PaymentNumberService
	reviews services.ReviewService
}

// NewAdminCatalogHandlers constructs the admin catalog handlers.
func NewAdminCatalogHandlers(
	catalog services.CatalogService,
	numbers services.PaymentNumberService,
	reviews services.ReviewService,
) *AdminCatalogHandlers {
	return &AdminCatalogHandlers{catalog: catalog, numbers: numbers, reviews: reviews}
}

// Routes registers the admin catalog endpoints.
func (h *AdminCatalogHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/products", h.createProduct)
	r.Put("/products/{productID}", h.updateProduct)
	r.Delete("/products/{productID}", h.deleteProduct)
	r.Post("/products/{productID}:generate-reviews", h.generateReviews)

	r.Post("/categories", h.saveCategory)
	r.Delete("/categories/{slug}", h.deleteCategory)

	r.Post("/banners", h.createBanner)
	r.Put("/banners/{bannerID}", h.updateBanner)
	r.Delete("/banners/{bannerID}", h.deleteBanner)

	r.Post("/payment-numbers", h.createPaymentNumber)
	r.Put("/payment-numbers/{paymentNumberID}", h.updatePaymentNumber)
	r.Delete("/payment-numbers/{paymentNumberID}", h.deletePaymentNumber)
}

type productRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"originalPrice"`
	ImageURL      string `json:"imageUrl"`
	Category      string `json:"category"`
	IsHotDeal     bool   `json:"isHotDeal"`
}

func (req productRequest) command() services.ProductCommand {
	return services.ProductCommand{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		IsHotDeal:     req.IsHotDeal,
	}
}

func (h *AdminCatalogHandlers) createProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req productRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be a JSON product", http.StatusBadRequest))
		return
	}

	product, err := h.catalog.CreateProduct(ctx, req.command())
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, buildProductPayload(product))
}

func (h *AdminCatalogHandlers) updateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req productRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be a JSON product", http.StatusBadRequest))
		return
	}

	product, err := h.catalog.UpdateProduct(ctx, chi.URLParam(r, "productID"), req.command())
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, buildProductPayload(product))
}

func (h *AdminCatalogHandlers) deleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.catalog.DeleteProduct(ctx, chi.URLParam(r, "productID")); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminCatalogHandlers) generateReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reviews, err := h.reviews.GenerateReviews(ctx, chi.URLParam(r, "productID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	payloads := make([]reviewPayload, 0, len(reviews))
	for _, review := range reviews {
		payloads = append(payloads, reviewPayload(review))
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"reviews": payloads})
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *AdminCatalogHandlers) saveCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req categoryRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be JSON with a name field", http.StatusBadRequest))
		return
	}

	category, err := h.catalog.SaveCategory(ctx, req.Name)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, categoryPayload(category))
}

func (h *AdminCatalogHandlers) deleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.catalog.DeleteCategory(ctx, chi.URLParam(r, "slug")); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type bannerRequest struct {
	Alt      string `json:"alt"`
	ImageURL string `json:"imageUrl"`
	Link     string `json:"link"`
}

func (h *AdminCatalogHandlers) createBanner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req bannerRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be a JSON banner", http.StatusBadRequest))
		return
	}

	banner, err := h.catalog.CreateBanner(ctx, services.BannerCommand{
		Alt:      req.Alt,
		ImageURL: req.ImageURL,
		Link:     req.Link,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, bannerPayload(banner))
}

func (h *AdminCatalogHandlers) updateBanner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req bannerRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be a JSON banner", http.StatusBadRequest))
		return
	}

	banner, err := h.catalog.UpdateBanner(ctx, chi.URLParam(r, "bannerID"), services.BannerCommand{
		Alt:      req.Alt,
		ImageURL: req.ImageURL,
		Link:     req.Link,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, bannerPayload(banner))
}

func (h *AdminCatalogHandlers) deleteBanner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.catalog.DeleteBanner(ctx, chi.URLParam(r, "bannerID")); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type paymentNumberRequest struct {
	Type        string `json:"type"`
	Number      string `json:"number"`
	AccountType string `json:"accountType"`
}

func (h *AdminCatalogHandlers) createPaymentNumber(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req paymentNumberRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be a JSON payment number", http.StatusBadRequest))
		return
	}

	number, err := h.numbers.Create(ctx, services.PaymentNumberCommand{
		Type:        req.Type,
		Number:      req.Number,
		AccountType: req.AccountType,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, buildPaymentNumberPayload(number))
}

func (h *AdminCatalogHandlers) updatePaymentNumber(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req paymentNumberRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be a JSON payment number", http.StatusBadRequest))
		return
	}

	number, err := h.numbers.Update(ctx, chi.URLParam(r, "paymentNumberID"), services.PaymentNumberCommand{
		Type:        req.Type,
		Number:      req.Number,
		AccountType: req.AccountType,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, buildPaymentNumberPayload(number))
}

func (h *AdminCatalogHandlers) deletePaymentNumber(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.numbers.Delete(ctx, chi.URLParam(r, "paymentNumberID")); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
