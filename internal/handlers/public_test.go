package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hatbazar/api/internal/services"
)

func newPublicRouter(h *PublicHandlers) chi.Router {
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func TestPublicListProductsPassesQuery(t *testing.T) {
	catalog := &stubCatalogService{
		listProductsFn: func(_ context.Context, query services.ProductQuery) ([]services.Product, error) {
			if query.Search != "jeans" || !query.HotDealsOnly {
				t.Fatalf("unexpected query %+v", query)
			}
			return []services.Product{{ID: "prd_1", Name: "Classic Blue Jeans", Slug: "classic-blue-jeans"}}, nil
		},
	}
	h := NewPublicHandlers(catalog, &stubPaymentNumberService{}, &stubLookupService{}, &stubRecommendationService{})

	req := httptest.NewRequest(http.MethodGet, "/products?q=jeans&hot=true", nil)
	rr := httptest.NewRecorder()
	newPublicRouter(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var body struct {
		Items []productPayload `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].Slug != "classic-blue-jeans" {
		t.Fatalf("unexpected items %+v", body.Items)
	}
}

func TestPublicGetProductRoutesIDAndSlug(t *testing.T) {
	catalog := &stubCatalogService{
		getProductFn: func(_ context.Context, productID string) (services.Product, error) {
			if productID != "prd_1" {
				t.Fatalf("unexpected id %q", productID)
			}
			return services.Product{ID: "prd_1"}, nil
		},
		getBySlugFn: func(_ context.Context, slug string) (services.Product, error) {
			if slug != "yoga-mat" {
				t.Fatalf("unexpected slug %q", slug)
			}
			return services.Product{ID: "prd_2", Slug: "yoga-mat"}, nil
		},
	}
	h := NewPublicHandlers(catalog, &stubPaymentNumberService{}, &stubLookupService{}, &stubRecommendationService{})
	router := newPublicRouter(h)

	for _, path := range []string{"/products/prd_1", "/products/yoga-mat"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rr.Code)
		}
	}
}

func TestPublicGetProductNotFound(t *testing.T) {
	catalog := &stubCatalogService{
		getBySlugFn: func(context.Context, string) (services.Product, error) {
			return services.Product{}, services.ErrCatalogNotFound
		},
	}
	h := NewPublicHandlers(catalog, &stubPaymentNumberService{}, &stubLookupService{}, &stubRecommendationService{})

	req := httptest.NewRequest(http.MethodGet, "/products/missing", nil)
	rr := httptest.NewRecorder()
	newPublicRouter(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestPublicTrackOrder(t *testing.T) {
	lookup := &stubLookupService{
		trackFn: func(_ context.Context, term string) (services.OrderView, error) {
			if term != "174653760012" {
				t.Fatalf("unexpected term %q", term)
			}
			return services.OrderView{
				ID:          "ord_1",
				OrderNumber: term,
				Status:      "Placed",
				Total:       1500,
				AmountPaid:  120,
				AmountDue:   1380,
				PaymentType: "Cash on Delivery",
				CreatedAt:   "2025-05-06T13:20:00Z",
			}, nil
		},
	}
	h := NewPublicHandlers(&stubCatalogService{}, &stubPaymentNumberService{}, lookup, &stubRecommendationService{})

	req := httptest.NewRequest(http.MethodPost, "/orders:track", strings.NewReader(`{"term":"174653760012"}`))
	rr := httptest.NewRecorder()
	newPublicRouter(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}

	var body orderViewPayload
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if body.AmountDue != 1380 || body.PaymentType != "Cash on Delivery" {
		t.Fatalf("unexpected payload %+v", body)
	}
}

func TestPublicTrackOrderNotFound(t *testing.T) {
	lookup := &stubLookupService{
		trackFn: func(context.Context, string) (services.OrderView, error) {
			return services.OrderView{}, services.ErrOrderNotFound
		},
	}
	h := NewPublicHandlers(&stubCatalogService{}, &stubPaymentNumberService{}, lookup, &stubRecommendationService{})

	req := httptest.NewRequest(http.MethodPost, "/orders:track", strings.NewReader(`{"term":"nope"}`))
	rr := httptest.NewRecorder()
	newPublicRouter(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestPublicRecommendations(t *testing.T) {
	recs := &stubRecommendationService{
		recommendFn: func(_ context.Context, query services.RecommendationQuery) ([]services.Product, error) {
			if query.UserID != "user-1" || len(query.PurchaseHistory) != 2 {
				t.Fatalf("unexpected query %+v", query)
			}
			return []services.Product{{ID: "prd_9", Name: "Gaming Mouse"}}, nil
		},
	}
	h := NewPublicHandlers(&stubCatalogService{}, &stubPaymentNumberService{}, &stubLookupService{}, recs)

	payload := `{"userId":"user-1","purchaseHistory":["prd_1","prd_2"]}`
	req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(payload))
	rr := httptest.NewRecorder()
	newPublicRouter(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
}

func TestPublicRecommendationsAIUnavailable(t *testing.T) {
	recs := &stubRecommendationService{
		recommendFn: func(context.Context, services.RecommendationQuery) ([]services.Product, error) {
			return nil, services.ErrAIUnavailable
		},
	}
	h := NewPublicHandlers(&stubCatalogService{}, &stubPaymentNumberService{}, &stubLookupService{}, recs)

	req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	newPublicRouter(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rr.Code)
	}
}

func TestPublicPaymentNumbers(t *testing.T) {
	numbers := &stubPaymentNumberService{
		listFn: func(context.Context) ([]services.PaymentNumber, error) {
			return []services.PaymentNumber{
				{ID: "pay_1", Type: "bkash", Number: "01750016536", AccountType: "Personal"},
			}, nil
		},
	}
	h := NewPublicHandlers(&stubCatalogService{}, numbers, &stubLookupService{}, &stubRecommendationService{})

	req := httptest.NewRequest(http.MethodGet, "/payment-numbers", nil)
	rr := httptest.NewRecorder()
	newPublicRouter(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "01750016536") {
		t.Fatalf("payment number missing from body: %s", rr.Body.String())
	}
}
