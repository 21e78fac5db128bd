package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hatbazar/api/internal/platform/httpx"
	"github.com/hatbazar/api/internal/services"
)

const maxRequestBodySize = 64 * 1024

func writeJSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// writeServiceError maps service sentinels onto the canonical error envelope.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrOrderInvalidInput),
		errors.Is(err, services.ErrCatalogInvalidInput),
		errors.Is(err, services.ErrPaymentNumberInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrOrderInvalidStatus):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_status", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrOrderInvalidState):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_transition", err.Error(), http.StatusConflict))
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrCatalogNotFound),
		errors.Is(err, services.ErrPaymentNumberNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("not_found", err.Error(), http.StatusNotFound))
	case errors.Is(err, services.ErrStorageUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("storage_unavailable", "storage unavailable", http.StatusServiceUnavailable))
	case errors.Is(err, services.ErrAIUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("ai_unavailable", "generative backend unavailable", http.StatusBadGateway))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "internal error", http.StatusInternalServerError))
	}
}

type customerInfoPayload struct {
	Name          string `json:"name"`
	PhoneNumber   string `json:"phoneNumber"`
	Address       string `json:"address"`
	PaymentOption string `json:"paymentOption"`
	PaymentMethod string `json:"paymentMethod"`
	TransactionID string `json:"transactionId"`
	SenderNumber  string `json:"senderNumber,omitempty"`
}

type orderItemPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type orderViewPayload struct {
	ID           string              `json:"id"`
	OrderNumber  string              `json:"orderId"`
	UserID       string              `json:"userId,omitempty"`
	CustomerInfo customerInfoPayload `json:"customerInfo"`
	Items        []orderItemPayload  `json:"items"`
	Total        int64               `json:"total"`
	Status       string              `json:"status"`
	CreatedAt    string              `json:"createdAt"`
	AmountPaid   int64               `json:"amountPaid"`
	AmountDue    int64               `json:"amountDue"`
	PaymentType  string              `json:"paymentType"`
}

func buildOrderViewPayload(view services.OrderView) orderViewPayload {
	items := make([]orderItemPayload, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, orderItemPayload{
			ID:       item.ProductID,
			Name:     item.Name,
			ImageURL: item.ImageURL,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	return orderViewPayload{
		ID:          view.ID,
		OrderNumber: view.OrderNumber,
		UserID:      view.UserID,
		CustomerInfo: customerInfoPayload{
			Name:          view.CustomerInfo.Name,
			PhoneNumber:   view.CustomerInfo.PhoneNumber,
			Address:       view.CustomerInfo.Address,
			PaymentOption: string(view.CustomerInfo.PaymentOption),
			PaymentMethod: string(view.CustomerInfo.PaymentMethod),
			TransactionID: view.CustomerInfo.TransactionID,
			SenderNumber:  view.CustomerInfo.SenderNumber,
		},
		Items:       items,
		Total:       view.Total,
		Status:      string(view.Status),
		CreatedAt:   view.CreatedAt,
		AmountPaid:  view.AmountPaid,
		AmountDue:   view.AmountDue,
		PaymentType: view.PaymentType,
	}
}

func buildOrderViewPayloads(views []services.OrderView) []orderViewPayload {
	payloads := make([]orderViewPayload, 0, len(views))
	for _, view := range views {
		payloads = append(payloads, buildOrderViewPayload(view))
	}
	return payloads
}

type reviewPayload struct {
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type productPayload struct {
	ID            string          `json:"id"`
	Slug          string          `json:"slug"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         int64           `json:"price"`
	OriginalPrice int64           `json:"originalPrice,omitempty"`
	ImageURL      string          `json:"imageUrl"`
	Category      string          `json:"category"`
	Rating        float64         `json:"rating"`
	SoldCount     int             `json:"soldCount"`
	Reviews       []reviewPayload `json:"reviews"`
	IsHotDeal     bool            `json:"isHotDeal"`
}

func buildProductPayload(product services.Product) productPayload {
	reviews := make([]reviewPayload, 0, len(product.Reviews))
	for _, review := range product.Reviews {
		reviews = append(reviews, reviewPayload(review))
	}
	return productPayload{
		ID:            product.ID,
		Slug:          product.Slug,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		ImageURL:      product.ImageURL,
		Category:      product.Category,
		Rating:        product.Rating,
		SoldCount:     product.SoldCount,
		Reviews:       reviews,
		IsHotDeal:     product.IsHotDeal,
	}
}

func buildProductPayloads(products []services.Product) []productPayload {
	payloads := make([]productPayload, 0, len(products))
	for _, product := range products {
		payloads = append(payloads, buildProductPayload(product))
	}
	return payloads
}

type categoryPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type bannerPayload struct {
	ID       string `json:"id"`
	Alt      string `json:"alt"`
	ImageURL string `json:"imageUrl"`
	Link     string `json:"link"`
}

type paymentNumberPayload struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Number      string `json:"number"`
	AccountType string `json:"accountType"`
}

func buildPaymentNumberPayload(number services.PaymentNumber) paymentNumberPayload {
	return paymentNumberPayload{
		ID:          number.ID,
		Type:        string(number.Type),
		Number:      number.Number,
		AccountType: number.AccountType,
	}
}
