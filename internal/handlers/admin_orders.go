package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hatbazar/api/internal/platform/auth"
	"github.com/hatbazar/api/internal/platform/httpx"
	"github.com/hatbazar/api/internal/platform/pagination"
	"github.com/hatbazar/api/internal/services"
)

const (
	defaultOrderPageSize = 50
	maxOrderPageSize     = 200
)

// AdminOrderHandlers exposes the back-office order views and the status
// transition endpoint.
type AdminOrderHandlers struct {
	orders services.OrderService
	lookup services.OrderLookupService
}

// NewAdminOrderHandlers constructs the admin order handlers.
func NewAdminOrderHandlers(orders services.OrderService, lookup services.OrderLookupService) *AdminOrderHandlers {
	return &AdminOrderHandlers{orders: orders, lookup: lookup}
}

// Routes registers the admin order endpoints.
func (h *AdminOrderHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{orderID}", h.getOrder)
	r.Post("/orders/{orderID}:status", h.updateStatus)
}

func (h *AdminOrderHandlers) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params, err := pagination.FromRequest(r, pagination.Options{
		DefaultPageSize: defaultOrderPageSize,
		MaxPageSize:     maxOrderPageSize,
	})
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	views, err := h.lookup.ViewAllOrders(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	page, nextToken, err := paginateOrderViews(views, params)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	response := map[string]any{"items": buildOrderViewPayloads(page)}
	if nextToken != "" {
		response["nextPageToken"] = nextToken
	}
	writeJSONResponse(w, http.StatusOK, response)
}

// paginateOrderViews slices the newest-first order list at the cursor. The
// cursor carries the last order id of the previous page.
func paginateOrderViews(views []services.OrderView, params pagination.Params) ([]services.OrderView, string, error) {
	start := 0
	if len(params.Cursor.StartAfter) > 0 {
		afterID, _ := params.Cursor.StartAfter[0].(string)
		if afterID == "" {
			return nil, "", pagination.ErrInvalidPageToken
		}
		start = len(views)
		for i, view := range views {
			if view.ID == afterID {
				start = i + 1
				break
			}
		}
	}

	end := start + params.PageSize
	if end > len(views) {
		end = len(views)
	}
	page := views[start:end]

	if end >= len(views) || len(page) == 0 {
		return page, "", nil
	}
	token, err := pagination.EncodeToken(pagination.Cursor{StartAfter: []any{page[len(page)-1].ID}})
	if err != nil {
		return nil, "", err
	}
	return page, token, nil
}

func (h *AdminOrderHandlers) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, err := h.lookup.ViewOrder(ctx, chi.URLParam(r, "orderID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, buildOrderViewPayload(view))
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandlers) updateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateOrderStatusRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be JSON with a status field", http.StatusBadRequest))
		return
	}

	var actorID string
	if identity, ok := auth.IdentityFromContext(ctx); ok && identity != nil {
		actorID = identity.UID
	}

	order, err := h.orders.TransitionStatus(ctx, services.OrderStatusCommand{
		OrderID: chi.URLParam(r, "orderID"),
		Status:  req.Status,
		ActorID: actorID,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"id":      order.ID,
		"orderId": order.OrderNumber,
		"status":  string(order.Status),
	})
}
