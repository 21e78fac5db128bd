package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hatbazar/api/internal/platform/auth"
	"github.com/hatbazar/api/internal/platform/httpx"
	"github.com/hatbazar/api/internal/services"
)

// MeHandlers serves the authenticated customer's own resources.
type MeHandlers struct {
	authn  *auth.Authenticator
	lookup services.OrderLookupService
}

// NewMeHandlers constructs the /me route handlers.
func NewMeHandlers(authn *auth.Authenticator, lookup services.OrderLookupService) *MeHandlers {
	return &MeHandlers{authn: authn, lookup: lookup}
}

// Routes registers the /me endpoints.
func (h *MeHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}

	if h.authn != nil {
		r.With(h.authn.RequireFirebaseAuth()).Get("/orders", h.listOrders)
		return
	}
	r.Get("/orders", h.listOrders)
}

func (h *MeHandlers) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok || identity == nil || strings.TrimSpace(identity.UID) == "" {
		httpx.WriteError(ctx, w, httpx.NewError("unauthenticated", "authentication required", http.StatusUnauthorized))
		return
	}

	views, err := h.lookup.ViewOrdersByUser(ctx, identity.UID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{"items": buildOrderViewPayloads(views)})
}
