package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hatbazar/api/internal/platform/httpx"
	"github.com/hatbazar/api/internal/platform/storage"
	"github.com/hatbazar/api/internal/services"
)

// MediaURLSigner issues signed upload URLs for catalog media.
type MediaURLSigner interface {
	UploadURL(ctx context.Context, req storage.UploadRequest) (storage.SignedUpload, error)
}

// AdminSystemHandlers exposes seeding and media upload URL issuance.
type AdminSystemHandlers struct {
	seeder services.SeedService
	media  MediaURLSigner
}

// NewAdminSystemHandlers constructs the admin system handlers.
func NewAdminSystemHandlers(seeder services.SeedService, media MediaURLSigner) *AdminSystemHandlers {
	return &AdminSystemHandlers{seeder: seeder, media: media}
}

// Routes registers the admin system endpoints.
func (h *AdminSystemHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/system:seed", h.seed)
	r.Post("/media:upload-url", h.uploadURL)
}

func (h *AdminSystemHandlers) seed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.seeder.Seed(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"seeded":         report.Seeded,
		"products":       report.Products,
		"categories":     report.Categories,
		"banners":        report.Banners,
		"paymentNumbers": report.PaymentNumbers,
	})
}

type uploadURLRequest struct {
	Kind        string `json:"kind"`
	OwnerID     string `json:"ownerId"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	ContentMD5  string `json:"contentMd5"`
}

func (h *AdminSystemHandlers) uploadURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.media == nil {
		httpx.WriteError(ctx, w, httpx.NewError("media_unavailable", "media uploads not configured", http.StatusServiceUnavailable))
		return
	}

	var req uploadURLRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be a JSON upload request", http.StatusBadRequest))
		return
	}

	signed, err := h.media.UploadURL(ctx, storage.UploadRequest{
		Kind:        storage.MediaKind(req.Kind),
		OwnerID:     req.OwnerID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		ContentMD5:  req.ContentMD5,
	})
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"url":        signed.URL,
		"method":     signed.Method,
		"bucket":     signed.Bucket,
		"objectPath": signed.ObjectPath,
		"expiresAt":  signed.ExpiresAt.UTC().Format(time.RFC3339),
		"headers":    signed.Headers,
	})
}
