package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

const defaultUploadExpiry = 15 * time.Minute

// MediaKind identifies the catalog surface an uploaded image belongs to.
type MediaKind string

const (
	MediaKindProduct  MediaKind = "product"
	MediaKindCategory MediaKind = "category"
	MediaKindBanner   MediaKind = "banner"
)

var (
	errNoSigner           = errors.New("storage: signer is required")
	errInvalidBucket      = errors.New("storage: bucket name is required")
	errUnknownMediaKind   = errors.New("storage: unknown media kind")
	errContentTypeMissing = errors.New("storage: content type is required for uploads")
	errContentTypeDenied  = errors.New("storage: content type not allowed")
	errMD5Invalid         = errors.New("storage: content MD5 must be base64 encoded")
)

var defaultAllowedContentTypes = []string{"image/*"}

// Uploader issues V4 signed upload URLs for catalog media objects.
type Uploader struct {
	signer       Signer
	bucket       string
	scheme       storage.SigningScheme
	allowedTypes []string
	maxSize      int64
	expiry       time.Duration
	now          func() time.Time
}

// UploaderOption customises Uploader behaviour.
type UploaderOption func(*Uploader)

// WithAllowedContentTypes restricts the content types accepted for uploads.
// Entries may end in "/*" to allow a whole type family.
func WithAllowedContentTypes(types ...string) UploaderOption {
	return func(u *Uploader) {
		if len(types) > 0 {
			u.allowedTypes = types
		}
	}
}

// WithMaxUploadSize caps the object size enforced through the signed headers.
func WithMaxUploadSize(bytes int64) UploaderOption {
	return func(u *Uploader) {
		if bytes > 0 {
			u.maxSize = bytes
		}
	}
}

// WithUploadExpiry overrides how long issued URLs stay valid.
func WithUploadExpiry(d time.Duration) UploaderOption {
	return func(u *Uploader) {
		if d > 0 {
			u.expiry = d
		}
	}
}

// WithClock injects a custom clock (useful for tests).
func WithClock(clock func() time.Time) UploaderOption {
	return func(u *Uploader) {
		if clock != nil {
			u.now = clock
		}
	}
}

// NewUploader constructs an Uploader bound to a bucket and signer.
func NewUploader(bucket string, signer Signer, opts ...UploaderOption) (*Uploader, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errInvalidBucket
	}
	if signer == nil || strings.TrimSpace(signer.Email()) == "" {
		return nil, errNoSigner
	}

	uploader := &Uploader{
		signer:       signer,
		bucket:       bucket,
		scheme:       storage.SigningSchemeV4,
		allowedTypes: defaultAllowedContentTypes,
		expiry:       defaultUploadExpiry,
		now:          time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(uploader)
		}
	}
	return uploader, nil
}

// UploadRequest describes the object an upload URL is requested for.
type UploadRequest struct {
	Kind        MediaKind
	OwnerID     string
	FileName    string
	ContentType string
	ContentMD5  string
	Headers     map[string]string
}

// SignedUpload describes an issued signed upload URL.
type SignedUpload struct {
	URL        string
	Method     string
	Bucket     string
	ObjectPath string
	ExpiresAt  time.Time
	Headers    map[string]string
}

// UploadURL validates the request and returns a signed PUT URL for the media object.
func (u *Uploader) UploadURL(ctx context.Context, req UploadRequest) (SignedUpload, error) {
	if u == nil || u.signer == nil {
		return SignedUpload{}, errNoSigner
	}

	objectPath, err := buildMediaPath(req.Kind, req.OwnerID, req.FileName)
	if err != nil {
		return SignedUpload{}, err
	}

	contentType := strings.TrimSpace(req.ContentType)
	if contentType == "" {
		return SignedUpload{}, errContentTypeMissing
	}
	if !contentTypeAllowed(contentType, u.allowedTypes) {
		return SignedUpload{}, errContentTypeDenied
	}

	md5 := strings.TrimSpace(req.ContentMD5)
	if md5 != "" {
		if _, err := base64.StdEncoding.DecodeString(md5); err != nil {
			return SignedUpload{}, errMD5Invalid
		}
	}

	headers := map[string]string{"Content-Type": contentType}
	if md5 != "" {
		headers["Content-MD5"] = md5
	}

	var extHeaders []string
	if u.maxSize > 0 {
		sizeRange := fmt.Sprintf("0,%d", u.maxSize)
		extHeaders = append(extHeaders, "x-goog-content-length-range:"+sizeRange)
		headers["x-goog-content-length-range"] = sizeRange
	}
	if len(req.Headers) > 0 {
		keys := make([]string, 0, len(req.Headers))
		for key := range req.Headers {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			value := strings.TrimSpace(req.Headers[key])
			if value == "" {
				continue
			}
			canonical := strings.ToLower(strings.TrimSpace(key))
			extHeaders = append(extHeaders, canonical+":"+value)
			headers[key] = value
		}
	}

	expiresAt := u.now().Add(u.expiry)
	urlOpts := storage.SignedURLOptions{
		GoogleAccessID: u.signer.Email(),
		Scheme:         u.scheme,
		Method:         "PUT",
		ContentType:    contentType,
		MD5:            md5,
		Expires:        expiresAt,
		Headers:        extHeaders,
		SignBytes: func(payload []byte) ([]byte, error) {
			return u.signer.SignBytes(ctx, payload)
		},
	}

	signedURL, err := storage.SignedURL(u.bucket, objectPath, &urlOpts)
	if err != nil {
		return SignedUpload{}, fmt.Errorf("storage: sign upload url: %w", err)
	}

	return SignedUpload{
		URL:        signedURL,
		Method:     "PUT",
		Bucket:     u.bucket,
		ObjectPath: objectPath,
		ExpiresAt:  expiresAt,
		Headers:    headers,
	}, nil
}

// PublicURL returns the canonical public URL for an uploaded object.
func (u *Uploader) PublicURL(objectPath string) string {
	if u == nil {
		return ""
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, strings.TrimPrefix(objectPath, "/"))
}

func buildMediaPath(kind MediaKind, ownerID, fileName string) (string, error) {
	owner, err := validateSegment("ownerID", ownerID)
	if err != nil {
		return "", err
	}
	name, err := validateSegment("fileName", fileName)
	if err != nil {
		return "", err
	}

	switch kind {
	case MediaKindProduct:
		return fmt.Sprintf("media/products/%s/%s", owner, name), nil
	case MediaKindCategory:
		return fmt.Sprintf("media/categories/%s/%s", owner, name), nil
	case MediaKindBanner:
		return fmt.Sprintf("media/banners/%s/%s", owner, name), nil
	default:
		return "", errUnknownMediaKind
	}
}

func validateSegment(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("storage: %s is required", name)
	}
	if strings.ContainsAny(value, "/\\") {
		return "", fmt.Errorf("storage: %s contains invalid path characters", name)
	}
	if strings.Contains(value, "..") {
		return "", fmt.Errorf("storage: %s contains invalid traversal sequence", name)
	}
	return value, nil
}

func contentTypeAllowed(contentType string, allowed []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(contentType))
	for _, candidate := range allowed {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		if candidate == "" {
			continue
		}
		if candidate == "*" {
			return true
		}
		if strings.HasSuffix(candidate, "/*") {
			if strings.HasPrefix(normalized, strings.TrimSuffix(candidate, "*")) {
				return true
			}
			continue
		}
		if normalized == candidate {
			return true
		}
	}
	return false
}
