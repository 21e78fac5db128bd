package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 20 * time.Second

// ErrNotConfigured is returned when the client has no endpoint to call.
var ErrNotConfigured = errors.New("ai: endpoint not configured")

// Client issues flow invocations against the content generation worker.
type Client struct {
	endpoint  string
	authToken string
	http      *http.Client
}

// ClientOption customises Client construction.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient constructs a flow client for the given worker endpoint.
func NewClient(endpoint, authToken string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:  strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		authToken: strings.TrimSpace(authToken),
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// GenerateReviewsInput describes the product reviews are generated for.
type GenerateReviewsInput struct {
	ProductName        string `json:"productName"`
	ProductDescription string `json:"productDescription"`
}

// GeneratedReview is a single model-written review.
type GeneratedReview struct {
	Author  string  `json:"author"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

// GenerateReviewsOutput carries the generated review list.
type GenerateReviewsOutput struct {
	Reviews []GeneratedReview `json:"reviews"`
}

// GenerateReviews asks the worker to write reviews for a product.
func (c *Client) GenerateReviews(ctx context.Context, input GenerateReviewsInput) (GenerateReviewsOutput, error) {
	var out GenerateReviewsOutput
	if err := c.invoke(ctx, "generateReviews", input, &out); err != nil {
		return GenerateReviewsOutput{}, err
	}
	return out, nil
}

// RecommendationsInput describes a user and their purchase history.
type RecommendationsInput struct {
	UserID          string   `json:"userId"`
	PurchaseHistory []string `json:"purchaseHistory"`
}

// RecommendationsOutput carries the recommended product identifiers.
type RecommendationsOutput struct {
	RecommendedProductIDs []string `json:"recommendedProductIds"`
}

// RecommendProducts asks the worker for personalised product recommendations.
func (c *Client) RecommendProducts(ctx context.Context, input RecommendationsInput) (RecommendationsOutput, error) {
	var out RecommendationsOutput
	if err := c.invoke(ctx, "personalizedRecommendations", input, &out); err != nil {
		return RecommendationsOutput{}, err
	}
	return out, nil
}

func (c *Client) invoke(ctx context.Context, flow string, input any, output any) error {
	if c == nil || c.endpoint == "" {
		return ErrNotConfigured
	}

	endpoint, err := url.JoinPath(c.endpoint, "flows", flow)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("ai: marshal %s input: %w", flow, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ai: invoke %s: %w", flow, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("ai: %s status %d: %s", flow, resp.StatusCode, drainError(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(output); err != nil {
		return fmt.Errorf("ai: decode %s output: %w", flow, err)
	}
	return nil
}

func drainError(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 512))
	if err != nil {
		return "unreadable error body"
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "empty error body"
	}
	return text
}
