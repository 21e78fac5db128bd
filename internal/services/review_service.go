package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/hatbazar/api/internal/ai"
	"github.com/hatbazar/api/internal/repositories"
)

// ErrAIUnavailable distinguishes generative collaborator failures from
// storage and validation errors.
var ErrAIUnavailable = errors.New("ai collaborator unavailable")

// ReviewFlowClient invokes the external review generation flow.
type ReviewFlowClient interface {
	GenerateReviews(ctx context.Context, input ai.GenerateReviewsInput) (ai.GenerateReviewsOutput, error)
}

// ReviewServiceDeps bundles collaborators for the review service.
type ReviewServiceDeps struct {
	Products repositories.ProductRepository
	Flows    ReviewFlowClient
	// Sanitizer strips markup from generated text before storage. Defaults to
	// a strict bluemonday policy.
	Sanitizer func(string) string
}

type reviewService struct {
	products repositories.ProductRepository
	flows    ReviewFlowClient
	sanitize func(string) string
}

var strictSanitizer = bluemonday.StrictPolicy()

// NewReviewService wires dependencies into a concrete ReviewService implementation.
func NewReviewService(deps ReviewServiceDeps) (ReviewService, error) {
	if deps.Products == nil {
		return nil, errors.New("review service: product repository is required")
	}
	if deps.Flows == nil {
		return nil, errors.New("review service: review flow client is required")
	}

	sanitize := deps.Sanitizer
	if sanitize == nil {
		sanitize = strictSanitizer.Sanitize
	}

	return &reviewService{
		products: deps.Products,
		flows:    deps.Flows,
		sanitize: sanitize,
	}, nil
}

// GenerateReviews asks the flow for reviews of the product, sanitises the
// generated text, and replaces the product's stored reviews with the result.
func (s *reviewService) GenerateReviews(ctx context.Context, productID string) ([]Review, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrCatalogInvalidInput)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, mapCatalogError(err)
	}

	output, err := s.flows.GenerateReviews(ctx, ai.GenerateReviewsInput{
		ProductName:        product.Name,
		ProductDescription: product.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	reviews := make([]Review, 0, len(output.Reviews))
	for _, generated := range output.Reviews {
		author := strings.TrimSpace(s.sanitize(generated.Author))
		comment := strings.TrimSpace(s.sanitize(generated.Comment))
		if author == "" || comment == "" {
			continue
		}
		reviews = append(reviews, Review{
			Author:  author,
			Rating:  clampRating(generated.Rating),
			Comment: comment,
		})
	}

	if err := s.products.ReplaceReviews(ctx, product.ID, reviews); err != nil {
		return nil, mapCatalogError(err)
	}
	return reviews, nil
}

func clampRating(rating float64) int {
	rounded := int(math.Round(rating))
	if rounded < 1 {
		return 1
	}
	if rounded > 5 {
		return 5
	}
	return rounded
}
