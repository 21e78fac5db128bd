package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hatbazar/api/internal/ai"
	"github.com/hatbazar/api/internal/repositories"
)

// RecommendationFlowClient invokes the external personalised recommendation flow.
type RecommendationFlowClient interface {
	RecommendProducts(ctx context.Context, input ai.RecommendationsInput) (ai.RecommendationsOutput, error)
}

// RecommendationServiceDeps bundles collaborators for the recommendation service.
type RecommendationServiceDeps struct {
	Products repositories.ProductRepository
	Flows    RecommendationFlowClient
}

type recommendationService struct {
	products repositories.ProductRepository
	flows    RecommendationFlowClient
}

// NewRecommendationService wires dependencies into a concrete RecommendationService.
func NewRecommendationService(deps RecommendationServiceDeps) (RecommendationService, error) {
	if deps.Products == nil {
		return nil, errors.New("recommendation service: product repository is required")
	}
	if deps.Flows == nil {
		return nil, errors.New("recommendation service: recommendation flow client is required")
	}
	return &recommendationService{products: deps.Products, flows: deps.Flows}, nil
}

// Recommend resolves the flow's ranked product ids against the catalog,
// preserving rank order and dropping ids that no longer exist.
func (s *recommendationService) Recommend(ctx context.Context, query RecommendationQuery) ([]Product, error) {
	history := make([]string, 0, len(query.PurchaseHistory))
	for _, id := range query.PurchaseHistory {
		if id = strings.TrimSpace(id); id != "" {
			history = append(history, id)
		}
	}

	output, err := s.flows.RecommendProducts(ctx, ai.RecommendationsInput{
		UserID:          strings.TrimSpace(query.UserID),
		PurchaseHistory: history,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	recommended := make([]Product, 0, len(output.RecommendedProductIDs))
	for _, productID := range output.RecommendedProductIDs {
		productID = strings.TrimSpace(productID)
		if productID == "" {
			continue
		}
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if isRepositoryNotFound(err) {
				continue
			}
			return nil, mapCatalogError(err)
		}
		recommended = append(recommended, product)
	}
	return recommended, nil
}
