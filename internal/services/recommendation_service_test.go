package services

import (
	"context"
	"errors"
	"testing"

	"github.com/hatbazar/api/internal/ai"
	domain "github.com/hatbazar/api/internal/domain"
)

type stubRecommendationFlow struct {
	recommendFn func(context.Context, ai.RecommendationsInput) (ai.RecommendationsOutput, error)
}

func (s *stubRecommendationFlow) RecommendProducts(ctx context.Context, input ai.RecommendationsInput) (ai.RecommendationsOutput, error) {
	if s.recommendFn != nil {
		return s.recommendFn(ctx, input)
	}
	return ai.RecommendationsOutput{}, errors.New("not implemented")
}

func TestRecommendDropsUnknownIDs(t *testing.T) {
	catalog := map[string]domain.Product{
		"prd_1": {ID: "prd_1", Name: "Gaming Mouse"},
		"prd_3": {ID: "prd_3", Name: "Yoga Mat"},
	}
	products := &stubProductRepo{
		findFn: func(_ context.Context, productID string) (domain.Product, error) {
			product, ok := catalog[productID]
			if !ok {
				return domain.Product{}, stubRepositoryError{notFound: true}
			}
			return product, nil
		},
	}
	flow := &stubRecommendationFlow{
		recommendFn: func(_ context.Context, input ai.RecommendationsInput) (ai.RecommendationsOutput, error) {
			if input.UserID != "user-1" || len(input.PurchaseHistory) != 1 {
				t.Fatalf("unexpected flow input %+v", input)
			}
			return ai.RecommendationsOutput{RecommendedProductIDs: []string{"prd_3", "prd_gone", "prd_1"}}, nil
		},
	}

	svc, err := NewRecommendationService(RecommendationServiceDeps{Products: products, Flows: flow})
	if err != nil {
		t.Fatalf("NewRecommendationService: %v", err)
	}

	recommended, err := svc.Recommend(context.Background(), RecommendationQuery{
		UserID:          "user-1",
		PurchaseHistory: []string{" prd_2 ", ""},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if len(recommended) != 2 {
		t.Fatalf("got %d products, want 2", len(recommended))
	}
	if recommended[0].ID != "prd_3" || recommended[1].ID != "prd_1" {
		t.Fatalf("rank order not preserved: %+v", recommended)
	}
}

func TestRecommendFlowFailure(t *testing.T) {
	flow := &stubRecommendationFlow{
		recommendFn: func(context.Context, ai.RecommendationsInput) (ai.RecommendationsOutput, error) {
			return ai.RecommendationsOutput{}, errors.New("timeout")
		},
	}
	svc, _ := NewRecommendationService(RecommendationServiceDeps{Products: &stubProductRepo{}, Flows: flow})

	if _, err := svc.Recommend(context.Background(), RecommendationQuery{}); !errors.Is(err, ErrAIUnavailable) {
		t.Fatalf("err = %v, want ErrAIUnavailable", err)
	}
}

func TestRecommendStorageFailureIsNotSwallowed(t *testing.T) {
	products := &stubProductRepo{
		findFn: func(context.Context, string) (domain.Product, error) {
			return domain.Product{}, stubRepositoryError{unavailable: true}
		},
	}
	flow := &stubRecommendationFlow{
		recommendFn: func(context.Context, ai.RecommendationsInput) (ai.RecommendationsOutput, error) {
			return ai.RecommendationsOutput{RecommendedProductIDs: []string{"prd_1"}}, nil
		},
	}
	svc, _ := NewRecommendationService(RecommendationServiceDeps{Products: products, Flows: flow})

	if _, err := svc.Recommend(context.Background(), RecommendationQuery{}); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("err = %v, want ErrStorageUnavailable", err)
	}
}
