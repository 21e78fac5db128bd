package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateReviews(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		var input GenerateReviewsInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("decode input: %v", err)
		}
		if input.ProductName != "Fresh Mango" {
			t.Errorf("unexpected product name: %s", input.ProductName)
		}

		_ = json.NewEncoder(w).Encode(GenerateReviewsOutput{
			Reviews: []GeneratedReview{
				{Author: "রাহিম", Rating: 5, Comment: "খুব ভালো"},
				{Author: "করিম", Rating: 4, Comment: "দাম একটু বেশি"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "worker-token")
	out, err := client.GenerateReviews(context.Background(), GenerateReviewsInput{
		ProductName:        "Fresh Mango",
		ProductDescription: "Sweet seasonal mangoes",
	})
	if err != nil {
		t.Fatalf("GenerateReviews: %v", err)
	}

	if gotPath != "/flows/generateReviews" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotAuth != "Bearer worker-token" {
		t.Errorf("unexpected auth header: %s", gotAuth)
	}
	if len(out.Reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(out.Reviews))
	}
	if out.Reviews[0].Author != "রাহিম" || out.Reviews[0].Rating != 5 {
		t.Errorf("unexpected first review: %#v", out.Reviews[0])
	}
}

func TestRecommendProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/flows/personalizedRecommendations" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var input RecommendationsInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("decode input: %v", err)
		}
		if input.UserID != "uid-1" || len(input.PurchaseHistory) != 2 {
			t.Errorf("unexpected input: %#v", input)
		}
		_ = json.NewEncoder(w).Encode(RecommendationsOutput{
			RecommendedProductIDs: []string{"prd_a", "prd_b"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	out, err := client.RecommendProducts(context.Background(), RecommendationsInput{
		UserID:          "uid-1",
		PurchaseHistory: []string{"prd_x", "prd_y"},
	})
	if err != nil {
		t.Fatalf("RecommendProducts: %v", err)
	}
	if len(out.RecommendedProductIDs) != 2 || out.RecommendedProductIDs[0] != "prd_a" {
		t.Errorf("unexpected output: %#v", out)
	}
}

func TestInvokeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.GenerateReviews(context.Background(), GenerateReviewsInput{ProductName: "x"})
	if err == nil {
		t.Fatal("expected error on 503")
	}
}

func TestNotConfigured(t *testing.T) {
	client := NewClient("", "")
	if _, err := client.GenerateReviews(context.Background(), GenerateReviewsInput{}); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
