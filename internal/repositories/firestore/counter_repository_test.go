package firestore

import (
	"context"
	"errors"
	"testing"

	pconfig "github.com/hatbazar/api/internal/platform/config"
	pfirestore "github.com/hatbazar/api/internal/platform/firestore"
	"github.com/hatbazar/api/internal/repositories"
)

func TestCounterNextRejectsBadInput(t *testing.T) {
	provider := pfirestore.NewProvider(pconfig.FirestoreConfig{ProjectID: "counter-test"})
	repo, err := NewCounterRepository(provider)
	if err != nil {
		t.Fatalf("new counter repository: %v", err)
	}

	cases := []struct {
		name      string
		counterID string
		step      int64
	}{
		{name: "empty id", counterID: "  ", step: 1},
		{name: "negative step", counterID: "orders", step: -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.Next(context.Background(), tc.counterID, tc.step)
			var counterErr *repositories.CounterError
			if !errors.As(err, &counterErr) {
				t.Fatalf("expected counter error, got %T %v", err, err)
			}
			if counterErr.Code != repositories.CounterErrorInvalidInput {
				t.Fatalf("expected invalid input code, got %s", counterErr.Code)
			}
		})
	}
}
