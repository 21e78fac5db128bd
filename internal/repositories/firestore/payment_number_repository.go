package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/iterator"

	domain "github.com/hatbazar/api/internal/domain"
	pfirestore "github.com/hatbazar/api/internal/platform/firestore"
	"github.com/hatbazar/api/internal/repositories"
)

const paymentNumbersCollection = "paymentNumbers"

type paymentNumberDocument struct {
	Type        string `firestore:"type"`
	Number      string `firestore:"number"`
	AccountType string `firestore:"accountType"`
}

// PaymentNumberRepository persists mobile-money destination numbers in Firestore.
type PaymentNumberRepository struct {
	provider *pfirestore.Provider
	numbers  *pfirestore.BaseRepository[paymentNumberDocument]
}

// NewPaymentNumberRepository constructs a Firestore-backed payment number repository.
func NewPaymentNumberRepository(provider *pfirestore.Provider) (*PaymentNumberRepository, error) {
	if provider == nil {
		return nil, errors.New("payment number repository requires firestore provider")
	}
	return &PaymentNumberRepository{
		provider: provider,
		numbers:  pfirestore.NewBaseRepository[paymentNumberDocument](provider, paymentNumbersCollection, nil),
	}, nil
}

// Insert stores a new payment number under its document ID.
func (r *PaymentNumberRepository) Insert(ctx context.Context, number domain.PaymentNumber) error {
	id := strings.TrimSpace(number.ID)
	if id == "" {
		return errors.New("payment number repository: id is required")
	}
	return r.numbers.Create(ctx, id, encodePaymentNumber(number))
}

// Update replaces the stored payment number document.
func (r *PaymentNumberRepository) Update(ctx context.Context, number domain.PaymentNumber) error {
	id := strings.TrimSpace(number.ID)
	if id == "" {
		return errors.New("payment number repository: id is required")
	}
	return r.numbers.Set(ctx, id, encodePaymentNumber(number))
}

// Delete removes the payment number document.
func (r *PaymentNumberRepository) Delete(ctx context.Context, paymentNumberID string) error {
	id := strings.TrimSpace(paymentNumberID)
	if id == "" {
		return errors.New("payment number repository: id is required")
	}
	return r.numbers.Delete(ctx, id)
}

// FindByID loads a payment number by document ID.
func (r *PaymentNumberRepository) FindByID(ctx context.Context, paymentNumberID string) (domain.PaymentNumber, error) {
	id := strings.TrimSpace(paymentNumberID)
	if id == "" {
		return domain.PaymentNumber{}, errors.New("payment number repository: id is required")
	}
	doc, err := r.numbers.Get(ctx, id)
	if err != nil {
		return domain.PaymentNumber{}, err
	}
	return doc.Data.toDomain(doc.ID), nil
}

// List returns every configured payment number.
func (r *PaymentNumberRepository) List(ctx context.Context) ([]domain.PaymentNumber, error) {
	if r == nil || r.provider == nil {
		return nil, errors.New("payment number repository not initialised")
	}
	coll, err := r.numbers.CollectionRef(ctx)
	if err != nil {
		return nil, err
	}

	iter := coll.Documents(ctx)
	defer iter.Stop()

	var numbers []domain.PaymentNumber
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, pfirestore.WrapError("payment_numbers.list", err)
		}
		var doc paymentNumberDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode payment number %s: %w", snap.Ref.ID, err)
		}
		numbers = append(numbers, doc.toDomain(snap.Ref.ID))
	}
	return numbers, nil
}

func encodePaymentNumber(number domain.PaymentNumber) paymentNumberDocument {
	return paymentNumberDocument{
		Type:        string(number.Type),
		Number:      strings.TrimSpace(number.Number),
		AccountType: strings.TrimSpace(number.AccountType),
	}
}

func (d paymentNumberDocument) toDomain(id string) domain.PaymentNumber {
	return domain.PaymentNumber{
		ID:          id,
		Type:        domain.PaymentMethod(d.Type),
		Number:      d.Number,
		AccountType: d.AccountType,
	}
}

// Ensure interface compliance.
var _ repositories.PaymentNumberRepository = (*PaymentNumberRepository)(nil)
