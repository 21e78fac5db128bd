package services

import (
	"context"
	"errors"
	"testing"

	domain "github.com/hatbazar/api/internal/domain"
)

type stubPaymentNumberRepo struct {
	insertFn func(context.Context, domain.PaymentNumber) error
	updateFn func(context.Context, domain.PaymentNumber) error
	deleteFn func(context.Context, string) error
	findFn   func(context.Context, string) (domain.PaymentNumber, error)
	listFn   func(context.Context) ([]domain.PaymentNumber, error)
}

func (s *stubPaymentNumberRepo) Insert(ctx context.Context, number domain.PaymentNumber) error {
	if s.insertFn != nil {
		return s.insertFn(ctx, number)
	}
	return nil
}

func (s *stubPaymentNumberRepo) Update(ctx context.Context, number domain.PaymentNumber) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, number)
	}
	return nil
}

func (s *stubPaymentNumberRepo) Delete(ctx context.Context, paymentNumberID string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, paymentNumberID)
	}
	return nil
}

func (s *stubPaymentNumberRepo) FindByID(ctx context.Context, paymentNumberID string) (domain.PaymentNumber, error) {
	if s.findFn != nil {
		return s.findFn(ctx, paymentNumberID)
	}
	return domain.PaymentNumber{}, errors.New("not implemented")
}

func (s *stubPaymentNumberRepo) List(ctx context.Context) ([]domain.PaymentNumber, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func TestCreatePaymentNumber(t *testing.T) {
	var inserted domain.PaymentNumber
	repo := &stubPaymentNumberRepo{
		insertFn: func(_ context.Context, number domain.PaymentNumber) error {
			inserted = number
			return nil
		},
	}
	svc, err := NewPaymentNumberService(PaymentNumberServiceDeps{
		Numbers:     repo,
		IDGenerator: func() string { return "01JTESTULID" },
	})
	if err != nil {
		t.Fatalf("NewPaymentNumberService: %v", err)
	}

	number, err := svc.Create(context.Background(), PaymentNumberCommand{
		Type:        "bkash",
		Number:      "01750016536",
		AccountType: "Personal",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if number.ID != "pay_01JTESTULID" {
		t.Fatalf("id = %q", number.ID)
	}
	if inserted.Type != domain.PaymentMethodBkash || inserted.Number != "01750016536" {
		t.Fatalf("inserted %+v", inserted)
	}
}

func TestCreatePaymentNumberValidation(t *testing.T) {
	svc, _ := NewPaymentNumberService(PaymentNumberServiceDeps{Numbers: &stubPaymentNumberRepo{}})

	cases := []PaymentNumberCommand{
		{Type: "rocket", Number: "01865870357", AccountType: "Personal"},
		{Type: "nagad", Number: "", AccountType: "Personal"},
		{Type: "nagad", Number: "017", AccountType: "Personal"},
		{Type: "nagad", Number: "0175001653a", AccountType: "Personal"},
		{Type: "nagad", Number: "01865870357", AccountType: "Business"},
	}
	for i, cmd := range cases {
		if _, err := svc.Create(context.Background(), cmd); !errors.Is(err, ErrPaymentNumberInvalidInput) {
			t.Fatalf("case %d: err = %v, want ErrPaymentNumberInvalidInput", i, err)
		}
	}
}

func TestUpdatePaymentNumberMissing(t *testing.T) {
	repo := &stubPaymentNumberRepo{
		findFn: func(context.Context, string) (domain.PaymentNumber, error) {
			return domain.PaymentNumber{}, stubRepositoryError{notFound: true}
		},
	}
	svc, _ := NewPaymentNumberService(PaymentNumberServiceDeps{Numbers: repo})

	_, err := svc.Update(context.Background(), "pay_missing", PaymentNumberCommand{
		Type:        "nagad",
		Number:      "01865870357",
		AccountType: "Agent",
	})
	if !errors.Is(err, ErrPaymentNumberNotFound) {
		t.Fatalf("err = %v, want ErrPaymentNumberNotFound", err)
	}
}
