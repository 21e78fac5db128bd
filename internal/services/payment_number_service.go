package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	domain "github.com/hatbazar/api/internal/domain"
	"github.com/hatbazar/api/internal/repositories"
)

const paymentNumberIDPrefix = "pay_"

// Account types accepted for payment destination numbers.
const (
	AccountTypePersonal = "Personal"
	AccountTypeAgent    = "Agent"
)

var (
	// ErrPaymentNumberInvalidInput signals invalid payment number admin input.
	ErrPaymentNumberInvalidInput = errors.New("payment number: invalid input")
	// ErrPaymentNumberNotFound indicates the payment number could not be located.
	ErrPaymentNumberNotFound = errors.New("payment number: not found")
)

// PaymentNumberServiceDeps bundles collaborators for the payment number service.
type PaymentNumberServiceDeps struct {
	Numbers     repositories.PaymentNumberRepository
	IDGenerator func() string
}

type paymentNumberService struct {
	numbers repositories.PaymentNumberRepository
	newID   func() string
}

// NewPaymentNumberService wires dependencies into a concrete PaymentNumberService.
func NewPaymentNumberService(deps PaymentNumberServiceDeps) (PaymentNumberService, error) {
	if deps.Numbers == nil {
		return nil, errors.New("payment number service: repository is required")
	}

	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string {
			return ulid.Make().String()
		}
	}

	return &paymentNumberService{numbers: deps.Numbers, newID: idGen}, nil
}

func (s *paymentNumberService) Create(ctx context.Context, cmd PaymentNumberCommand) (PaymentNumber, error) {
	number, err := buildPaymentNumber(cmd)
	if err != nil {
		return PaymentNumber{}, err
	}
	number.ID = paymentNumberIDPrefix + s.newID()

	if err := s.numbers.Insert(ctx, number); err != nil {
		return PaymentNumber{}, mapPaymentNumberError(err)
	}
	return number, nil
}

func (s *paymentNumberService) Update(ctx context.Context, paymentNumberID string, cmd PaymentNumberCommand) (PaymentNumber, error) {
	paymentNumberID = strings.TrimSpace(paymentNumberID)
	if paymentNumberID == "" {
		return PaymentNumber{}, fmt.Errorf("%w: payment number id is required", ErrPaymentNumberInvalidInput)
	}

	number, err := buildPaymentNumber(cmd)
	if err != nil {
		return PaymentNumber{}, err
	}

	existing, err := s.numbers.FindByID(ctx, paymentNumberID)
	if err != nil {
		return PaymentNumber{}, mapPaymentNumberError(err)
	}

	number.ID = existing.ID
	if err := s.numbers.Update(ctx, number); err != nil {
		return PaymentNumber{}, mapPaymentNumberError(err)
	}
	return number, nil
}

func (s *paymentNumberService) Delete(ctx context.Context, paymentNumberID string) error {
	paymentNumberID = strings.TrimSpace(paymentNumberID)
	if paymentNumberID == "" {
		return fmt.Errorf("%w: payment number id is required", ErrPaymentNumberInvalidInput)
	}
	return mapPaymentNumberError(s.numbers.Delete(ctx, paymentNumberID))
}

func (s *paymentNumberService) List(ctx context.Context) ([]PaymentNumber, error) {
	numbers, err := s.numbers.List(ctx)
	if err != nil {
		return nil, mapPaymentNumberError(err)
	}
	return numbers, nil
}

func buildPaymentNumber(cmd PaymentNumberCommand) (PaymentNumber, error) {
	method := domain.PaymentMethod(strings.TrimSpace(cmd.Type))
	switch method {
	case domain.PaymentMethodBkash, domain.PaymentMethodNagad:
	default:
		return PaymentNumber{}, fmt.Errorf("%w: unknown payment method %q", ErrPaymentNumberInvalidInput, cmd.Type)
	}

	value := strings.TrimSpace(cmd.Number)
	if value == "" {
		return PaymentNumber{}, fmt.Errorf("%w: number is required", ErrPaymentNumberInvalidInput)
	}
	if !isPhoneNumber(value) {
		return PaymentNumber{}, fmt.Errorf("%w: number %q must be at least %d digits", ErrPaymentNumberInvalidInput, cmd.Number, minPhoneDigits)
	}

	accountType := strings.TrimSpace(cmd.AccountType)
	switch accountType {
	case AccountTypePersonal, AccountTypeAgent:
	default:
		return PaymentNumber{}, fmt.Errorf("%w: unknown account type %q", ErrPaymentNumberInvalidInput, cmd.AccountType)
	}

	return PaymentNumber{Type: method, Number: value, AccountType: accountType}, nil
}

const minPhoneDigits = 11

func isPhoneNumber(value string) bool {
	if len(value) < minPhoneDigits {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func mapPaymentNumberError(err error) error {
	if err == nil {
		return nil
	}

	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		switch {
		case repoErr.IsNotFound():
			return fmt.Errorf("%w: %v", ErrPaymentNumberNotFound, err)
		case repoErr.IsUnavailable():
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}

	return err
}
