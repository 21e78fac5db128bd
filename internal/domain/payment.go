package domain

// AdvanceAmount is the fixed advance collected at checkout under
// cod_with_advance, in taka.
const AdvanceAmount int64 = 120

// Human-readable labels for the payment options, as rendered by account,
// tracking, and admin views.
const (
	PaymentTypeFullAdvance    = "Full Advance"
	PaymentTypeCashOnDelivery = "Cash on Delivery"
	PaymentTypeUnknown        = "N/A"
)

// AmountPaid returns the amount the customer has paid for the order at any
// point in its lifecycle. Under full_advance the whole total is collected at
// placement; under cod_with_advance only the fixed advance is tracked.
func AmountPaid(order Order) int64 {
	switch order.CustomerInfo.PaymentOption {
	case PaymentOptionFullAdvance:
		return order.Total
	case PaymentOptionCODWithAdvance:
		return AdvanceAmount
	default:
		return 0
	}
}

// AmountDue returns the outstanding balance owed by the customer.
//
// Delivered orders report zero due even under cod_with_advance, where the
// balance is collected in cash at the door and never recorded here. That
// asymmetry is intentional business behaviour, not an accounting bug; see the
// payment policy tests before changing it.
func AmountDue(order Order) int64 {
	if order.Status == OrderStatusCancelled || order.Status == OrderStatusDelivered {
		return 0
	}
	due := order.Total - AmountPaid(order)
	if due < 0 {
		return 0
	}
	return due
}

// PaymentTypeLabel maps a payment option to its display label.
func PaymentTypeLabel(option PaymentOption) string {
	switch option {
	case PaymentOptionFullAdvance:
		return PaymentTypeFullAdvance
	case PaymentOptionCODWithAdvance:
		return PaymentTypeCashOnDelivery
	default:
		return PaymentTypeUnknown
	}
}
