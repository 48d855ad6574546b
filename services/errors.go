package services

import "errors"

// Domain precondition errors. Controllers map these to 400 responses;
// gorm.ErrRecordNotFound maps to 404 and anything else to 500.
var (
	ErrInvalidStatus           = errors.New("invalid status")
	ErrPaymentMethodRequired   = errors.New("payment method is required when status is 'delivered'")
	ErrCreditUserRequired      = errors.New("credit_user_id is required for credit payment method")
	ErrCreditUserInvalid       = errors.New("invalid credit user")
	ErrCreditUserInactive      = errors.New("credit user account is inactive due to overdue payment")
	ErrOrderDelivered          = errors.New("delivered orders cannot be cancelled")
	ErrOrderAlreadyCancelled   = errors.New("order is already cancelled")
	ErrDriverHasActiveOrders   = errors.New("cannot set availability to true while having active orders")
	ErrInvalidPaymentAmount    = errors.New("invalid payment amount")
	ErrInvalidDateRange        = errors.New("end date must be later than start date")
	ErrDeliveryDetailsRequired = errors.New("customer name, address, phone number and driver are required for delivery orders")
	ErrDishNotFound            = errors.New("dish not found")

	// ErrInsufficientStock is part of the error taxonomy but no code
	// path raises it: orders are accepted without an inventory check.
	ErrInsufficientStock = errors.New("insufficient stock for one or more items in your order")
)

// IsDomainError reports whether err is a business rule violation rather
// than a system failure.
func IsDomainError(err error) bool {
	for _, domain := range []error{
		ErrInvalidStatus,
		ErrPaymentMethodRequired,
		ErrCreditUserRequired,
		ErrCreditUserInvalid,
		ErrCreditUserInactive,
		ErrOrderDelivered,
		ErrOrderAlreadyCancelled,
		ErrDriverHasActiveOrders,
		ErrInvalidPaymentAmount,
		ErrInvalidDateRange,
		ErrDeliveryDetailsRequired,
		ErrDishNotFound,
		ErrInsufficientStock,
	} {
		if errors.Is(err, domain) {
			return true
		}
	}
	return false
}
