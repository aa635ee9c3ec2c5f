package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart is returned when checkout is attempted with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCancelNotAllowed is returned when policy forbids cancelling an order.
	ErrCancelNotAllowed = errors.New("order can no longer be cancelled")
	// ErrInvalidReview wraps review validation failures.
	ErrInvalidReview = errors.New("invalid review")
)
