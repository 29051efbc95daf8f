package sale

import (
	"errors"
	"fmt"
)

var (
	// -- Form preconditions --
	ErrMissingClient = errors.New("client name is required")
	ErrMissingDate   = errors.New("sale date is required")
	ErrNoItems       = errors.New("sale has no line items")
	ErrInvalidStatus = errors.New("invalid payment status")

	// -- Line validation --
	ErrMissingProduct    = errors.New("line has no product")
	ErrInvalidQuantity   = errors.New("line quantity must be greater than zero")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product not found")

	// -- Form lifecycle --
	ErrFrozen           = errors.New("form is frozen while submitting")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrClosed           = errors.New("form is closed")
)

// Kind classifies a line validation failure.
type Kind string

const (
	KindMissingProduct  Kind = "missing_product"
	KindInvalidQuantity Kind = "invalid_quantity"
)

// ValidationError reports the first invalid line. Line is zero-based.
type ValidationError struct {
	Kind     Kind
	Line     int
	Quantity int
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMissingProduct:
		return fmt.Sprintf("line %d: %s", e.Line+1, ErrMissingProduct)
	case KindInvalidQuantity:
		return fmt.Sprintf("line %d: %s (got %d)", e.Line+1, ErrInvalidQuantity, e.Quantity)
	default:
		return fmt.Sprintf("line %d: invalid", e.Line+1)
	}
}

func (e *ValidationError) Is(target error) bool {
	switch e.Kind {
	case KindMissingProduct:
		return target == ErrMissingProduct
	case KindInvalidQuantity:
		return target == ErrInvalidQuantity
	}
	return false
}

// InsufficientStockError is raised by the local stock check, or rebuilt from
// the backend's own rejection. Available and Requested are -1 when the
// backend did not report them.
type InsufficientStockError struct {
	Product   string
	Line      int
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	if e.Available < 0 || e.Requested < 0 {
		return fmt.Sprintf("%s for %q", ErrInsufficientStock, e.Product)
	}
	return fmt.Sprintf("%s for %q: available %d, requested %d", ErrInsufficientStock, e.Product, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ProductNotFoundError is the backend refusing a line whose product no longer exists.
type ProductNotFoundError struct {
	Product string
	Line    int
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrProductNotFound, e.Product)
}

func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}

// WriteError reports a save_order failure. Lines before Line were committed
// and their sale IDs are listed in Committed; Uncompensated holds the IDs a
// rollback attempt could not reverse.
type WriteError struct {
	Line          int
	Product       string
	Committed     []int64
	Compensated   bool
	Uncompensated []int64
	Cause         error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("saving line %d (%s) failed after %d committed: %v", e.Line+1, e.Product, len(e.Committed), e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
