package sale

import "strings"

// Validate checks o against the catalog snapshot. Form preconditions come
// first, then every line in display order; the first failure is returned.
// The stock check is optimistic: the snapshot may be stale and the backend
// stays the authority.
func Validate(o Order, cat Catalog) error {
	if strings.TrimSpace(o.ClientName) == "" {
		return ErrMissingClient
	}
	if o.Date.IsZero() {
		return ErrMissingDate
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}

	for i, line := range o.Items {
		if err := validateLine(i, line, cat); err != nil {
			return err
		}
	}
	return nil
}

func validateLine(i int, line LineItem, cat Catalog) error {
	if line.ProductName == "" {
		return &ValidationError{Kind: KindMissingProduct, Line: i}
	}
	if line.Quantity <= 0 {
		return &ValidationError{Kind: KindInvalidQuantity, Line: i, Quantity: line.Quantity}
	}
	if p, ok := lookupLine(cat, line); ok && line.Quantity > p.Quantity {
		return &InsufficientStockError{
			Product:   line.ProductName,
			Line:      i,
			Available: p.Quantity,
			Requested: line.Quantity,
		}
	}
	return nil
}
