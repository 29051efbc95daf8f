package catalog

import "github.com/shopspring/decimal"

// Product is a read-only snapshot of one inventory entry.
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	CostPrice decimal.Decimal `json:"cost_price"`
	Brand     string          `json:"brand"`
	Material  string          `json:"material"`
	Image     *string         `json:"image,omitempty"`
}

// InStock reports whether at least n units are available.
func (p Product) InStock(n int) bool {
	return n <= p.Quantity
}
