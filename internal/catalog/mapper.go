package catalog

import "github.com/shopspring/decimal"

// productRow is the get_products wire shape. The backend renames cost_price
// to costPrice on the way out, older builds do not, so both are accepted.
type productRow struct {
	ID             *int64           `json:"id"`
	Name           string           `json:"name"`
	Price          decimal.Decimal  `json:"price"`
	Quantity       int              `json:"quantity"`
	CostPrice      *decimal.Decimal `json:"costPrice"`
	CostPriceSnake *decimal.Decimal `json:"cost_price"`
	Brand          string           `json:"brand"`
	Material       string           `json:"material"`
	Image          *string          `json:"image"`
}

func mapProductRow(r productRow) Product {
	p := Product{
		Name:     r.Name,
		Price:    r.Price,
		Quantity: r.Quantity,
		Brand:    r.Brand,
		Material: r.Material,
		Image:    r.Image,
	}

	if r.ID != nil {
		p.ID = *r.ID
	}

	switch {
	case r.CostPrice != nil:
		p.CostPrice = *r.CostPrice
	case r.CostPriceSnake != nil:
		p.CostPrice = *r.CostPriceSnake
	}

	if p.Image != nil && *p.Image == "" {
		p.Image = nil
	}

	return p
}

func mapProductRows(rows []productRow) []Product {
	products := make([]Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, mapProductRow(r))
	}
	return products
}
