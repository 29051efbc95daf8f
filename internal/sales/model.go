package sales

import (
	"time"

	"comptoir/internal/sale"

	"github.com/shopspring/decimal"
)

// Sale is one recorded line as the backend stores it: a single product sold
// to a client. Timestamps are kept in the backend's text form.
type Sale struct {
	ID           int64           `json:"id"`
	ClientName   string          `json:"client_name"`
	Status       sale.Status     `json:"status"`
	ProductName  string          `json:"product_name"`
	ProductImage *string         `json:"product_image,omitempty"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Date         string          `json:"date"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

// Credit reports whether the sale is still owed.
func (s Sale) Credit() bool {
	return s.Status == sale.StatusCredit
}

// SoldAt parses Date.
func (s Sale) SoldAt() (time.Time, error) {
	return ParseTimestamp(s.Date)
}

// Created parses CreatedAt.
func (s Sale) Created() (time.Time, error) {
	return ParseTimestamp(s.CreatedAt)
}

// Filter narrows a sales list. Zero values match everything.
type Filter struct {
	// Client is matched as a case-insensitive substring of the client name.
	Client string
	// Status keeps only sales with this status; empty means all.
	Status sale.Status
}

type ListOptions struct {
	Filter  Filter
	Page    int
	PerPage int
}

// Page is one window of a filtered list. Number is 1-based.
type Page struct {
	Rows       []Sale
	Number     int
	TotalPages int
	Total      int
}
