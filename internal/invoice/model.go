package invoice

import (
	"comptoir/internal/sales"

	"github.com/shopspring/decimal"
)

// Invoice groups the sales of one client, or of everyone, over a period.
// CreditTotal covers sales still owed; PaidTotal everything else.
type Invoice struct {
	ClientName  string          `json:"client_name"`
	Period      string          `json:"period"`
	Items       []sales.Sale    `json:"items"`
	Total       decimal.Decimal `json:"total"`
	CreditTotal decimal.Decimal `json:"credit_total"`
	PaidTotal   decimal.Decimal `json:"paid_total"`
}

// MonthTotal is one row of a yearly report.
type MonthTotal struct {
	Month       int             `json:"month"`
	Sales       []sales.Sale    `json:"sales"`
	Total       decimal.Decimal `json:"total"`
	CreditTotal decimal.Decimal `json:"credit_total"`
	PaidTotal   decimal.Decimal `json:"paid_total"`
}

type Report struct {
	Year   int             `json:"year"`
	Months []MonthTotal    `json:"months"`
	Total  decimal.Decimal `json:"total"`
	// Skipped counts sales whose creation time could not be read.
	Skipped int `json:"skipped"`
}
