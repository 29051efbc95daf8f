package invoice

import (
	"fmt"

	"comptoir/internal/sales"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of decimals amounts are shown and compared with.
const AmountPlaces = 3

// Summarize builds an invoice from items, computing every total locally.
func Summarize(client, period string, items []sales.Sale) Invoice {
	inv := Invoice{
		ClientName:  client,
		Period:      period,
		Items:       items,
		Total:       decimal.Zero,
		CreditTotal: decimal.Zero,
		PaidTotal:   decimal.Zero,
	}
	for _, s := range items {
		inv.Total = inv.Total.Add(s.TotalAmount)
		if s.Credit() {
			inv.CreditTotal = inv.CreditTotal.Add(s.TotalAmount)
		} else {
			inv.PaidTotal = inv.PaidTotal.Add(s.TotalAmount)
		}
	}
	return inv
}

// Verify recomputes the totals from Items and reports any that differ once
// rounded to AmountPlaces.
func (inv Invoice) Verify() error {
	want := Summarize(inv.ClientName, inv.Period, inv.Items)

	for _, c := range []struct {
		name      string
		got, want decimal.Decimal
	}{
		{"total", inv.Total, want.Total},
		{"credit_total", inv.CreditTotal, want.CreditTotal},
		{"paid_total", inv.PaidTotal, want.PaidTotal},
	} {
		if !c.got.Round(AmountPlaces).Equal(c.want.Round(AmountPlaces)) {
			return fmt.Errorf("%w: %s is %s, items sum to %s",
				ErrTotalsMismatch, c.name, FormatAmount(c.got), FormatAmount(c.want))
		}
	}
	return nil
}

// FormatAmount renders d with three decimals and the currency code.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountPlaces) + " TND"
}
