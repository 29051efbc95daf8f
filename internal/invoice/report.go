package invoice

import (
	"comptoir/internal/sales"

	"github.com/shopspring/decimal"
)

// YearReport keeps the sales created during year and groups them by month.
// Months without sales are left out; months are in calendar order and sales
// keep their input order within a month.
func YearReport(rows []sales.Sale, year int) Report {
	report := Report{Year: year, Total: decimal.Zero}

	var byMonth [12][]sales.Sale
	for _, s := range rows {
		created, err := s.Created()
		if err != nil {
			report.Skipped++
			continue
		}
		if created.Year() != year {
			continue
		}
		m := int(created.Month()) - 1
		byMonth[m] = append(byMonth[m], s)
	}

	for i, monthSales := range byMonth {
		if len(monthSales) == 0 {
			continue
		}
		sum := Summarize("", "", monthSales)
		report.Months = append(report.Months, MonthTotal{
			Month:       i + 1,
			Sales:       monthSales,
			Total:       sum.Total,
			CreditTotal: sum.CreditTotal,
			PaidTotal:   sum.PaidTotal,
		})
		report.Total = report.Total.Add(sum.Total)
	}
	return report
}
