package invoice

import (
	"context"
	"time"

	"comptoir/internal/bridge"
)

const (
	CommandClientInvoices        = "get_client_invoices"
	CommandClientInvoicesByYear  = "get_client_invoices_by_year"
	CommandClientInvoicesByMonth = "get_client_invoices_by_month"
)

type Repository interface {
	ForClient(ctx context.Context, client string, p Period) (*Invoice, error)
	ForYear(ctx context.Context, year int) (*Invoice, error)
	ForMonth(ctx context.Context, year int, month time.Month) (*Invoice, error)
}

type clientArgs struct {
	ClientName string  `json:"client_name"`
	Year       *int    `json:"year,omitempty"`
	Month      *int    `json:"month,omitempty"`
	Date       *string `json:"date,omitempty"`
}

type yearArgs struct {
	Year int `json:"year"`
}

type monthArgs struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type repository struct {
	invoker bridge.Invoker
}

func NewRepository(invoker bridge.Invoker) Repository {
	return &repository{invoker: invoker}
}

func (r *repository) ForClient(ctx context.Context, client string, p Period) (*Invoice, error) {
	args := clientArgs{ClientName: client}
	if p.Date != "" {
		args.Date = &p.Date
	} else {
		if p.Year != 0 {
			year := p.Year
			args.Year = &year
		}
		if p.Month != 0 {
			month := int(p.Month)
			args.Month = &month
		}
	}

	var inv Invoice
	if err := r.invoker.Invoke(ctx, CommandClientInvoices, args, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repository) ForYear(ctx context.Context, year int) (*Invoice, error) {
	var inv Invoice
	if err := r.invoker.Invoke(ctx, CommandClientInvoicesByYear, yearArgs{Year: year}, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repository) ForMonth(ctx context.Context, year int, month time.Month) (*Invoice, error) {
	var inv Invoice
	args := monthArgs{Year: year, Month: int(month)}
	if err := r.invoker.Invoke(ctx, CommandClientInvoicesByMonth, args, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}
