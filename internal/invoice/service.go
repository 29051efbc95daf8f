package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"comptoir/internal/logger"
	"comptoir/internal/sales"

	"go.uber.org/zap"
)

type Service interface {
	ForClient(ctx context.Context, client string, p Period) (*Invoice, error)
	ForPeriod(ctx context.Context, p Period) (*Invoice, error)
	Yearly(ctx context.Context, year int) (*Report, error)
}

type service struct {
	repo  Repository
	sales sales.Service
}

func NewService(repo Repository, salesSvc sales.Service) Service {
	return &service{repo: repo, sales: salesSvc}
}

func (s *service) ForClient(ctx context.Context, client string, p Period) (*Invoice, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ClientInvoice"),
		zap.String("client", client),
		zap.String("period", p.Label()),
	)

	client = strings.TrimSpace(client)
	if client == "" {
		return nil, ErrMissingClient
	}
	if err := p.Validate(); err != nil {
		log.Warn("invalid invoice period", zap.Error(err))
		return nil, err
	}

	inv, err := s.repo.ForClient(ctx, client, p)
	if err != nil {
		log.Error("failed to fetch client invoice", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	return s.checked(log, inv), nil
}

// ForPeriod returns every client's sales for a year or a month. Day and
// all-time invoices are per client only.
func (s *service) ForPeriod(ctx context.Context, p Period) (*Invoice, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PeriodInvoice"),
		zap.String("period", p.Label()),
	)

	if err := p.Validate(); err != nil {
		return nil, err
	}

	var (
		inv *Invoice
		err error
	)
	switch {
	case p.Date != "" || p.Year == 0:
		return nil, fmt.Errorf("%w: a year is required", ErrInvalidPeriod)
	case p.Month != 0:
		inv, err = s.repo.ForMonth(ctx, p.Year, p.Month)
	default:
		inv, err = s.repo.ForYear(ctx, p.Year)
	}
	if err != nil {
		log.Error("failed to fetch period invoice", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	return s.checked(log, inv), nil
}

// Yearly builds the month by month report from the full sales list.
func (s *service) Yearly(ctx context.Context, year int) (*Report, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "YearReport"),
		zap.Int("year", year),
	)

	start := time.Now()

	rows, err := s.sales.All(ctx, sales.Filter{})
	if err != nil {
		return nil, err
	}

	report := YearReport(rows, year)
	if report.Skipped > 0 {
		log.Warn("sales with unreadable creation time left out", zap.Int("skipped", report.Skipped))
	}

	log.Info("year report built",
		zap.Int("months", len(report.Months)),
		zap.String("total", report.Total.StringFixed(AmountPlaces)),
		zap.Duration("duration", time.Since(start)),
	)
	return &report, nil
}

// checked logs a backend invoice whose totals disagree with its items and
// replaces them with the recomputed ones.
func (s *service) checked(log *zap.Logger, inv *Invoice) *Invoice {
	if err := inv.Verify(); err != nil {
		if errors.Is(err, ErrTotalsMismatch) {
			log.Warn("backend invoice totals corrected", zap.Error(err))
		}
		fixed := Summarize(inv.ClientName, inv.Period, inv.Items)
		return &fixed
	}
	return inv
}
