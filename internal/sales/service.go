package sales

import (
	"context"
	"fmt"
	"time"

	"comptoir/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, opts ListOptions) (*Page, error)
	All(ctx context.Context, filter Filter) ([]Sale, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo           Repository
	defaultPerPage int
}

// NewService builds the sales service. perPage is the page size used when a
// request does not name one.
func NewService(repo Repository, perPage int) Service {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &service{repo: repo, defaultPerPage: perPage}
}

func (s *service) List(ctx context.Context, opts ListOptions) (*Page, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListSales"),
	)

	start := time.Now()

	if opts.PerPage <= 0 {
		opts.PerPage = s.defaultPerPage
	}

	log.Debug("list sales requested",
		zap.Int("page", opts.Page),
		zap.Int("per_page", opts.PerPage),
		zap.String("client", opts.Filter.Client),
		zap.String("status", string(opts.Filter.Status)),
	)

	rows, err := s.All(ctx, opts.Filter)
	if err != nil {
		return nil, err
	}

	page := Paginate(rows, opts.Page, opts.PerPage)

	log.Info("list sales success",
		zap.Int("page", page.Number),
		zap.Int("total_pages", page.TotalPages),
		zap.Int("total", page.Total),
		zap.Duration("duration", time.Since(start)),
	)

	return &page, nil
}

func (s *service) All(ctx context.Context, filter Filter) ([]Sale, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch sales",
			zap.String("layer", "service"),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return filter.Apply(rows), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteSale"),
		zap.Int64("sale_id", id),
	)

	if id <= 0 {
		log.Warn("invalid sale id")
		return ErrInvalidID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete sale", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	log.Info("sale deleted")
	return nil
}
