package sale

import (
	"context"

	"comptoir/internal/bridge"
	"comptoir/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	CommandSaveOrder  = "save_order"
	CommandDeleteSale = "delete_sale"
)

type saveOrderArgs struct {
	Order orderPayload `json:"order"`
}

type orderPayload struct {
	ClientName  string `json:"client_name"`
	Status      Status `json:"status"`
	ProductName string `json:"product_name"`
	Date        string `json:"date"`
	Quantity    int    `json:"quantity"`
}

type deleteSaleArgs struct {
	ID int64 `json:"id"`
}

type PipelineOptions struct {
	// Compensate deletes already committed lines, newest first, when a later
	// line is rejected. Off, a failure leaves earlier lines committed.
	Compensate bool
}

// Pipeline validates an order and commits it one line at a time.
type Pipeline struct {
	invoker    bridge.Invoker
	catalog    Catalog
	compensate bool
}

// Result lists the sale IDs created, in line order.
type Result struct {
	SaleIDs []int64
	Total   decimal.Decimal
}

func NewPipeline(invoker bridge.Invoker, cat Catalog, opts PipelineOptions) *Pipeline {
	return &Pipeline{
		invoker:    invoker,
		catalog:    cat,
		compensate: opts.Compensate,
	}
}

func (p *Pipeline) Validate(o Order) error {
	return Validate(o, p.catalog)
}

// Submit validates o and, only if every line passes, commits it.
func (p *Pipeline) Submit(ctx context.Context, o Order) (*Result, error) {
	if err := p.Validate(o); err != nil {
		logger.FromCtx(ctx).Info("sale rejected by validation",
			zap.String("layer", "sale"),
			zap.Error(err),
		)
		return nil, err
	}
	return p.Commit(ctx, o)
}

// Commit issues one save_order per line, strictly in order. The first
// rejection stops the sequence; later lines are never sent.
func (p *Pipeline) Commit(ctx context.Context, o Order) (*Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "sale"),
		zap.String("method", "Commit"),
		zap.String("client", o.ClientName),
		zap.Int("line_count", len(o.Items)),
	)

	log.Info("committing sale")

	committed := make([]int64, 0, len(o.Items))
	date := o.Date.Format(DateLayout)

	for i, line := range o.Items {
		logLine := log.With(
			zap.Int("index", i),
			zap.String("product", line.ProductName),
			zap.Int("quantity", line.Quantity),
		)

		args := saveOrderArgs{Order: orderPayload{
			ClientName:  o.ClientName,
			Status:      o.Status,
			ProductName: line.ProductName,
			Date:        date,
			Quantity:    line.Quantity,
		}}

		var saleID int64
		if err := p.invoker.Invoke(ctx, CommandSaveOrder, args, &saleID); err != nil {
			logLine.Warn("line rejected by backend", zap.Error(err))

			werr := &WriteError{
				Line:      i,
				Product:   line.ProductName,
				Committed: append([]int64(nil), committed...),
				Cause:     mapBackendError(i, line, err),
			}
			if p.compensate && len(committed) > 0 {
				werr.Compensated = true
				werr.Uncompensated = p.rollback(ctx, committed)
			} else if len(committed) > 0 {
				log.Warn("sale partially committed", zap.Int64s("sale_ids", committed))
			}
			return nil, werr
		}

		logLine.Debug("line committed", zap.Int64("sale_id", saleID))
		committed = append(committed, saleID)
	}

	log.Info("sale committed", zap.Int64s("sale_ids", committed))

	return &Result{SaleIDs: committed, Total: o.TotalAmount}, nil
}

// rollback deletes committed sales newest first and returns the IDs it could
// not delete. It runs even if ctx was cancelled mid-sequence.
func (p *Pipeline) rollback(ctx context.Context, saleIDs []int64) []int64 {
	ctx = context.WithoutCancel(ctx)
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "sale"),
		zap.String("method", "rollback"),
	)

	var failed []int64
	for i := len(saleIDs) - 1; i >= 0; i-- {
		id := saleIDs[i]
		log.Info("compensating committed line", zap.Int64("sale_id", id))
		if err := p.invoker.Invoke(ctx, CommandDeleteSale, deleteSaleArgs{ID: id}, nil); err != nil {
			log.Error("failed to compensate committed line", zap.Int64("sale_id", id), zap.Error(err))
			failed = append(failed, id)
		}
	}
	return failed
}
