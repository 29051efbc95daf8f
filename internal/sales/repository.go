package sales

import (
	"context"

	"comptoir/internal/bridge"
)

const (
	CommandGetSales   = "get_sales"
	CommandDeleteSale = "delete_sale"
)

// Repository is the backend's view of recorded sales.
type Repository interface {
	List(ctx context.Context) ([]Sale, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	invoker bridge.Invoker
}

func NewRepository(invoker bridge.Invoker) Repository {
	return &repository{invoker: invoker}
}

// List returns every sale, newest first as the backend orders them.
func (r *repository) List(ctx context.Context) ([]Sale, error) {
	var rows []Sale
	if err := r.invoker.Invoke(ctx, CommandGetSales, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes a sale; the backend puts its quantity back in stock.
func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.invoker.Invoke(ctx, CommandDeleteSale, struct {
		ID int64 `json:"id"`
	}{ID: id}, nil)
}
