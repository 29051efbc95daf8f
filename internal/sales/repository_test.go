package sales

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"comptoir/internal/bridge"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_List(t *testing.T) {
	var gotCommand string
	inv := bridge.Func(func(ctx context.Context, command string, args any, out any) error {
		gotCommand = command
		return json.Unmarshal([]byte(`[{
			"id": 4,
			"client_name": "Amina",
			"status": "Crédit",
			"product_name": "Widget",
			"product_image": null,
			"quantity": 2,
			"price": 10.5,
			"total_amount": 21,
			"date": "2025-03-14T09:26",
			"created_at": "2025-03-14 09:26:53",
			"updated_at": "2025-03-14 09:26:53"
		}]`), out)
	})

	rows, err := NewRepository(inv).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CommandGetSales, gotCommand)
	require.Len(t, rows, 1)

	s := rows[0]
	assert.Equal(t, int64(4), s.ID)
	assert.True(t, s.Credit())
	assert.Nil(t, s.ProductImage)
	assert.True(t, decimal.RequireFromString("10.5").Equal(s.Price))

	created, err := s.Created()
	require.NoError(t, err)
	assert.Equal(t, 53, created.Second())
}

func TestRepository_Delete(t *testing.T) {
	var body []byte
	inv := bridge.Func(func(ctx context.Context, command string, args any, out any) error {
		assert.Equal(t, CommandDeleteSale, command)
		assert.Nil(t, out)
		var err error
		body, err = json.Marshal(args)
		return err
	})

	require.NoError(t, NewRepository(inv).Delete(context.Background(), 12))
	assert.JSONEq(t, `{"id":12}`, string(body))

	failing := bridge.Func(func(context.Context, string, any, any) error {
		return errors.New("boom")
	})
	assert.Error(t, NewRepository(failing).Delete(context.Background(), 12))
}
