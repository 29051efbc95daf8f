package sale

import (
	"context"
	"encoding/json"
	"sync"

	"comptoir/internal/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockInvoker is a mock implementation of bridge.Invoker
type MockInvoker struct {
	mock.Mock
}

func (m *MockInvoker) Invoke(ctx context.Context, command string, args any, out any) error {
	called := m.Called(ctx, command, args, out)
	return called.Error(0)
}

type call struct {
	Command string
	Args    any
}

// fakeBackend records every command and answers like the desktop backend:
// save_order returns increasing sale IDs unless a failure is configured for
// that write (1-based).
type fakeBackend struct {
	mu         sync.Mutex
	products   string
	productErr error
	saveErrs   map[int]error
	deleteErrs map[int64]error
	calls      []call
	saves      int
	nextID     int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		products:   `[{"id":1,"name":"Widget","price":10,"quantity":5},{"id":2,"name":"Gadget","price":20,"quantity":3}]`,
		saveErrs:   map[int]error{},
		deleteErrs: map[int64]error{},
		nextID:     100,
	}
}

func (b *fakeBackend) Invoke(ctx context.Context, command string, args any, out any) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, call{Command: command, Args: args})

	switch command {
	case catalog.CommandGetProducts:
		if b.productErr != nil {
			return b.productErr
		}
		return json.Unmarshal([]byte(b.products), out)
	case CommandSaveOrder:
		b.saves++
		if err := b.saveErrs[b.saves]; err != nil {
			return err
		}
		b.nextID++
		if id, ok := out.(*int64); ok {
			*id = b.nextID
		}
		return nil
	case CommandDeleteSale:
		return b.deleteErrs[args.(deleteSaleArgs).ID]
	}
	return nil
}

func (b *fakeBackend) commands(name string) []call {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []call
	for _, c := range b.calls {
		if c.Command == name {
			out = append(out, c)
		}
	}
	return out
}

func (b *fakeBackend) savedProducts() []string {
	var names []string
	for _, c := range b.commands(CommandSaveOrder) {
		names = append(names, c.Args.(saveOrderArgs).Order.ProductName)
	}
	return names
}

func testCatalog() *catalog.Cache {
	return catalog.NewSnapshot([]catalog.Product{
		{ID: 1, Name: "Widget", Price: decimal.NewFromInt(10), Quantity: 5},
		{ID: 2, Name: "Gadget", Price: decimal.NewFromInt(20), Quantity: 3},
	})
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}
