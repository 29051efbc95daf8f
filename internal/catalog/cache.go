package catalog

import (
	"context"
	"fmt"
	"sync"

	"comptoir/internal/bridge"
	"comptoir/internal/logger"

	"go.uber.org/zap"
)

const CommandGetProducts = "get_products"

// Cache holds the products offered by one form session. It is filled once by
// Load and never refreshed, so every reader sees the same snapshot.
type Cache struct {
	invoker bridge.Invoker

	mu       sync.RWMutex
	loaded   bool
	products []Product
	byName   map[string]int
	byID     map[int64]int
}

func NewCache(invoker bridge.Invoker) *Cache {
	return &Cache{invoker: invoker}
}

// NewSnapshot returns an already loaded cache over products.
func NewSnapshot(products []Product) *Cache {
	c := &Cache{}
	c.fill(products)
	return c
}

// Load fetches the product list. A cache that already holds a snapshot is
// left untouched. On failure the cache stays empty and a later Load may retry.
func (c *Cache) Load(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "catalog"),
		zap.String("method", "Load"),
	)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		log.Debug("catalog already loaded, keeping session snapshot")
		return nil
	}

	var rows []productRow
	if err := c.invoker.Invoke(ctx, CommandGetProducts, nil, &rows); err != nil {
		log.Error("failed to fetch products", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	c.fillLocked(mapProductRows(rows))
	log.Info("catalog loaded", zap.Int("product_count", len(c.products)))
	return nil
}

func (c *Cache) fill(products []Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fillLocked(products)
}

func (c *Cache) fillLocked(products []Product) {
	c.products = make([]Product, len(products))
	copy(c.products, products)

	c.byName = make(map[string]int, len(products))
	c.byID = make(map[int64]int, len(products))
	for i, p := range c.products {
		// Names are not unique keys; the first entry wins.
		if _, dup := c.byName[p.Name]; !dup {
			c.byName[p.Name] = i
		}
		if p.ID != 0 {
			c.byID[p.ID] = i
		}
	}
	c.loaded = true
}

func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Products returns a copy of the snapshot in backend order.
func (c *Cache) Products() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

func (c *Cache) Lookup(name string) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byName[name]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

func (c *Cache) LookupID(id int64) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}
