package catalog

//go:generate mockgen -source=catalog.go -destination=catalog_mock_test.go -package=catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/TemirB/figurine-cart/internal/cache"
	"github.com/TemirB/figurine-cart/internal/domain"
	"github.com/TemirB/figurine-cart/internal/observability"
)

type Source interface {
	Products(ctx context.Context, take int) ([]domain.CatalogProduct, error)
	ProductBySlug(ctx context.Context, slug string) (*domain.CatalogProduct, error)
}

// Catalog serves products from an LRU in front of the Shop API. Products are
// returned with their purchasable variants only.
type Catalog struct {
	src     Source
	cache   *cache.Cache
	take    int
	logger  *zap.Logger
	metrics observability.Metrics

	mu    sync.Mutex
	slugs []string
}

func New(src Source, c *cache.Cache, take int, logger *zap.Logger, metrics observability.Metrics) *Catalog {
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &Catalog{
		src:     src,
		cache:   c,
		take:    take,
		logger:  logger,
		metrics: metrics,
	}
}

// List returns the product listing. It is served from the cache while every
// product of the last listing is still cached.
func (c *Catalog) List(ctx context.Context) ([]domain.CatalogProduct, error) {
	if out, ok := c.cachedList(); ok {
		c.metrics.IncCatalogHit()
		return out, nil
	}
	c.metrics.IncCatalogMiss()

	products, err := c.src.Products(ctx, c.take)
	if err != nil {
		c.logger.Error("Error while listing products", zap.Error(err))
		return nil, err
	}

	slugs := make([]string, 0, len(products))
	out := make([]domain.CatalogProduct, 0, len(products))
	for i := range products {
		p := &products[i]
		if p.Slug != "" {
			c.cache.Set(p)
			slugs = append(slugs, p.Slug)
		}
		out = append(out, purchasable(*p))
	}

	c.mu.Lock()
	c.slugs = slugs
	c.mu.Unlock()

	c.logger.Debug("Catalog listing fetched", zap.Int("products", len(out)))
	return out, nil
}

func (c *Catalog) cachedList() ([]domain.CatalogProduct, bool) {
	c.mu.Lock()
	slugs := c.slugs
	c.mu.Unlock()
	if slugs == nil {
		return nil, false
	}

	out := make([]domain.CatalogProduct, 0, len(slugs))
	for _, s := range slugs {
		p, ok := c.cache.Get(s)
		if !ok {
			return nil, false
		}
		out = append(out, purchasable(*p))
	}
	return out, true
}

// BySlug returns domain.ErrProductNotFound for unknown slugs.
func (c *Catalog) BySlug(ctx context.Context, slug string) (*domain.CatalogProduct, error) {
	if p, ok := c.cache.Get(slug); ok {
		c.metrics.IncCatalogHit()
		out := purchasable(*p)
		return &out, nil
	}
	c.metrics.IncCatalogMiss()

	p, err := c.src.ProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	c.cache.Set(p)

	out := purchasable(*p)
	return &out, nil
}

// Invalidate forgets everything cached and reports how many products it dropped.
func (c *Catalog) Invalidate() int {
	c.mu.Lock()
	c.slugs = nil
	c.mu.Unlock()

	n := c.cache.Len()
	c.cache.Purge()
	c.logger.Info("Catalog cache invalidated", zap.Int("products", n))
	return n
}

func purchasable(p domain.CatalogProduct) domain.CatalogProduct {
	p.Variants = EnabledVariants(p.Variants)
	return p
}

// EnabledVariants keeps variants flagged enabled. Variants that carry no flag
// are kept when they have a price.
func EnabledVariants(vs []domain.CatalogVariant) []domain.CatalogVariant {
	out := make([]domain.CatalogVariant, 0, len(vs))
	for _, v := range vs {
		if v.Enabled != nil {
			if *v.Enabled {
				out = append(out, v)
			}
			continue
		}
		if v.Price > 0 {
			out = append(out, v)
		}
	}
	return out
}
