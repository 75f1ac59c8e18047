package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/TemirB/figurine-cart/internal/domain"
)

//go:generate mockgen -source=cache.go -destination=cache_mock_test.go -package=cache

type source interface {
	Products(ctx context.Context, take int) ([]domain.CatalogProduct, error)
}

// Cache holds catalog products keyed by slug.
type Cache struct {
	size int
	lru  *lru.Cache[string, domain.CatalogProduct]
}

func New(size int) (*Cache, error) {
	c, err := lru.New[string, domain.CatalogProduct](size)
	if err != nil {
		return nil, err
	}
	return &Cache{
		size: size,
		lru:  c,
	}, nil
}

// Warm fills the cache with up to size products and reports how many were stored.
func (c *Cache) Warm(ctx context.Context, src source) (int, error) {
	products, err := src.Products(ctx, c.size)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range products {
		if products[i].Slug == "" {
			continue
		}
		c.Set(&products[i])
		n++
	}
	return n, nil
}

func (c *Cache) Get(slug string) (*domain.CatalogProduct, bool) {
	p, ok := c.lru.Get(slug)
	if !ok {
		return nil, false
	}
	return &p, true
}

func (c *Cache) Set(p *domain.CatalogProduct) {
	c.lru.Add(p.Slug, *p)
}

func (c *Cache) Len() int { return c.lru.Len() }

func (c *Cache) Purge() { c.lru.Purge() }
