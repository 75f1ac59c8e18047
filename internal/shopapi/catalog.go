package shopapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/TemirB/figurine-cart/internal/domain"
)

var ErrCatalog = errors.New("catalog query failed")

// Products lists up to take products. Catalog reads are anonymous.
func (c *Client) Products(ctx context.Context, take int) ([]domain.CatalogProduct, error) {
	var vars map[string]any
	if take > 0 {
		vars = map[string]any{"options": map[string]any{"take": take}}
	}
	raw, err := c.catalogPayload(ctx, opProducts, vars)
	if err != nil {
		return nil, err
	}
	var list struct {
		Items      []domain.CatalogProduct `json:"items"`
		TotalItems int                     `json:"totalItems"`
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: decode products: %v", ErrCatalog, err)
	}
	return list.Items, nil
}

func (c *Client) ProductBySlug(ctx context.Context, slug string) (*domain.CatalogProduct, error) {
	raw, err := c.catalogPayload(ctx, opProductBySlug, map[string]any{"slug": slug})
	if err != nil {
		return nil, err
	}
	var p *domain.CatalogProduct
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: decode product: %v", ErrCatalog, err)
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (c *Client) catalogPayload(ctx context.Context, op operation, vars map[string]any) (json.RawMessage, error) {
	env, _, fail := c.query(ctx, "", op, vars)
	if fail != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalog, fail)
	}
	raw, fail := env.payload(op.field)
	if fail != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalog, fail)
	}
	return raw, nil
}
