package cart

import (
	"context"
	"fmt"

	"github.com/TemirB/figurine-cart/internal/domain"
	"github.com/TemirB/figurine-cart/internal/pricing"
)

// PetError reports which pet of a multi-pet add failed.
type PetError struct {
	Index int
	Err   error
}

func (e *PetError) Error() string { return fmt.Sprintf("pet %d: %v", e.Index+1, e.Err) }

func (e *PetError) Unwrap() error { return e.Err }

// AddPets adds one line per pet in order, each tagged with its multi-pet
// discount. Every pet is validated before anything is sent. Lines added before
// a failure stay in the cart.
func (c *Client) AddPets(ctx context.Context, pets []pricing.Pet) (*domain.Order, error) {
	for i, p := range pets {
		if err := p.Validate(); err != nil {
			return nil, &PetError{Index: i, Err: err}
		}
	}

	var order *domain.Order
	for i, p := range pets {
		o, err := c.AddLine(ctx, p.VariantID, 1, pricing.Annotations(i, p))
		if err != nil {
			return nil, &PetError{Index: i, Err: err}
		}
		order = o
	}
	return order, nil
}
