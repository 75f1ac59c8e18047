package domain

type OrderState string

const (
	StateAddingItems       OrderState = "AddingItems"
	StateArrangingPayment  OrderState = "ArrangingPayment"
	StatePaymentAuthorized OrderState = "PaymentAuthorized"
	StatePaymentSettled    OrderState = "PaymentSettled"
	StateShipped           OrderState = "Shipped"
	StateDelivered         OrderState = "Delivered"
	StateCancelled         OrderState = "Cancelled"
)

// Modifiable reports whether lines may be edited in this state.
func (s OrderState) Modifiable() bool {
	return s == StateAddingItems
}

type Asset struct {
	Preview string `json:"preview"`
}

type Product struct {
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	FeaturedAsset *Asset `json:"featuredAsset,omitempty"`
}

type Variant struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Price   int64   `json:"price"`
	Product Product `json:"product"`
}

// Annotations are the free-form per-line fields used for fulfillment.
type Annotations struct {
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
	PetPhotos           []string `json:"petPhotos,omitempty"`
}

func (a *Annotations) Empty() bool {
	return a == nil || (a.SpecialInstructions == "" && len(a.PetPhotos) == 0)
}

type Line struct {
	ID               string      `json:"id"`
	Quantity         int         `json:"quantity"`
	LinePrice        int64       `json:"linePrice"`
	LinePriceWithTax int64       `json:"linePriceWithTax"`
	Annotations      Annotations `json:"customFields"`
	Variant          Variant     `json:"productVariant"`
}

type TaxLine struct {
	Description string  `json:"description"`
	TaxRate     float64 `json:"taxRate"`
	TaxTotal    int64   `json:"taxTotal"`
}

// Order is the client-side snapshot of the server-owned order aggregate.
// Amounts are in minor currency units.
type Order struct {
	ID              string     `json:"id"`
	Code            string     `json:"code"`
	State           OrderState `json:"state"`
	SubTotal        int64      `json:"subTotal"`
	SubTotalWithTax int64      `json:"subTotalWithTax"`
	Total           int64      `json:"total"`
	TotalWithTax    int64      `json:"totalWithTax"`
	TotalQuantity   int        `json:"totalQuantity"`
	Shipping        int64      `json:"shipping"`
	ShippingWithTax int64      `json:"shippingWithTax"`
	TaxSummary      []TaxLine  `json:"taxSummary"`
	Lines           []Line     `json:"lines"`
}

func (o *Order) Line(id string) (Line, bool) {
	if o == nil {
		return Line{}, false
	}
	for _, l := range o.Lines {
		if l.ID == id {
			return l, true
		}
	}
	return Line{}, false
}

// Clone returns a deep copy so callers can't reach into the mirror.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	if o.TaxSummary != nil {
		c.TaxSummary = append([]TaxLine(nil), o.TaxSummary...)
	}
	if o.Lines != nil {
		c.Lines = make([]Line, len(o.Lines))
		for i, l := range o.Lines {
			c.Lines[i] = l
			if l.Annotations.PetPhotos != nil {
				c.Lines[i].Annotations.PetPhotos = append([]string(nil), l.Annotations.PetPhotos...)
			}
			if l.Variant.Product.FeaturedAsset != nil {
				fa := *l.Variant.Product.FeaturedAsset
				c.Lines[i].Variant.Product.FeaturedAsset = &fa
			}
		}
	}
	return &c
}
