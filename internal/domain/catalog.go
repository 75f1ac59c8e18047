package domain

import (
	"errors"
	"io"
)

var ErrProductNotFound = errors.New("product not found")

type OptionGroupRef struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type VariantOption struct {
	ID    string         `json:"id"`
	Code  string         `json:"code"`
	Name  string         `json:"name"`
	Group OptionGroupRef `json:"group"`
}

type OptionGroup struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Options []struct {
		ID   string `json:"id"`
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"options"`
}

type CatalogVariant struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Price        int64           `json:"price"`
	PriceWithTax int64           `json:"priceWithTax,omitempty"`
	CurrencyCode string          `json:"currencyCode"`
	StockLevel   string          `json:"stockLevel,omitempty"`
	Options      []VariantOption `json:"options,omitempty"`
	Enabled      *bool           `json:"enabled,omitempty"`
}

type ProductAsset struct {
	ID      string `json:"id"`
	Preview string `json:"preview"`
	Source  string `json:"source"`
}

type CatalogProduct struct {
	ID            string           `json:"id"`
	Slug          string           `json:"slug"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	FeaturedAsset *Asset           `json:"featuredAsset,omitempty"`
	Assets        []ProductAsset   `json:"assets,omitempty"`
	OptionGroups  []OptionGroup    `json:"optionGroups,omitempty"`
	Variants      []CatalogVariant `json:"variants"`
}

// Photo is one pet photo on its way to the Shop API.
type Photo struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type UploadedAsset struct {
	ID      string `json:"id"`
	Preview string `json:"preview"`
}
