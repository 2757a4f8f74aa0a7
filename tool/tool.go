// Package tool provides the product lookup tools exposed to the support agent.
//
// Each tool is a pure function over the static catalog: it lower-cases the
// product name, looks it up in one of the catalog tables, and returns either
// the record or a fixed "not found" sentinel. Unknown products are a normal
// result, never an error, so the model can answer in natural language.
package tool

import (
	"context"

	"github.com/smallnest/supportagent/catalog"
)

// Sentinel strings returned when a product is not in the catalog.
const (
	DetailsNotFound     = "Product details not found."
	PriceNotFound       = "Price not found."
	BackendInfoNotFound = "Backend information not found."
)

// ProductDetails gathers the customer-facing description of a product.
type ProductDetails struct {
	Catalog *catalog.Catalog
}

func (t *ProductDetails) Name() string {
	return "get_product_details"
}

func (t *ProductDetails) Description() string {
	return "Gathers details about a product in the catalog. " +
		"Input is the product name (e.g., smartphone, usb charger, shoes, headphones, speaker)."
}

func (t *ProductDetails) Call(ctx context.Context, input string) (string, error) {
	details, ok := t.Catalog.Details(input)
	if !ok {
		return DetailsNotFound, nil
	}
	return details, nil
}

// ProductPrice gathers the price of a product.
type ProductPrice struct {
	Catalog *catalog.Catalog
}

func (t *ProductPrice) Name() string {
	return "get_product_price"
}

func (t *ProductPrice) Description() string {
	return "Gathers the price of a product. Input is the product name."
}

func (t *ProductPrice) Call(ctx context.Context, input string) (string, error) {
	price, ok := t.Catalog.Price(input)
	if !ok {
		return PriceNotFound, nil
	}
	return "$" + price, nil
}

// ProductInformation looks up backend information for a product,
// including SKU and inventory.
type ProductInformation struct {
	Catalog *catalog.Catalog
}

func (t *ProductInformation) Name() string {
	return "lookup_product_information"
}

func (t *ProductInformation) Description() string {
	return "Looks up internal information for a product in the catalog, such as SKU and inventory. " +
		"Input is the product name."
}

func (t *ProductInformation) Call(ctx context.Context, input string) (string, error) {
	info, ok := t.Catalog.BackendInfo(input)
	if !ok {
		return BackendInfoNotFound, nil
	}
	return info, nil
}
