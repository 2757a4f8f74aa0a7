// Package catalog holds the static product data the support tools answer from.
package catalog

import "strings"

// Catalog is the read-only set of product records. It is built once at
// startup and is safe for concurrent readers; nothing mutates it afterwards.
type Catalog struct {
	details     map[string]string
	prices      map[string]string
	backendInfo map[string]string
}

// Default returns the built-in product catalog: smartphone, usb charger,
// shoes, headphones and speaker.
func Default() *Catalog {
	return &Catalog{
		details: map[string]string{
			"smartphone":  "A cutting-edge smartphone with advanced camera features and lightning-fast processing.",
			"usb charger": "A super fast and light usb charger",
			"shoes":       "High-performance running shoes designed for comfort, support, and speed.",
			"headphones":  "Wireless headphones with advanced noise cancellation technology for immersive audio.",
			"speaker":     "A voice-controlled smart speaker that plays music, sets alarms, and controls smart home devices.",
		},
		prices: map[string]string{
			"smartphone":  "500",
			"usb charger": "10",
			"shoes":       "100",
			"headphones":  "50",
			"speaker":     "80",
		},
		backendInfo: map[string]string{
			"smartphone":  "SKU: G-SMRT-001, Inventory: 550 units",
			"usb charger": "SKU: G-CHRG-003, Inventory: 1200 units",
			"shoes":       "SKU: G-SHOE-007, Inventory: 800 units",
			"headphones":  "SKU: G-HDPN-002, Inventory: 950 units",
			"speaker":     "SKU: G-SPKR-001, Inventory: 400 units",
		},
	}
}

// Details returns the customer-facing description of a product.
// The lookup is case-insensitive.
func (c *Catalog) Details(name string) (string, bool) {
	v, ok := c.details[normalize(name)]
	return v, ok
}

// Price returns the price of a product as a bare number string.
func (c *Catalog) Price(name string) (string, bool) {
	v, ok := c.prices[normalize(name)]
	return v, ok
}

// BackendInfo returns the internal SKU and inventory record of a product.
func (c *Catalog) BackendInfo(name string) (string, bool) {
	v, ok := c.backendInfo[normalize(name)]
	return v, ok
}

// Products returns the known product names, in no particular order.
func (c *Catalog) Products() []string {
	names := make([]string, 0, len(c.details))
	for name := range c.details {
		names = append(names, name)
	}
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
