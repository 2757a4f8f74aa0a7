package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/supportagent/catalog"
)

func TestProductDetails(t *testing.T) {
	t.Parallel()

	pd := &ProductDetails{Catalog: catalog.Default()}
	ctx := context.Background()

	assert.Equal(t, "get_product_details", pd.Name())

	res, err := pd.Call(ctx, "smartphone")
	require.NoError(t, err)
	assert.Contains(t, res, "camera")

	res, err = pd.Call(ctx, "HEADPHONES")
	require.NoError(t, err)
	assert.Contains(t, res, "noise cancellation")

	res, err = pd.Call(ctx, "drone")
	require.NoError(t, err)
	assert.Equal(t, DetailsNotFound, res)
}

func TestProductPrice(t *testing.T) {
	t.Parallel()

	pp := &ProductPrice{Catalog: catalog.Default()}
	ctx := context.Background()

	assert.Equal(t, "get_product_price", pp.Name())

	res, err := pp.Call(ctx, "headphones")
	require.NoError(t, err)
	assert.Equal(t, "$50", res)

	res, err = pp.Call(ctx, "Usb Charger")
	require.NoError(t, err)
	assert.Equal(t, "$10", res)

	res, err = pp.Call(ctx, "jetpack")
	require.NoError(t, err)
	assert.Equal(t, PriceNotFound, res)
}

func TestProductInformation(t *testing.T) {
	t.Parallel()

	pi := &ProductInformation{Catalog: catalog.Default()}
	ctx := context.Background()

	assert.Equal(t, "lookup_product_information", pi.Name())

	res, err := pi.Call(ctx, "speaker")
	require.NoError(t, err)
	assert.Equal(t, "SKU: G-SPKR-001, Inventory: 400 units", res)

	res, err = pi.Call(ctx, "hoverboard")
	require.NoError(t, err)
	assert.Equal(t, BackendInfoNotFound, res)
}

func TestAllKnownProductsNeverSentinel(t *testing.T) {
	t.Parallel()

	c := catalog.Default()
	ctx := context.Background()

	pd := &ProductDetails{Catalog: c}
	pp := &ProductPrice{Catalog: c}
	pi := &ProductInformation{Catalog: c}

	for _, name := range c.Products() {
		res, err := pd.Call(ctx, name)
		require.NoError(t, err)
		assert.NotEqual(t, DetailsNotFound, res, name)

		res, err = pp.Call(ctx, name)
		require.NoError(t, err)
		assert.NotEqual(t, PriceNotFound, res, name)

		res, err = pi.Call(ctx, name)
		require.NoError(t, err)
		assert.NotEqual(t, BackendInfoNotFound, res, name)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry(catalog.Default())

	defs := r.Definitions()
	assert.Len(t, defs, 3)

	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Function.Name)
	}
	assert.ElementsMatch(t, []string{
		"get_product_details",
		"get_product_price",
		"lookup_product_information",
	}, names)

	tl, ok := r.Lookup("get_product_price")
	require.True(t, ok)
	assert.Equal(t, "get_product_price", tl.Name())

	_, ok = r.Lookup("launch_missiles")
	assert.False(t, ok)
}
