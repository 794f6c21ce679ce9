package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostorefront/internal/catalog"
	"gostorefront/internal/domain"
)

func line(id, price string, qty int) domain.CartLine {
	return domain.CartLine{ProductID: id, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

// TestComputeTotals_Example reproduz o carrinho de referência da gaveta.
func TestComputeTotals_Example(t *testing.T) {
	lines := []domain.CartLine{line("1", "129.99", 1), line("2", "349.99", 2)}

	totals := catalog.ComputeTotals(lines, catalog.DefaultPricing())

	assert.Equal(t, 3, totals.ItemCount)
	assert.Equal(t, "829.97", totals.Subtotal.String())
	assert.Equal(t, "15.99", totals.Shipping.String())
	assert.Equal(t, "66.3976", totals.Tax.String(), "o imposto não é arredondado internamente")

	view := totals.View()
	assert.Equal(t, catalog.TotalsView{
		ItemCount: 3,
		Subtotal:  "829.97",
		Shipping:  "15.99",
		Tax:       "66.40",
		Total:     "912.36",
	}, view)
}

func TestComputeTotals_EmptyCartHasNoShipping(t *testing.T) {
	totals := catalog.ComputeTotals(nil, catalog.DefaultPricing())

	assert.Equal(t, 0, totals.ItemCount)
	assert.True(t, totals.Shipping.IsZero())
	assert.Equal(t, "0.00", totals.View().Total)
}

// TestComputeTotals_NoCumulativeRounding soma muitas linhas com frações de centavo.
func TestComputeTotals_NoCumulativeRounding(t *testing.T) {
	lines := make([]domain.CartLine, 0, 10)
	for i := 0; i < 10; i++ {
		lines = append(lines, line(string(rune('a'+i)), "0.333", 1))
	}
	pricing := catalog.Pricing{ShippingFlatRate: decimal.Zero, TaxRate: decimal.Zero}

	totals := catalog.ComputeTotals(lines, pricing)
	assert.Equal(t, "3.33", totals.Subtotal.String())
	assert.Equal(t, "3.33", totals.View().Total)
}

func TestComputeTotals_AfterRemovingLastLine(t *testing.T) {
	var cart domain.Cart
	require.NoError(t, cart.Add(domain.Product{ID: "1", Price: decimal.RequireFromString("129.99")}, 1))
	_, err := cart.SetQuantity("1", 0)
	require.NoError(t, err)

	totals := catalog.ComputeTotals(cart.Lines, catalog.DefaultPricing())
	assert.Equal(t, 0, totals.ItemCount)
	assert.Equal(t, "0.00", totals.View().Subtotal)
	assert.Equal(t, "0.00", totals.View().Shipping)
}

func TestNewProductView(t *testing.T) {
	orig := decimal.RequireFromString("159.99")
	prod := domain.Product{
		ID:            "1",
		Name:          "Wireless Bluetooth Headphones",
		Price:         decimal.RequireFromString("129.99"),
		OriginalPrice: &orig,
		Rating:        5.4,
		ReviewCount:   128,
	}

	v := catalog.NewProductView(prod)
	assert.Equal(t, "129.99", v.Price)
	assert.Equal(t, "159.99", v.OriginalPrice)
	assert.Equal(t, 19, v.DiscountPercent)
	assert.Equal(t, 5.0, v.Rating)
}
