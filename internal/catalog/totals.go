package catalog

import (
	"github.com/shopspring/decimal"

	"gostorefront/internal/domain"
)

// Pricing agrupa as constantes configuradas de frete e imposto.
type Pricing struct {
	ShippingFlatRate decimal.Decimal
	TaxRate          decimal.Decimal
}

// DefaultPricing corresponde aos valores da vitrine: frete 15.99 e imposto de 8%.
func DefaultPricing() Pricing {
	return Pricing{
		ShippingFlatRate: decimal.RequireFromString("15.99"),
		TaxRate:          decimal.RequireFromString("0.08"),
	}
}

// Totals guarda os valores exatos; o arredondamento acontece só em View.
type Totals struct {
	ItemCount int
	Subtotal  decimal.Decimal
	Shipping  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

// TotalsView é a forma exibida, com valores em centavos.
type TotalsView struct {
	ItemCount int    `json:"item_count"`
	Subtotal  string `json:"subtotal"`
	Shipping  string `json:"shipping_estimate"`
	Tax       string `json:"tax_estimate"`
	Total     string `json:"total"`
}

func ComputeTotals(lines []domain.CartLine, pricing Pricing) Totals {
	t := Totals{Subtotal: decimal.Zero, Shipping: decimal.Zero}
	for _, l := range lines {
		t.ItemCount += l.Quantity
		t.Subtotal = t.Subtotal.Add(l.LineTotal())
	}
	if t.Subtotal.IsPositive() {
		t.Shipping = pricing.ShippingFlatRate
	}
	t.Tax = t.Subtotal.Mul(pricing.TaxRate)
	t.Total = t.Subtotal.Add(t.Shipping).Add(t.Tax)
	return t
}

func (t Totals) View() TotalsView {
	return TotalsView{
		ItemCount: t.ItemCount,
		Subtotal:  FormatAmount(t.Subtotal),
		Shipping:  FormatAmount(t.Shipping),
		Tax:       FormatAmount(t.Tax),
		Total:     FormatAmount(t.Total),
	}
}

// FormatAmount arredonda para centavos.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
