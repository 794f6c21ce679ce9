package catalog

import "gostorefront/internal/domain"

// ProductView é o cartão de produto pronto para renderizar.
type ProductView struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           string  `json:"price"`
	OriginalPrice   string  `json:"original_price,omitempty"`
	DiscountPercent int     `json:"discount_percent,omitempty"`
	Image           string  `json:"image"`
	Rating          float64 `json:"rating"`
	ReviewCount     int     `json:"review_count"`
	Brand           string  `json:"brand"`
	Category        string  `json:"category"`
	InStock         bool    `json:"in_stock"`
	IsNew           bool    `json:"is_new"`
}

func NewProductView(p domain.Product) ProductView {
	v := ProductView{
		ID:              p.ID,
		Name:            p.Name,
		Price:           FormatAmount(p.Price),
		DiscountPercent: p.DiscountPercent(),
		Image:           p.Image,
		Rating:          p.DisplayRating(),
		ReviewCount:     p.ReviewCount,
		Brand:           p.Brand,
		Category:        p.Category,
		InStock:         p.InStock,
		IsNew:           p.IsNew,
	}
	if p.OriginalPrice != nil {
		v.OriginalPrice = FormatAmount(*p.OriginalPrice)
	}
	return v
}

func NewProductViews(products []domain.Product) []ProductView {
	out := make([]ProductView, len(products))
	for i, p := range products {
		out[i] = NewProductView(p)
	}
	return out
}

// ListingView é a resposta da grade: cartões, contadores e opções de marca.
type ListingView struct {
	Products []ProductView `json:"products"`
	Showing  int           `json:"showing"`
	Total    int           `json:"total"`
	Brands   []string      `json:"brands"`
}

// NewListingView monta a grade; as marcas vêm do catálogo completo, não do resultado filtrado.
func NewListingView(all []domain.Product, res Result) ListingView {
	return ListingView{
		Products: NewProductViews(res.Products),
		Showing:  res.Showing,
		Total:    res.Total,
		Brands:   UniqueBrands(all),
	}
}
