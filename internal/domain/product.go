package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um item do catálogo da loja.
// É imutável durante um ciclo de renderização: nenhum componente altera um Product.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"` // Presente apenas quando há desconto
	Image         string           `json:"image"`
	Rating        float64          `json:"rating"`
	ReviewCount   int              `json:"review_count"`
	Brand         string           `json:"brand"`
	Category      string           `json:"category"`
	InStock       bool             `json:"in_stock"`
	IsNew         bool             `json:"is_new"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

const (
	MinRating = 0.0
	MaxRating = 5.0
)

var (
	ErrProductIDRequired   = errors.New("id e nome do produto são obrigatórios")
	ErrNegativePrice       = errors.New("o preço do produto não pode ser negativo")
	ErrRatingOutOfRange    = errors.New("a avaliação deve estar entre 0 e 5")
	ErrNegativeReviewCount = errors.New("o número de avaliações não pode ser negativo")
	ErrOriginalBelowPrice  = errors.New("o preço original deve ser maior ou igual ao preço atual")
)

// Validate aplica as regras de ingestão. O pipeline de catálogo não revalida produtos.
func (p Product) Validate() error {
	if p.ID == "" || p.Name == "" {
		return ErrProductIDRequired
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Rating < MinRating || p.Rating > MaxRating {
		return ErrRatingOutOfRange
	}
	if p.ReviewCount < 0 {
		return ErrNegativeReviewCount
	}
	if p.OriginalPrice != nil && p.OriginalPrice.LessThan(p.Price) {
		return ErrOriginalBelowPrice
	}
	return nil
}

// DiscountPercent é derivado do preço original, nunca armazenado.
func (p Product) DiscountPercent() int {
	if p.OriginalPrice == nil || !p.OriginalPrice.IsPositive() || !p.OriginalPrice.GreaterThan(p.Price) {
		return 0
	}
	pct := p.OriginalPrice.Sub(p.Price).Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

// DisplayRating limita a avaliação ao intervalo [0,5] apenas para exibição.
func (p Product) DisplayRating() float64 {
	switch {
	case p.Rating < MinRating:
		return MinRating
	case p.Rating > MaxRating:
		return MaxRating
	default:
		return p.Rating
	}
}

// ProductRepository é o contrato da fonte de dados do catálogo.
type ProductRepository interface {
	Save(ctx context.Context, product Product) (Product, error)
	FindByID(ctx context.Context, id string) (Product, error)
	FindAll(ctx context.Context) ([]Product, error)
}
