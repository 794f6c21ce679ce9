package domain

import (
	"errors"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// SortKey enumera as ordenações disponíveis na listagem.
type SortKey string

const (
	SortFeatured   SortKey = "featured"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingDesc SortKey = "rating-desc"
)

// ParseSortKey aceita também os nomes usados pelo seletor da vitrine
// ("price-low", "price-high", "rating").
func ParseSortKey(s string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(SortFeatured):
		return SortFeatured, true
	case string(SortPriceAsc), "price-low":
		return SortPriceAsc, true
	case string(SortPriceDesc), "price-high":
		return SortPriceDesc, true
	case string(SortRatingDesc), "rating":
		return SortRatingDesc, true
	}
	return SortFeatured, false
}

var (
	ErrInvalidPriceRange = errors.New("o preço mínimo deve ser menor ou igual ao preço máximo")
	ErrNegativePriceMin  = errors.New("o preço mínimo não pode ser negativo")
	ErrInvalidMinRating  = errors.New("a avaliação mínima deve estar entre 0 e 5")
	ErrInvalidSortKey    = errors.New("opção de ordenação desconhecida")
)

// FilterState guarda as seleções de filtro de uma sessão de navegação.
type FilterState struct {
	PriceMin  decimal.Decimal `json:"price_min"`
	PriceMax  decimal.Decimal `json:"price_max"`
	Brands    []string        `json:"brands"`
	MinRating *float64        `json:"min_rating,omitempty"`
	Search    string          `json:"search"`
	Category  string          `json:"category,omitempty"`
	Sort      SortKey         `json:"sort"`
}

// DefaultFilterState devolve o estado inicial: faixa de preço completa e nenhum filtro.
func DefaultFilterState(ceiling decimal.Decimal) FilterState {
	return FilterState{
		PriceMin: decimal.Zero,
		PriceMax: ceiling,
		Brands:   []string{},
		Sort:     SortFeatured,
	}
}

// Reset restaura os padrões, incluindo a ordenação.
func (f *FilterState) Reset(ceiling decimal.Decimal) {
	*f = DefaultFilterState(ceiling)
}

// IsDefault indica se nenhum filtro restringe o catálogo além da faixa de preço completa.
func (f FilterState) IsDefault(ceiling decimal.Decimal) bool {
	return f.PriceMin.IsZero() && f.PriceMax.Equal(ceiling) && len(f.Brands) == 0 &&
		f.MinRating == nil && f.Search == "" && f.Category == "" && f.Sort == SortFeatured
}

// ToggleBrand adiciona a marca ao conjunto selecionado ou a remove se já estiver presente.
func (f *FilterState) ToggleBrand(brand string) {
	if i := slices.Index(f.Brands, brand); i >= 0 {
		f.Brands = slices.Delete(f.Brands, i, i+1)
		return
	}
	f.Brands = append(f.Brands, brand)
}

// HasBrand informa se a marca está selecionada.
func (f FilterState) HasBrand(brand string) bool {
	return slices.Contains(f.Brands, brand)
}

func (f *FilterState) SetPriceRange(min, max decimal.Decimal) error {
	if min.IsNegative() {
		return ErrNegativePriceMin
	}
	if min.GreaterThan(max) {
		return ErrInvalidPriceRange
	}
	f.PriceMin, f.PriceMax = min, max
	return nil
}

// SetMinRating com nil remove o limite.
func (f *FilterState) SetMinRating(rating *float64) error {
	if rating != nil && (*rating < MinRating || *rating > MaxRating) {
		return ErrInvalidMinRating
	}
	f.MinRating = rating
	return nil
}

// Validate verifica os invariantes do estado. Marcas repetidas são normalizadas.
func (f *FilterState) Validate() error {
	if f.PriceMin.IsNegative() {
		return ErrNegativePriceMin
	}
	if f.PriceMin.GreaterThan(f.PriceMax) {
		return ErrInvalidPriceRange
	}
	if f.MinRating != nil && (*f.MinRating < MinRating || *f.MinRating > MaxRating) {
		return ErrInvalidMinRating
	}
	key, ok := ParseSortKey(string(f.Sort))
	if !ok {
		return ErrInvalidSortKey
	}
	f.Sort = key

	seen := make(map[string]struct{}, len(f.Brands))
	brands := make([]string, 0, len(f.Brands))
	for _, b := range f.Brands {
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}
		brands = append(brands, b)
	}
	f.Brands = brands
	return nil
}

// Clone copia o conjunto de marcas e o ponteiro de avaliação.
func (f FilterState) Clone() FilterState {
	out := f
	out.Brands = slices.Clone(f.Brands)
	if f.MinRating != nil {
		r := *f.MinRating
		out.MinRating = &r
	}
	return out
}
