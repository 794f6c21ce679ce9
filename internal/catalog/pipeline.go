// Package catalog implementa o view-model da vitrine: filtragem, ordenação,
// extração de marcas e totais do carrinho. Todas as funções são puras.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"gostorefront/internal/domain"
)

// Result é a sequência a exibir junto com os contadores "Mostrando X de Y".
type Result struct {
	Products []domain.Product `json:"products"`
	Showing  int              `json:"showing"`
	Total    int              `json:"total"`
}

// Apply filtra e ordena products segundo state. A entrada nunca é modificada.
func Apply(products []domain.Product, state domain.FilterState) Result {
	search := strings.ToLower(state.Search)

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, state, search) {
			filtered = append(filtered, p)
		}
	}
	Sort(filtered, state.Sort)

	return Result{Products: filtered, Showing: len(filtered), Total: len(products)}
}

// Browse é a entrada única usada pela grade e pelo carrossel.
// state nil desabilita os filtros e preserva a ordem de entrada.
func Browse(products []domain.Product, state *domain.FilterState) Result {
	if state == nil {
		out := slices.Clone(products)
		if out == nil {
			out = []domain.Product{}
		}
		return Result{Products: out, Showing: len(out), Total: len(products)}
	}
	return Apply(products, *state)
}

func matches(p domain.Product, state domain.FilterState, search string) bool {
	if p.Price.LessThan(state.PriceMin) || p.Price.GreaterThan(state.PriceMax) {
		return false
	}
	if len(state.Brands) > 0 && !slices.Contains(state.Brands, p.Brand) {
		return false
	}
	if state.MinRating != nil && p.Rating < *state.MinRating {
		return false
	}
	if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
		return false
	}
	if state.Category != "" && !strings.EqualFold(state.Category, p.Category) {
		return false
	}
	return true
}

// Sort ordena in-place de forma estável. Empates e "featured" mantêm a ordem de entrada.
func Sort(products []domain.Product, key domain.SortKey) {
	switch key {
	case domain.SortPriceAsc:
		slices.SortStableFunc(products, func(a, b domain.Product) int { return a.Price.Cmp(b.Price) })
	case domain.SortPriceDesc:
		slices.SortStableFunc(products, func(a, b domain.Product) int { return b.Price.Cmp(a.Price) })
	case domain.SortRatingDesc:
		slices.SortStableFunc(products, func(a, b domain.Product) int { return cmp.Compare(b.Rating, a.Rating) })
	}
}

// UniqueBrands devolve as marcas sem repetição, na ordem em que aparecem.
func UniqueBrands(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	brands := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	return brands
}

// PriceCeiling é o teto da faixa de preço padrão: o maior entre floor e o preço mais alto.
func PriceCeiling(products []domain.Product, floor decimal.Decimal) decimal.Decimal {
	ceiling := floor
	for _, p := range products {
		if p.Price.GreaterThan(ceiling) {
			ceiling = p.Price
		}
	}
	return ceiling
}
