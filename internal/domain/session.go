package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Session é o estado efêmero de uma sessão de navegação: filtros, carrinho e carrossel.
// Pertence exclusivamente à sessão que o criou e expira com ela.
// Ceiling guarda o teto de preço usado na última (re)inicialização dos filtros.
type Session struct {
	ID        string          `json:"id"`
	Filters   FilterState     `json:"filters"`
	Cart      Cart            `json:"cart"`
	Carousel  CarouselWindow  `json:"carousel"`
	Ceiling   decimal.Decimal `json:"price_ceiling"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Clone devolve uma cópia profunda, usada pelos stores em memória.
func (s Session) Clone() Session {
	out := s
	out.Filters = s.Filters.Clone()
	out.Cart = s.Cart.Clone()
	return out
}

// ResetFilters restaura os filtros padrão para o teto informado.
func (s *Session) ResetFilters(ceiling decimal.Decimal) {
	s.Filters.Reset(ceiling)
	s.Ceiling = ceiling
}

// FollowCeiling acompanha um novo teto de preço enquanto os filtros seguem no padrão.
// Devolve true quando a sessão mudou.
func (s *Session) FollowCeiling(ceiling decimal.Decimal) bool {
	if s.Ceiling.Equal(ceiling) || !s.Filters.IsDefault(s.Ceiling) {
		return false
	}
	s.ResetFilters(ceiling)
	return true
}

// SessionStore guarda sessões com expiração.
type SessionStore interface {
	Load(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, session Session) error
	Delete(ctx context.Context, id string) error
}
