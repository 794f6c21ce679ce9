package sessionservice

import (
	"context"

	"gostorefront/internal/catalog"
	"gostorefront/internal/domain"
	apperror "gostorefront/internal/errors"
)

func (s *Service) Filters(ctx context.Context, id string) (domain.FilterState, error) {
	session, err := s.store.Load(ctx, id)
	if err != nil {
		return domain.FilterState{}, err
	}
	return session.Filters, nil
}

// UpdateFilters substitui o estado de filtros inteiro. Estado inválido é rejeitado sem alterar a sessão.
func (s *Service) UpdateFilters(ctx context.Context, id string, state domain.FilterState) (domain.FilterState, error) {
	if state.Brands == nil {
		state.Brands = []string{}
	}
	if err := state.Validate(); err != nil {
		return domain.FilterState{}, apperror.NewValidationError(err.Error())
	}

	session, err := s.update(ctx, id, func(sess *domain.Session) error {
		sess.Filters = state
		return nil
	})
	if err != nil {
		return domain.FilterState{}, err
	}
	return session.Filters, nil
}

// ResetFilters volta à faixa de preço completa, sem marcas, avaliação, busca e com ordenação "featured".
func (s *Service) ResetFilters(ctx context.Context, id string) (domain.FilterState, error) {
	ceiling, err := s.ceiling(ctx)
	if err != nil {
		return domain.FilterState{}, err
	}
	session, err := s.update(ctx, id, func(sess *domain.Session) error {
		sess.ResetFilters(ceiling)
		return nil
	})
	if err != nil {
		return domain.FilterState{}, err
	}
	return session.Filters, nil
}

// ToggleBrand seleciona a marca ou a desmarca se já estiver selecionada.
func (s *Service) ToggleBrand(ctx context.Context, id, brand string) (domain.FilterState, error) {
	if brand == "" {
		return domain.FilterState{}, apperror.NewValidationError("A marca é obrigatória.")
	}
	session, err := s.update(ctx, id, func(sess *domain.Session) error {
		sess.Filters.ToggleBrand(brand)
		return nil
	})
	if err != nil {
		return domain.FilterState{}, err
	}
	return session.Filters, nil
}

// Listing aplica os filtros da sessão ao catálogo atual. Uma sessão ainda no estado
// padrão passa a usar o teto do catálogo atual, para não esconder produtos novos mais caros.
func (s *Service) Listing(ctx context.Context, id string) (catalog.ListingView, error) {
	session, err := s.store.Load(ctx, id)
	if err != nil {
		return catalog.ListingView{}, err
	}
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return catalog.ListingView{}, err
	}

	if session.FollowCeiling(catalog.PriceCeiling(products, s.opts.PriceFloor)) {
		session.UpdatedAt = s.now().UTC()
		if err := s.store.Save(ctx, session); err != nil {
			return catalog.ListingView{}, err
		}
		s.logger.Debug("Teto de preço da sessão atualizado.", map[string]interface{}{"session_id": id, "ceiling": session.Ceiling.String()})
	}
	return catalog.NewListingView(products, catalog.Browse(products, &session.Filters)), nil
}
