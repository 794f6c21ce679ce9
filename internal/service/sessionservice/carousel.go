package sessionservice

import (
	"context"

	"gostorefront/internal/catalog"
	"gostorefront/internal/domain"
)

// PageIndicator é um ponto de paginação do carrossel.
type PageIndicator struct {
	Page   int  `json:"page"`
	Active bool `json:"active"`
}

// CarouselView é a janela visível dos destaques.
type CarouselView struct {
	Products    []catalog.ProductView `json:"products"`
	Offset      int                   `json:"offset"`
	PageSize    int                   `json:"page_size"`
	Total       int                   `json:"total"`
	CanPrevious bool                  `json:"can_previous"`
	CanNext     bool                  `json:"can_next"`
	Pages       []PageIndicator       `json:"pages"`
}

func newCarouselView(w domain.CarouselWindow, featured []domain.Product) CarouselView {
	total := len(featured)
	w.Clamp(total)

	pages := make([]PageIndicator, w.PageCount(total))
	for i := range pages {
		pages[i] = PageIndicator{Page: i, Active: w.ActivePage(i)}
	}
	return CarouselView{
		Products:    catalog.NewProductViews(w.Visible(featured)),
		Offset:      w.Offset,
		PageSize:    w.PageSize,
		Total:       total,
		CanPrevious: w.CanPrevious(),
		CanNext:     w.CanNext(total),
		Pages:       pages,
	}
}

// featured devolve os destaques sem filtros, na ordem do catálogo.
func (s *Service) featured(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Browse(products, nil).Products, nil
}

func (s *Service) Carousel(ctx context.Context, id string) (CarouselView, error) {
	session, err := s.store.Load(ctx, id)
	if err != nil {
		return CarouselView{}, err
	}
	featured, err := s.featured(ctx)
	if err != nil {
		return CarouselView{}, err
	}
	return newCarouselView(session.Carousel, featured), nil
}

func (s *Service) moveCarousel(ctx context.Context, id string, move func(w *domain.CarouselWindow, total int)) (CarouselView, error) {
	featured, err := s.featured(ctx)
	if err != nil {
		return CarouselView{}, err
	}
	session, err := s.update(ctx, id, func(sess *domain.Session) error {
		sess.Carousel.Clamp(len(featured))
		move(&sess.Carousel, len(featured))
		return nil
	})
	if err != nil {
		return CarouselView{}, err
	}
	return newCarouselView(session.Carousel, featured), nil
}

// CarouselNext avança um item; na última janela não faz nada.
func (s *Service) CarouselNext(ctx context.Context, id string) (CarouselView, error) {
	return s.moveCarousel(ctx, id, func(w *domain.CarouselWindow, total int) { w.Next(total) })
}

// CarouselPrevious recua um item; no início não faz nada.
func (s *Service) CarouselPrevious(ctx context.Context, id string) (CarouselView, error) {
	return s.moveCarousel(ctx, id, func(w *domain.CarouselWindow, _ int) { w.Previous() })
}

// CarouselPage salta para o indicador page. Índices fora do intervalo são limitados.
func (s *Service) CarouselPage(ctx context.Context, id string, page int) (CarouselView, error) {
	return s.moveCarousel(ctx, id, func(w *domain.CarouselWindow, total int) { w.JumpToPage(page, total) })
}
