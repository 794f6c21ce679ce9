package sessionservice

import (
	"context"
	stderrors "errors"
	"fmt"

	"gostorefront/internal/catalog"
	"gostorefront/internal/domain"
	apperror "gostorefront/internal/errors"
)

type CartLineView struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// CartView é o carrinho com os totais estimados.
type CartView struct {
	Lines   []CartLineView     `json:"lines"`
	Totals  catalog.TotalsView `json:"totals"`
	IsEmpty bool               `json:"is_empty"`
}

func (s *Service) newCartView(cart domain.Cart) CartView {
	lines := make([]CartLineView, len(cart.Lines))
	for i, l := range cart.Lines {
		lines[i] = CartLineView{
			ProductID: l.ProductID,
			Name:      l.Name,
			Image:     l.Image,
			Quantity:  l.Quantity,
			UnitPrice: catalog.FormatAmount(l.UnitPrice),
			LineTotal: catalog.FormatAmount(l.LineTotal()),
		}
	}
	return CartView{
		Lines:   lines,
		Totals:  catalog.ComputeTotals(cart.Lines, s.opts.Pricing).View(),
		IsEmpty: cart.IsEmpty(),
	}
}

func (s *Service) Cart(ctx context.Context, id string) (CartView, error) {
	session, err := s.store.Load(ctx, id)
	if err != nil {
		return CartView{}, err
	}
	return s.newCartView(session.Cart), nil
}

func (s *Service) updateCart(ctx context.Context, id string, fn func(*domain.Cart) error) (CartView, error) {
	session, err := s.update(ctx, id, func(sess *domain.Session) error {
		return fn(&sess.Cart)
	})
	if err != nil {
		return CartView{}, err
	}
	return s.newCartView(session.Cart), nil
}

// AddToCart inclui qty unidades do produto. Produtos fora de estoque são recusados.
func (s *Service) AddToCart(ctx context.Context, id, productID string, qty int) (CartView, error) {
	if qty < 1 {
		return CartView{}, apperror.NewValidationError("A quantidade deve ser pelo menos 1.")
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return CartView{}, err
	}
	if !product.InStock {
		return CartView{}, apperror.NewConflictError(fmt.Sprintf("Produto %s está fora de estoque.", productID))
	}

	view, err := s.updateCart(ctx, id, func(c *domain.Cart) error {
		return c.Add(product, qty)
	})
	if err != nil {
		return CartView{}, err
	}
	s.logger.Debug("Produto adicionado ao carrinho.", map[string]interface{}{
		"session_id": id,
		"product_id": productID,
		"quantity":   qty,
	})
	return view, nil
}

// SetQuantity substitui a quantidade da linha; zero remove a linha.
func (s *Service) SetQuantity(ctx context.Context, id, productID string, qty int) (CartView, error) {
	return s.updateCart(ctx, id, func(c *domain.Cart) error {
		_, err := c.SetQuantity(productID, qty)
		if stderrors.Is(err, domain.ErrInvalidQuantity) {
			return apperror.NewValidationError(err.Error())
		}
		return err
	})
}

func (s *Service) Increment(ctx context.Context, id, productID string) (CartView, error) {
	return s.updateCart(ctx, id, func(c *domain.Cart) error {
		c.Increment(productID)
		return nil
	})
}

// Decrement remove a linha quando a quantidade chega a zero.
func (s *Service) Decrement(ctx context.Context, id, productID string) (CartView, error) {
	return s.updateCart(ctx, id, func(c *domain.Cart) error {
		c.Decrement(productID)
		return nil
	})
}

func (s *Service) RemoveItem(ctx context.Context, id, productID string) (CartView, error) {
	return s.updateCart(ctx, id, func(c *domain.Cart) error {
		c.Remove(productID)
		return nil
	})
}

func (s *Service) ClearCart(ctx context.Context, id string) (CartView, error) {
	return s.updateCart(ctx, id, func(c *domain.Cart) error {
		c.Clear()
		return nil
	})
}
