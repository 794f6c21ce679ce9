package domain

import (
	"errors"
	"slices"

	"github.com/shopspring/decimal"
)

var ErrInvalidQuantity = errors.New("a quantidade deve ser um inteiro não negativo")

// CartLine é a presença de um produto no carrinho.
// UnitPrice é capturado na inclusão e não acompanha mudanças posteriores do catálogo.
type CartLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// LineTotal é o valor exato da linha, sem arredondamento.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart mantém as linhas na ordem de inclusão. Nenhuma linha fica com quantidade < 1.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

func (c *Cart) index(productID string) int {
	return slices.IndexFunc(c.Lines, func(l CartLine) bool { return l.ProductID == productID })
}

// Line devolve a linha do produto, se existir.
func (c Cart) Line(productID string) (CartLine, bool) {
	if i := c.index(productID); i >= 0 {
		return c.Lines[i], true
	}
	return CartLine{}, false
}

// Add inclui qty unidades do produto. Se a linha já existe a quantidade é somada
// e o preço capturado originalmente é mantido.
func (c *Cart) Add(p Product, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if i := c.index(p.ID); i >= 0 {
		c.Lines[i].Quantity += qty
		return nil
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Quantity:  qty,
		UnitPrice: p.Price,
	})
	return nil
}

// SetQuantity substitui a quantidade da linha. q == 0 remove a linha; q < 0 é rejeitado.
// O booleano indica se alguma linha foi alterada (linha ausente é no-op).
func (c *Cart) SetQuantity(productID string, q int) (bool, error) {
	if q < 0 {
		return false, ErrInvalidQuantity
	}
	i := c.index(productID)
	if i < 0 {
		return false, nil
	}
	if q < 1 {
		c.Lines = slices.Delete(c.Lines, i, i+1)
		return true, nil
	}
	c.Lines[i].Quantity = q
	return true, nil
}

func (c *Cart) Increment(productID string) bool {
	l, ok := c.Line(productID)
	if !ok {
		return false
	}
	changed, _ := c.SetQuantity(productID, l.Quantity+1)
	return changed
}

// Decrement remove a linha quando a quantidade chegaria a zero.
func (c *Cart) Decrement(productID string) bool {
	l, ok := c.Line(productID)
	if !ok {
		return false
	}
	changed, _ := c.SetQuantity(productID, l.Quantity-1)
	return changed
}

func (c *Cart) Remove(productID string) bool {
	changed, _ := c.SetQuantity(productID, 0)
	return changed
}

func (c *Cart) Clear() {
	c.Lines = nil
}

// ItemCount soma as quantidades de todas as linhas.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) IsEmpty() bool { return len(c.Lines) == 0 }

func (c Cart) Clone() Cart {
	return Cart{Lines: slices.Clone(c.Lines)}
}
