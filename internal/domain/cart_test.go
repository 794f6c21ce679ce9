package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostorefront/internal/domain"
)

func product(id, price string) domain.Product {
	return domain.Product{ID: id, Name: "Produto " + id, Price: decimal.RequireFromString(price), InStock: true}
}

func TestCart_AddNewAndExistingLine(t *testing.T) {
	var c domain.Cart
	require.NoError(t, c.Add(product("1", "129.99"), 1))
	require.NoError(t, c.Add(product("2", "349.99"), 2))
	require.NoError(t, c.Add(product("1", "129.99"), 1))

	assert.Len(t, c.Lines, 2)
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.Equal(t, 4, c.ItemCount())
}

// TestCart_PriceSnapshot verifica que o preço capturado não acompanha o catálogo.
func TestCart_PriceSnapshot(t *testing.T) {
	var c domain.Cart
	require.NoError(t, c.Add(product("1", "100.00"), 1))
	require.NoError(t, c.Add(product("1", "80.00"), 1))

	line, ok := c.Line("1")
	require.True(t, ok)
	assert.Equal(t, "100", line.UnitPrice.String())
	assert.Equal(t, "200", line.LineTotal().String())
}

func TestCart_AddRejectsNonPositiveQuantity(t *testing.T) {
	var c domain.Cart
	assert.ErrorIs(t, c.Add(product("1", "10"), 0), domain.ErrInvalidQuantity)
	assert.True(t, c.IsEmpty())
}

// TestCart_SetQuantityZeroRemovesLine cobre a regra "abaixo de 1 remove a linha".
func TestCart_SetQuantityZeroRemovesLine(t *testing.T) {
	var c domain.Cart
	require.NoError(t, c.Add(product("1", "129.99"), 3))

	changed, err := c.SetQuantity("1", 0)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.ItemCount())
}

func TestCart_SetQuantityNegativeIsRejected(t *testing.T) {
	var c domain.Cart
	require.NoError(t, c.Add(product("1", "10"), 2))

	changed, err := c.SetQuantity("1", -3)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.False(t, changed)
	assert.Equal(t, 2, c.ItemCount())
}

func TestCart_SetQuantityReplaces(t *testing.T) {
	var c domain.Cart
	require.NoError(t, c.Add(product("1", "10"), 2))

	changed, err := c.SetQuantity("1", 7)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 7, c.ItemCount())
}

func TestCart_AbsentLineIsNoop(t *testing.T) {
	var c domain.Cart
	require.NoError(t, c.Add(product("1", "10"), 1))

	changed, err := c.SetQuantity("nao-existe", 4)
	assert.NoError(t, err)
	assert.False(t, changed)
	assert.False(t, c.Decrement("nao-existe"))
	assert.False(t, c.Increment("nao-existe"))
	assert.False(t, c.Remove("nao-existe"))
	assert.Equal(t, 1, c.ItemCount())
}

func TestCart_IncrementDecrement(t *testing.T) {
	var c domain.Cart
	require.NoError(t, c.Add(product("1", "10"), 1))

	assert.True(t, c.Increment("1"))
	assert.Equal(t, 2, c.ItemCount())

	assert.True(t, c.Decrement("1"))
	assert.True(t, c.Decrement("1"))
	assert.True(t, c.IsEmpty(), "decrementar a partir de 1 remove a linha")
}

func TestCart_CloneIsIndependent(t *testing.T) {
	var c domain.Cart
	require.NoError(t, c.Add(product("1", "10"), 1))

	cp := c.Clone()
	cp.Increment("1")

	assert.Equal(t, 1, c.ItemCount())
	assert.Equal(t, 2, cp.ItemCount())
}
