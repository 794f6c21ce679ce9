package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gostorefront/internal/api/product"
	"gostorefront/internal/api/router"
	"gostorefront/internal/api/session"
	"gostorefront/internal/catalog"
	"gostorefront/internal/domain"
	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/logger"
	"gostorefront/internal/pkg/token"
	"gostorefront/internal/repository/sessionrepo"
	"gostorefront/internal/service/productservice"
	"gostorefront/internal/service/sessionservice"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, p domain.Product) (domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func products() []domain.Product {
	orig := decimal.RequireFromString("349.99")
	return []domain.Product{
		{ID: "1", Name: "Premium Wireless Headphones", Price: decimal.RequireFromString("199.99"), Rating: 4.5, Brand: "AudioTech", InStock: true},
		{ID: "2", Name: "Smart Watch Series 5", Price: decimal.RequireFromString("299.99"), OriginalPrice: &orig, Rating: 4.8, Brand: "TechGiant", InStock: true},
		{ID: "3", Name: "Bluetooth Speaker", Price: decimal.RequireFromString("89.99"), Rating: 4.2, Brand: "SoundMaster", InStock: false},
		{ID: "4", Name: "Laptop Pro 15\"", Price: decimal.RequireFromString("1299.99"), Rating: 4.7, Brand: "TechGiant", InStock: true},
	}
}

func newServer(t *testing.T) http.Handler {
	t.Helper()
	repo := new(MockProductRepository)
	all := products()
	repo.On("FindAll", mock.Anything).Return(all, nil)
	for _, p := range all {
		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	}
	repo.On("FindByID", mock.Anything, mock.Anything).Return(domain.Product{}, apperror.NewNotFoundError("produto"))

	log := logger.NewNop()
	tokens := token.NewService("segredo-de-teste", time.Hour)
	productSvc := productservice.NewService(repo, log, decimal.NewFromInt(2000))
	sessionSvc := sessionservice.NewService(sessionrepo.NewMemoryStore(time.Hour), repo, tokens, sessionservice.Options{
		PriceFloor: decimal.NewFromInt(2000),
		PageSize:   3,
		Pricing:    catalog.DefaultPricing(),
	}, log)

	return router.NewRouter(product.NewHandler(productSvc, log), session.NewHandler(sessionSvc, log), tokens, nil, log)
}

func do(t *testing.T, h http.Handler, method, path, bearer, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func startSession(t *testing.T, h http.Handler) string {
	rec := do(t, h, http.MethodPost, "/v1/sessions", "", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var started sessionservice.Started
	decode(t, rec, &started)
	require.NotEmpty(t, started.Token)
	return started.Token
}

func TestPing(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/ping", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestOpenAPISpecIsServed(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/openapi.json", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/session/cart/items")
}

func TestListProducts_QueryFilters(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodGet, "/v1/products?brand=TechGiant&sort=price-asc", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view catalog.ListingView
	decode(t, rec, &view)
	require.Len(t, view.Products, 2)
	assert.Equal(t, "2", view.Products[0].ID)
	assert.Equal(t, "299.99", view.Products[0].Price)
	assert.Equal(t, 14, view.Products[0].DiscountPercent)
	assert.Equal(t, 2, view.Showing)
	assert.Equal(t, 4, view.Total)
}

func TestListProducts_BadQuery(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodGet, "/v1/products?min_price=abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/products?sort=popular", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	decode(t, rec, &body)
	assert.Equal(t, "VALIDATION_ERROR", body["category"])
}

func TestGetProduct(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodGet, "/v1/products/4", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/products/404", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionRoutesRequireToken(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodGet, "/v1/session/cart", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/session/cart", "nao-e-um-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionFlow(t *testing.T) {
	h := newServer(t)
	tok := startSession(t, h)

	rec := do(t, h, http.MethodPost, "/v1/session/filters/brands/TechGiant", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/session/catalog", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listing catalog.ListingView
	decode(t, rec, &listing)
	assert.Equal(t, 2, listing.Showing)

	rec = do(t, h, http.MethodPost, "/v1/session/filters/reset", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var filters domain.FilterState
	decode(t, rec, &filters)
	assert.Empty(t, filters.Brands)

	rec = do(t, h, http.MethodPost, "/v1/session/carousel/next", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var carousel sessionservice.CarouselView
	decode(t, rec, &carousel)
	assert.Equal(t, 1, carousel.Offset)
	assert.False(t, carousel.CanNext)

	rec = do(t, h, http.MethodPost, "/v1/session/cart/items", tok, `{"product_id":"2","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodPost, "/v1/session/cart/items/2/increment", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var cart sessionservice.CartView
	decode(t, rec, &cart)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	assert.Equal(t, "899.97", cart.Totals.Subtotal)
	assert.Equal(t, "72.00", cart.Totals.Tax)
	assert.Equal(t, "987.96", cart.Totals.Total)

	rec = do(t, h, http.MethodPost, "/v1/session/cart/items", tok, `{"product_id":"3"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPut, "/v1/session/cart/items/2", tok, `{"quantity":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/v1/session/cart/items/2", tok, `{"quantity":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &cart)
	assert.True(t, cart.IsEmpty)

	rec = do(t, h, http.MethodDelete, "/v1/session", tok, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/session/cart", tok, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
