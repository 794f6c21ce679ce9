package product

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"gostorefront/internal/api/response"
	"gostorefront/internal/catalog"
	"gostorefront/internal/domain"
	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/logger"
	"gostorefront/internal/service/productservice"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	ListProducts(ctx context.Context, q productservice.FilterQuery) (catalog.ListingView, error)
	Brands(ctx context.Context) ([]string, error)
}

// Handler agrupa os endpoints públicos do catálogo.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
	resp    *response.Writer
}

func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
		resp:    response.NewWriter(log),
	}
}

// CreateProductHandler lida com a requisição POST /v1/products.
// @Summary Inclui um produto no catálogo
// @Description Valida o produto e o insere no fim da ordem "featured". Sem ID, um UUID é gerado.
// @Tags products
// @Accept json
// @Produce json
// @Param product body domain.Product true "Produto"
// @Success 201 {object} catalog.ProductView "Produto criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "ID já existe"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.resp.Error(w, r, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."))
		return
	}

	created, err := h.Service.CreateProduct(r.Context(), product)
	if err != nil {
		h.resp.Error(w, r, err)
		return
	}
	h.resp.JSON(w, http.StatusCreated, catalog.NewProductView(created))
}

// GetProductByIDHandler lida com a requisição GET /v1/products/{id}.
// @Summary Obtém um produto por ID
// @Tags products
// @Produce json
// @Param id path string true "ID do Produto"
// @Success 200 {object} catalog.ProductView "Produto encontrado"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := h.Service.GetProductByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.resp.Error(w, r, err)
		return
	}
	h.resp.JSON(w, http.StatusOK, catalog.NewProductView(product))
}

// ListProductsHandler lida com GET /v1/products.
// @Summary Lista o catálogo filtrado
// @Description Aplica filtros avulsos sobre o estado padrão. brand pode ser repetido.
// @Tags products
// @Produce json
// @Param min_price query string false "Preço mínimo"
// @Param max_price query string false "Preço máximo"
// @Param brand query []string false "Marcas" collectionFormat(multi)
// @Param min_rating query number false "Avaliação mínima (0-5)"
// @Param q query string false "Busca no nome"
// @Param category query string false "Categoria"
// @Param sort query string false "featured | price-asc | price-desc | rating-desc"
// @Success 200 {object} catalog.ListingView
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Router /products [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := parseFilterQuery(r)
	if err != nil {
		h.resp.Error(w, r, err)
		return
	}
	view, err := h.Service.ListProducts(r.Context(), q)
	h.resp.Handle(w, r, view, err, http.StatusOK)
}

// BrandsHandler lida com GET /v1/brands.
// @Summary Lista as marcas do catálogo
// @Tags products
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /brands [get]
func (h *Handler) BrandsHandler(w http.ResponseWriter, r *http.Request) {
	brands, err := h.Service.Brands(r.Context())
	h.resp.Handle(w, r, map[string][]string{"brands": brands}, err, http.StatusOK)
}

func parseFilterQuery(r *http.Request) (productservice.FilterQuery, error) {
	values := r.URL.Query()
	q := productservice.FilterQuery{
		Brands:   values["brand"],
		Search:   values.Get("q"),
		Category: values.Get("category"),
		Sort:     values.Get("sort"),
	}

	var err error
	if q.MinPrice, err = parseDecimal(values.Get("min_price"), "min_price"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = parseDecimal(values.Get("max_price"), "max_price"); err != nil {
		return q, err
	}
	if raw := values.Get("min_rating"); raw != "" {
		rating, convErr := strconv.ParseFloat(raw, 64)
		if convErr != nil {
			return q, apperror.NewValidationError("min_rating deve ser numérico.")
		}
		q.MinRating = &rating
	}
	return q, nil
}

func parseDecimal(raw, name string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperror.NewValidationError(name + " deve ser um valor monetário.")
	}
	return &d, nil
}
