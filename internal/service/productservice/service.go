package productservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gostorefront/internal/catalog"
	"gostorefront/internal/domain"
	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/logger"
)

// FilterQuery são os filtros opcionais de uma listagem avulsa (sem sessão).
// Campos vazios mantêm o valor padrão.
type FilterQuery struct {
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Brands    []string
	MinRating *float64
	Search    string
	Category  string
	Sort      string
}

// Service expõe o catálogo: ingestão, consulta e listagem filtrada.
type Service struct {
	repo       domain.ProductRepository
	logger     logger.Logger
	priceFloor decimal.Decimal
	now        func() time.Time
}

// NewService cria o serviço. priceFloor é o teto mínimo do filtro de preço.
func NewService(repo domain.ProductRepository, log logger.Logger, priceFloor decimal.Decimal) *Service {
	return &Service{repo: repo, logger: log, priceFloor: priceFloor, now: time.Now}
}

// CreateProduct valida e insere um produto no catálogo.
func (s *Service) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := product.Validate(); err != nil {
		return domain.Product{}, apperror.NewValidationError(err.Error())
	}

	now := s.now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	return s.repo.Save(ctx, product)
}

func (s *Service) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, apperror.NewValidationError("O ID do produto é obrigatório.")
	}
	return s.repo.FindByID(ctx, id)
}

// Catalog devolve todos os produtos na ordem de inserção.
func (s *Service) Catalog(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

// PriceCeiling é o maior valor entre o teto configurado e o produto mais caro.
func (s *Service) PriceCeiling(ctx context.Context) (decimal.Decimal, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return catalog.PriceCeiling(products, s.priceFloor), nil
}

// Brands lista as marcas do catálogo, na ordem em que aparecem.
func (s *Service) Brands(ctx context.Context) ([]string, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.UniqueBrands(products), nil
}

// ListProducts aplica q sobre o estado padrão e devolve a grade.
func (s *Service) ListProducts(ctx context.Context, q FilterQuery) (catalog.ListingView, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return catalog.ListingView{}, err
	}

	state := domain.DefaultFilterState(catalog.PriceCeiling(products, s.priceFloor))
	if err := applyQuery(&state, q); err != nil {
		return catalog.ListingView{}, err
	}

	res := catalog.Browse(products, &state)
	s.logger.Debug("Listagem de catálogo.", map[string]interface{}{"showing": res.Showing, "total": res.Total})
	return catalog.NewListingView(products, res), nil
}

func applyQuery(state *domain.FilterState, q FilterQuery) error {
	if q.MinPrice != nil {
		state.PriceMin = *q.MinPrice
	}
	if q.MaxPrice != nil {
		state.PriceMax = *q.MaxPrice
	}
	if len(q.Brands) > 0 {
		state.Brands = q.Brands
	}
	state.MinRating = q.MinRating
	state.Search = q.Search
	state.Category = q.Category
	state.Sort = domain.SortKey(q.Sort)

	if err := state.Validate(); err != nil {
		return apperror.NewValidationError(err.Error())
	}
	return nil
}
