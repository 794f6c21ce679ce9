// Package sessionservice coordena o estado de uma sessão de navegação:
// filtros da grade, janela do carrossel e carrinho.
package sessionservice

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

// TokenIssuer emite o token que identifica a sessão nas requisições seguintes.
type TokenIssuer interface {
	GenerateToken(sessionID string) (string, error)
}

// Options agrupa os parâmetros de apresentação da sessão.
type Options struct {
	PriceFloor decimal.Decimal
	PageSize   int
	Pricing    catalog.Pricing
}

type Service struct {
	store    domain.SessionStore
	products domain.ProductRepository
	tokens   TokenIssuer
	opts     Options
	logger   logger.Logger
	now      func() time.Time
}

func NewService(store domain.SessionStore, products domain.ProductRepository, tokens TokenIssuer, opts Options, log logger.Logger) *Service {
	if opts.PageSize < 1 {
		opts.PageSize = 1
	}
	return &Service{
		store:    store,
		products: products,
		tokens:   tokens,
		opts:     opts,
		logger:   log,
		now:      time.Now,
	}
}

// Started é o retorno de Start.
type Started struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

// Start cria uma sessão com filtros padrão, carrinho vazio e carrossel no início.
func (s *Service) Start(ctx context.Context) (Started, error) {
	ceiling, err := s.ceiling(ctx)
	if err != nil {
		return Started{}, err
	}

	now := s.now().UTC()
	session := domain.Session{
		ID:        uuid.New().String(),
		Filters:   domain.DefaultFilterState(ceiling),
		Carousel:  domain.NewCarouselWindow(s.opts.PageSize),
		Ceiling:   ceiling,
		CreatedAt: now,
		UpdatedAt: now,
	}

	token, err := s.tokens.GenerateToken(session.ID)
	if err != nil {
		return Started{}, apperror.NewInternalError("Falha ao emitir token de sessão.", err)
	}
	if err := s.store.Save(ctx, session); err != nil {
		return Started{}, err
	}

	s.logger.Info("Sessão iniciada.", map[string]interface{}{"session_id": session.ID})
	return Started{SessionID: session.ID, Token: token}, nil
}

// End descarta a sessão e todo o seu estado.
func (s *Service) End(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) ceiling(ctx context.Context) (decimal.Decimal, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return catalog.PriceCeiling(products, s.opts.PriceFloor), nil
}

// update carrega a sessão, aplica fn e grava o resultado. Se fn falhar nada é gravado.
func (s *Service) update(ctx context.Context, id string, fn func(*domain.Session) error) (domain.Session, error) {
	session, err := s.store.Load(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	if err := fn(&session); err != nil {
		return domain.Session{}, err
	}
	session.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}
