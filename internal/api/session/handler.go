package session

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"gostorefront/internal/api/response"
	"gostorefront/internal/catalog"
	"gostorefront/internal/domain"
	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/logger"
	"gostorefront/internal/pkg/middleware"
	"gostorefront/internal/service/sessionservice"
)

// SessionService define o contrato que o Handler espera da camada de Serviço.
type SessionService interface {
	Start(ctx context.Context) (sessionservice.Started, error)
	End(ctx context.Context, id string) error

	Filters(ctx context.Context, id string) (domain.FilterState, error)
	UpdateFilters(ctx context.Context, id string, state domain.FilterState) (domain.FilterState, error)
	ResetFilters(ctx context.Context, id string) (domain.FilterState, error)
	ToggleBrand(ctx context.Context, id, brand string) (domain.FilterState, error)
	Listing(ctx context.Context, id string) (catalog.ListingView, error)

	Carousel(ctx context.Context, id string) (sessionservice.CarouselView, error)
	CarouselNext(ctx context.Context, id string) (sessionservice.CarouselView, error)
	CarouselPrevious(ctx context.Context, id string) (sessionservice.CarouselView, error)
	CarouselPage(ctx context.Context, id string, page int) (sessionservice.CarouselView, error)

	Cart(ctx context.Context, id string) (sessionservice.CartView, error)
	AddToCart(ctx context.Context, id, productID string, qty int) (sessionservice.CartView, error)
	SetQuantity(ctx context.Context, id, productID string, qty int) (sessionservice.CartView, error)
	Increment(ctx context.Context, id, productID string) (sessionservice.CartView, error)
	Decrement(ctx context.Context, id, productID string) (sessionservice.CartView, error)
	RemoveItem(ctx context.Context, id, productID string) (sessionservice.CartView, error)
	ClearCart(ctx context.Context, id string) (sessionservice.CartView, error)
}

type Handler struct {
	Service SessionService
	Logger  logger.Logger
	resp    *response.Writer
}

func NewHandler(svc SessionService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
		resp:    response.NewWriter(log),
	}
}

// withSession extrai o ID anexado pelo middleware de sessão.
func (h *Handler) withSession(fn func(w http.ResponseWriter, r *http.Request, id string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetSessionIDFromContext(r.Context())
		if !ok {
			h.resp.Error(w, r, apperror.NewUnauthorizedError("Sessão ausente no contexto."))
			return
		}
		fn(w, r, id)
	}
}

// StartHandler lida com POST /v1/sessions.
// @Summary Inicia uma sessão de navegação
// @Description Cria filtros padrão, carrinho vazio e carrossel no início. O token vai no header Authorization.
// @Tags session
// @Produce json
// @Success 201 {object} sessionservice.Started
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /sessions [post]
func (h *Handler) StartHandler(w http.ResponseWriter, r *http.Request) {
	started, err := h.Service.Start(r.Context())
	h.resp.Handle(w, r, started, err, http.StatusCreated)
}

// EndHandler lida com DELETE /v1/session.
func (h *Handler) EndHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		err := h.Service.End(r.Context(), id)
		h.resp.Handle(w, r, nil, err, http.StatusNoContent)
	})
}

// --- Filtros ---

func (h *Handler) CatalogHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		view, err := h.Service.Listing(r.Context(), id)
		h.resp.Handle(w, r, view, err, http.StatusOK)
	})
}

func (h *Handler) GetFiltersHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		state, err := h.Service.Filters(r.Context(), id)
		h.resp.Handle(w, r, state, err, http.StatusOK)
	})
}

// UpdateFiltersHandler lida com PUT /v1/session/filters. O corpo substitui o estado inteiro.
// @Summary Substitui os filtros da sessão
// @Tags session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param filters body domain.FilterState true "Estado de filtros"
// @Success 200 {object} domain.FilterState
// @Failure 400 {object} domain.ErrorResponse "Estado inválido"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Router /session/filters [put]
func (h *Handler) UpdateFiltersHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		var state domain.FilterState
		if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
			h.resp.Error(w, r, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."))
			return
		}
		updated, err := h.Service.UpdateFilters(r.Context(), id, state)
		h.resp.Handle(w, r, updated, err, http.StatusOK)
	})
}

func (h *Handler) ResetFiltersHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		state, err := h.Service.ResetFilters(r.Context(), id)
		h.resp.Handle(w, r, state, err, http.StatusOK)
	})
}

func (h *Handler) ToggleBrandHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		state, err := h.Service.ToggleBrand(r.Context(), id, r.PathValue("brand"))
		h.resp.Handle(w, r, state, err, http.StatusOK)
	})
}

// --- Carrossel ---

func (h *Handler) CarouselHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		view, err := h.Service.Carousel(r.Context(), id)
		h.resp.Handle(w, r, view, err, http.StatusOK)
	})
}

func (h *Handler) CarouselNextHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		view, err := h.Service.CarouselNext(r.Context(), id)
		h.resp.Handle(w, r, view, err, http.StatusOK)
	})
}

func (h *Handler) CarouselPreviousHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		view, err := h.Service.CarouselPrevious(r.Context(), id)
		h.resp.Handle(w, r, view, err, http.StatusOK)
	})
}

func (h *Handler) CarouselPageHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		page, err := strconv.Atoi(r.PathValue("page"))
		if err != nil {
			h.resp.Error(w, r, apperror.NewValidationError("A página deve ser um número inteiro."))
			return
		}
		view, err := h.Service.CarouselPage(r.Context(), id, page)
		h.resp.Handle(w, r, view, err, http.StatusOK)
	})
}

// --- Carrinho ---

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity,omitempty"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) CartHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		view, err := h.Service.Cart(r.Context(), id)
		h.resp.Handle(w, r, view, err, http.StatusOK)
	})
}

// AddItemHandler lida com POST /v1/session/cart/items. Sem quantity, adiciona uma unidade.
// @Summary Adiciona um produto ao carrinho
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} sessionservice.CartView
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Produto fora de estoque"
// @Router /session/cart/items [post]
func (h *Handler) AddItemHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		var req addItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
			h.resp.Error(w, r, apperror.NewValidationError("Informe product_id no corpo JSON."))
			return
		}
		qty := 1
		if req.Quantity != nil {
			qty = *req.Quantity
		}
		view, err := h.Service.AddToCart(r.Context(), id, req.ProductID, qty)
		h.resp.Handle(w, r, view, err, http.StatusOK)
	})
}

func (h *Handler) SetQuantityHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		var req quantityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
			h.resp.Error(w, r, apperror.NewValidationError("Informe quantity no corpo JSON."))
			return
		}
		view, err := h.Service.SetQuantity(r.Context(), id, r.PathValue("id"), *req.Quantity)
		h.resp.Handle(w, r, view, err, http.StatusOK)
	})
}

func (h *Handler) IncrementHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		view, err := h.Service.Increment(r.Context(), id, r.PathValue("id"))
		h.resp.Handle(w, r, view, err, http.StatusOK)
	})
}

func (h *Handler) DecrementHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		view, err := h.Service.Decrement(r.Context(), id, r.PathValue("id"))
		h.resp.Handle(w, r, view, err, http.StatusOK)
	})
}

func (h *Handler) RemoveItemHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		view, err := h.Service.RemoveItem(r.Context(), id, r.PathValue("id"))
		h.resp.Handle(w, r, view, err, http.StatusOK)
	})
}

func (h *Handler) ClearCartHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, id string) {
		view, err := h.Service.ClearCart(r.Context(), id)
		h.resp.Handle(w, r, view, err, http.StatusOK)
	})
}
