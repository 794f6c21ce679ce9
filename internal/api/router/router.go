package router

import (
	"net/http"

	"gostorefront/docs"
	"gostorefront/internal/api/product"
	"gostorefront/internal/api/response"
	"gostorefront/internal/api/session"
	"gostorefront/internal/pkg/logger"
	"gostorefront/internal/pkg/middleware"
)

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
// limiter é aplicado a todas as rotas, depois do log de requisição.
func NewRouter(
	productHandler *product.Handler,
	sessionHandler *session.Handler,
	tokenSvc middleware.TokenService,
	limiter func(http.Handler) http.Handler,
	log logger.Logger,
) http.Handler {
	mux := http.NewServeMux()
	resp := response.NewWriter(log)

	// --- 1. Health check e documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.HandleFunc("GET "+docs.SpecPath, docs.SpecHandler)
	mux.Handle("GET /swagger/", docs.UIHandler())

	// --- 2. Catálogo público ---
	mux.HandleFunc("GET /v1/products", productHandler.ListProductsHandler)
	mux.HandleFunc("POST /v1/products", productHandler.CreateProductHandler)
	mux.HandleFunc("GET /v1/products/{id}", productHandler.GetProductByIDHandler)
	mux.HandleFunc("GET /v1/brands", productHandler.BrandsHandler)

	// --- 3. Sessão de navegação ---
	mux.HandleFunc("POST /v1/sessions", sessionHandler.StartHandler)

	authed := middleware.NewSessionMiddleware(tokenSvc, resp.Error)
	protect := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(h))
	}

	protect("DELETE /v1/session", sessionHandler.EndHandler())

	protect("GET /v1/session/catalog", sessionHandler.CatalogHandler())
	protect("GET /v1/session/filters", sessionHandler.GetFiltersHandler())
	protect("PUT /v1/session/filters", sessionHandler.UpdateFiltersHandler())
	protect("POST /v1/session/filters/reset", sessionHandler.ResetFiltersHandler())
	protect("POST /v1/session/filters/brands/{brand}", sessionHandler.ToggleBrandHandler())

	protect("GET /v1/session/carousel", sessionHandler.CarouselHandler())
	protect("POST /v1/session/carousel/next", sessionHandler.CarouselNextHandler())
	protect("POST /v1/session/carousel/previous", sessionHandler.CarouselPreviousHandler())
	protect("POST /v1/session/carousel/pages/{page}", sessionHandler.CarouselPageHandler())

	protect("GET /v1/session/cart", sessionHandler.CartHandler())
	protect("DELETE /v1/session/cart", sessionHandler.ClearCartHandler())
	protect("POST /v1/session/cart/items", sessionHandler.AddItemHandler())
	protect("PUT /v1/session/cart/items/{id}", sessionHandler.SetQuantityHandler())
	protect("DELETE /v1/session/cart/items/{id}", sessionHandler.RemoveItemHandler())
	protect("POST /v1/session/cart/items/{id}/increment", sessionHandler.IncrementHandler())
	protect("POST /v1/session/cart/items/{id}/decrement", sessionHandler.DecrementHandler())

	// --- 4. Middlewares globais ---
	mws := []func(http.Handler) http.Handler{middleware.RequestLogger(log)}
	if limiter != nil {
		mws = append(mws, limiter)
	}
	return middleware.Chain(mux, mws...)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
