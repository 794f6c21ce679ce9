package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gostorefront/config"
	"gostorefront/internal/api/product"
	"gostorefront/internal/api/response"
	"gostorefront/internal/api/router"
	"gostorefront/internal/api/session"
	"gostorefront/internal/catalog"
	"gostorefront/internal/domain"
	"gostorefront/internal/pkg/cache"
	"gostorefront/internal/pkg/database"
	"gostorefront/internal/pkg/logger"
	"gostorefront/internal/pkg/middleware"
	"gostorefront/internal/pkg/token"
	"gostorefront/internal/repository/productrepo"
	"gostorefront/internal/repository/sessionrepo"
	"gostorefront/internal/service/productservice"
	"gostorefront/internal/service/sessionservice"
)

func main() {
	log.Println("⚡ Inicializando serviço GoStorefront...")
	if err := godotenv.Load(); err != nil {
		// As variáveis podem vir do ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	if s, ok := appLog.(interface{ Sync() error }); ok {
		defer s.Sync()
	}
	appLog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 1. Infraestrutura

	db, err := database.NewPostgresDB(cfg.DatabaseURL, database.DefaultPoolConfig(), cfg.DBTimeout)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	cacheClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout)
	redisUp := err == nil
	if redisUp {
		appLog.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
	} else {
		// Cache-aside tolera o Redis fora do ar; as leituras vão direto ao DB.
		appLog.Warn("Redis indisponível no início.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
	}
	defer cacheClient.Close()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// 2. Injeção de dependências: Repository -> Service -> Handler

	productRepo := productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, cfg.CatalogCacheTTL, appLog)

	var sessionStore domain.SessionStore
	if cfg.SessionStore == "redis" && redisUp {
		sessionStore = sessionrepo.NewRedisStore(cacheClient, cfg.SessionTTL, cfg.CacheTimeout, appLog)
	} else {
		mem := sessionrepo.NewMemoryStore(cfg.SessionTTL)
		go mem.RunSweeper(rootCtx, time.Minute)
		sessionStore = mem
		appLog.Info("Sessões mantidas em memória.", map[string]interface{}{"configured": cfg.SessionStore})
	}

	tokenSvc := token.NewService(cfg.SessionSecretKey, cfg.SessionTTL)

	productSvc := productservice.NewService(productRepo, appLog, cfg.PriceCeiling)
	sessionSvc := sessionservice.NewService(sessionStore, productRepo, tokenSvc, sessionservice.Options{
		PriceFloor: cfg.PriceCeiling,
		PageSize:   cfg.CarouselPageSize,
		Pricing: catalog.Pricing{
			ShippingFlatRate: cfg.ShippingFlatRate,
			TaxRate:          cfg.TaxRate,
		},
	}, appLog)

	productHandler := product.NewHandler(productSvc, appLog)
	sessionHandler := session.NewHandler(sessionSvc, appLog)

	resp := response.NewWriter(appLog)
	var limiter func(http.Handler) http.Handler
	if cfg.RateLimitBackend == "redis" && redisUp {
		limiter = middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod, appLog, resp.Error)
	} else {
		limiter = middleware.LocalRateLimiter(cfg.RateLimitMaxRequests, cfg.RateLimitPeriod, resp.Error)
	}

	// 3. Servidor

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(productHandler, sessionHandler, tokenSvc, limiter, appLog),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLog.Info("Servidor GoStorefront ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
