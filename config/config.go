package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config armazena todas as configurações do GoStorefront.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Banco de Dados (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration

	// Cache (Redis)
	RedisAddr       string
	CacheTimeout    time.Duration
	CatalogCacheTTL time.Duration

	// Sessões de navegação
	SessionSecretKey string
	SessionTTL       time.Duration
	SessionStore     string // "redis" ou "memory"

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
	RateLimitBackend     string // "redis" ou "local"

	// Vitrine
	CarouselPageSize int
	PriceCeiling     decimal.Decimal
	ShippingFlatRate decimal.Decimal
	TaxRate          decimal.Decimal
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// mustGetEnv garante que a aplicação não inicie sem credenciais de DB
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,

		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTimeout:    getDurationEnv("CACHE_TIMEOUT_SEC", 10) * time.Second,
		CatalogCacheTTL: getDurationEnv("CATALOG_CACHE_TTL_SEC", 300) * time.Second,

		SessionSecretKey: mustGetEnv("SESSION_SECRET_KEY"),
		SessionTTL:       getDurationEnv("SESSION_TTL_MIN", 120) * time.Minute,
		SessionStore:     getEnv("SESSION_STORE", "redis"),

		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,
		RateLimitBackend:     getEnv("RATE_LIMIT_BACKEND", "redis"),

		CarouselPageSize: getIntEnv("CAROUSEL_PAGE_SIZE", 3),
		PriceCeiling:     getDecimalEnv("PRICE_CEILING", "2000"),
		ShippingFlatRate: getDecimalEnv("SHIPPING_FLAT_RATE", "15.99"),
		TaxRate:          getDecimalEnv("TAX_RATE", "0.08"),
	}

	return cfg
}

// DatabaseConfig é o subconjunto usado pelas migrações.
type DatabaseConfig struct {
	DatabaseURL string
	DBTimeout   time.Duration
}

// LoadDatabaseConfig lê apenas as variáveis do PostgreSQL.
func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,
	}
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getDecimalEnv lê um valor monetário ou taxa. Valores negativos ou inválidos usam o padrão.
func getDecimalEnv(key string, defaultValue string) decimal.Decimal {
	fallback := decimal.RequireFromString(defaultValue)
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}

	value, err := decimal.NewFromString(valueStr)
	if err != nil || value.IsNegative() {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um decimal válido. Usando padrão (%s).", key, valueStr, defaultValue)
		return fallback
	}
	return value
}
