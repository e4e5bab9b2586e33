package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config armazena todas as configurações do aplicativo GoShop.
// Os campos cobrem infraestrutura (DB, Redis), segurança (JWT), os
// colaboradores externos (gateway de pagamentos, modelo de IA) e as
// constantes de negócio do checkout.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Banco de Dados (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration

	// Redis (cache de catálogo + slots de carrinho/histórico)
	RedisAddr    string
	CacheTimeout time.Duration

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Gateway de Pagamentos
	PaymentBaseURL string
	PaymentSecret  string
	PaymentTimeout time.Duration
	Currency       string

	// Modelo de Recomendação (IA)
	RecommenderBaseURL string
	RecommenderAPIKey  string
	RecommenderTimeout time.Duration

	// Constantes de negócio do checkout
	ShippingFee float64 // Frete fixo somado ao subtotal
	TaxRate     float64 // Taxa de imposto aplicada sobre o subtotal

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Banco de Dados (PostgreSQL)
		// mustGetEnv garante que a aplicação não inicie sem credenciais de DB.
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,

		// 3. Redis
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTimeout: getDurationEnv("CACHE_TIMEOUT_SEC", 10) * time.Second,

		// 4. Segurança (JWT)
		JWTSecretKey: mustGetEnv("JWT_SECRET_KEY"),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute,

		// 5. Gateway de Pagamentos
		PaymentBaseURL: getEnv("PAYMENT_BASE_URL", "https://api.stripe.com"),
		PaymentSecret:  mustGetEnv("PAYMENT_SECRET_KEY"),
		PaymentTimeout: getDurationEnv("PAYMENT_TIMEOUT_SEC", 30) * time.Second,
		Currency:       getEnv("CURRENCY", "usd"),

		// 6. Modelo de Recomendação
		RecommenderBaseURL: getEnv("RECOMMENDER_BASE_URL", "http://localhost:9090"),
		RecommenderAPIKey:  getEnv("RECOMMENDER_API_KEY", ""),
		RecommenderTimeout: getDurationEnv("RECOMMENDER_TIMEOUT_SEC", 10) * time.Second,

		// 7. Constantes do Checkout
		ShippingFee: getFloatEnv("SHIPPING_FEE", 5.00),
		TaxRate:     getFloatEnv("TAX_RATE", 0.08),

		// 8. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,
	}

	return cfg
}

// --- Funções Helpers (Auxiliares) ---

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
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Duration(defaultValue)
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return time.Duration(defaultValue)
	}
	return time.Duration(value)
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

// getFloatEnv lê uma variável de ambiente decimal e retorna-a como float64.
func getFloatEnv(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número decimal válido. Usando padrão (%f).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
