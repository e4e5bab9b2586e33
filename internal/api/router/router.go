package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"goshop/internal/api/cart"
	"goshop/internal/api/checkout"
	"goshop/internal/api/order"
	"goshop/internal/api/product"
	"goshop/internal/api/recommendation"
	"goshop/internal/api/user"
	"goshop/internal/pkg/cache"
	"goshop/internal/pkg/middleware"
)

// Config agrupa as dependências transversais do roteador.
type Config struct {
	TokenService middleware.TokenService
	Cache        cache.Client

	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(
	productHandler *product.Handler,
	cartHandler *cart.Handler,
	recHandler *recommendation.Handler,
	checkoutHandler *checkout.Handler,
	orderHandler *order.Handler,
	userHandler *user.Handler,
	cfg Config,
) http.Handler {

	// Usamos o ServeMux padrão do net/http para roteamento
	mux := http.NewServeMux()

	// Autenticação obrigatória (checkout, pedidos, perfil) e opcional
	// (carrinho e recomendações, onde o visitante anônimo opera pelo
	// X-Session-ID e o usuário logado pelo UserID do token).
	auth := middleware.NewAuthMiddleware(cfg.TokenService)
	optionalAuth := middleware.NewOptionalAuthMiddleware(cfg.TokenService)

	// --- 1. Health Check ---
	mux.HandleFunc("/ping", PingHandler)

	// --- 2. Catálogo (público) ---
	mux.HandleFunc("/v1/products", productHandler.ListProductsHandler)
	// GET /v1/products/{category}/{slug}; registra a visita no histórico do
	// dono da sessão, por isso a autenticação opcional.
	mux.HandleFunc("/v1/products/", optionalAuth(productHandler.GetProductHandler))
	mux.HandleFunc("/v1/categories", productHandler.ListCategoriesHandler)
	mux.HandleFunc("/v1/categories/", productHandler.GetCategoryHandler)
	mux.HandleFunc("/v1/search", productHandler.SearchHandler)

	// --- 3. Carrinho (sessão anônima ou autenticada) ---
	mux.HandleFunc("/v1/cart", optionalAuth(cartHandler.CartHandler))
	mux.HandleFunc("/v1/cart/items", optionalAuth(cartHandler.AddItemHandler))
	mux.HandleFunc("/v1/cart/items/", optionalAuth(cartHandler.ItemHandler))

	// --- 4. Recomendações ---
	mux.HandleFunc("/v1/recommendations", optionalAuth(recHandler.ListRecommendationsHandler))

	// --- 5. Checkout e Pedidos (autenticação obrigatória no submit) ---
	mux.HandleFunc("/v1/checkout/quote", optionalAuth(checkoutHandler.QuoteHandler))
	mux.HandleFunc("/v1/checkout", auth(checkoutHandler.PlaceOrderHandler))
	mux.HandleFunc("/v1/orders", auth(orderHandler.ListOrdersHandler))

	// --- 6. Identidade ---
	mux.HandleFunc("/v1/register", userHandler.RegisterUserHandler)
	mux.HandleFunc("/v1/login", userHandler.LoginUserHandler)
	mux.HandleFunc("/v1/me", auth(userHandler.MeHandler))

	// --- 7. Documentação (Swagger UI) ---
	mux.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.json")
	})
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// --- 8. Middlewares globais ---
	// O rate limiter envolve todo o mux, limitando por IP via Redis.
	limited := middleware.RateLimiter(cfg.Cache, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod)(mux)

	return limited
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
