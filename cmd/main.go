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

	// Nossos pacotes de infraestrutura e utilitários
	"goshop/config"
	"goshop/internal/pkg/cache"
	"goshop/internal/pkg/database"
	"goshop/internal/pkg/logger"
	"goshop/internal/pkg/payment"
	"goshop/internal/pkg/recommender"
	"goshop/internal/pkg/token"

	// Camadas da loja para Injeção de Dependências
	"goshop/internal/api/cart"
	"goshop/internal/api/checkout"
	"goshop/internal/api/order"
	"goshop/internal/api/product"
	"goshop/internal/api/recommendation"
	"goshop/internal/api/router"
	"goshop/internal/api/user"
	"goshop/internal/repository/cartrepo"
	"goshop/internal/repository/categoryrepo"
	"goshop/internal/repository/orderrepo"
	"goshop/internal/repository/productrepo"
	"goshop/internal/repository/userrepo"
	"goshop/internal/service/cartservice"
	"goshop/internal/service/catalogservice"
	"goshop/internal/service/checkoutservice"
	"goshop/internal/service/recommendationservice"
	"goshop/internal/service/userservice"
)

func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço GoShop...")

	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// O godotenv.Load() procura por um arquivo chamado .env na raiz.
	if err := godotenv.Load(); err != nil {
		// Se o arquivo .env não for encontrado, avisamos mas continuamos,
		// pois as variáveis essenciais podem estar no ambiente do sistema
		// (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache e slots de sessão (Redis)
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	log.Info("Conexão Redis estabelecida.", nil)

	// C. Colaboradores externos (gateway de pagamentos e modelo de IA)
	paymentGateway := payment.NewClient(cfg.PaymentBaseURL, cfg.PaymentSecret, cfg.PaymentTimeout)
	recommenderClient := recommender.NewHTTPClient(cfg.RecommenderBaseURL, cfg.RecommenderAPIKey, cfg.RecommenderTimeout)

	// D. Serviço de Tokens (JWT)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	log.Debug("Serviço de Tokens JWT inicializado.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS (Montagem da Clean Architecture)
	// Ordem: Repository -> Service -> Handler

	// A. Repositórios (Camada de Acesso a Dados)
	productRepo := productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, log)
	categoryRepo := categoryrepo.NewCategoryRepository(db, cfg.DBTimeout, log)
	orderRepo := orderrepo.NewOrderRepository(db, cfg.DBTimeout, log)
	cartRepo := cartrepo.NewCartRepository(cacheClient, log)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	log.Debug("Repositórios inicializados.", nil)

	// B. Serviços (Camada de Lógica de Negócio)
	catalogSvc := catalogservice.NewService(productRepo, categoryRepo, log)
	cartSvc := cartservice.NewService(cartRepo, log)
	recSvc := recommendationservice.NewService(cartRepo, productRepo, recommenderClient, log)
	checkoutSvc := checkoutservice.NewService(cartSvc, orderRepo, paymentGateway, log, cfg.ShippingFee, cfg.TaxRate, cfg.Currency)
	userSvc := userservice.NewService(userRepo, tokenSvc, log)
	log.Debug("Serviços inicializados.", nil)

	// C. Handlers (Camada de Apresentação)
	productHandler := product.NewHandler(catalogSvc, recSvc, log)
	cartHandler := cart.NewHandler(cartSvc, log)
	recHandler := recommendation.NewHandler(recSvc, log)
	checkoutHandler := checkout.NewHandler(checkoutSvc, log)
	orderHandler := order.NewHandler(checkoutSvc, log)
	userHandler := user.NewHandler(userSvc, log)
	log.Debug("Handlers inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(productHandler, cartHandler, recHandler, checkoutHandler, orderHandler, userHandler, router.Config{
		TokenService:         tokenSvc,
		Cache:                cacheClient,
		RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		RateLimitPeriod:      cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor GoShop ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou: %v", err)
		}
	}()

	// Lógica do Graceful Shutdown (captura de sinal)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
