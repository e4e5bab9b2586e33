package product

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"goshop/internal/api/respond"
	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/logger"
	"goshop/internal/pkg/middleware"
)

// CatalogService define o contrato que o Handler espera do catálogo.
type CatalogService interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetProductBySlug(ctx context.Context, categorySlug, productSlug string) (domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
}

// ViewRecorder registra a visita de um produto no histórico de navegação
// (melhor-esforço: falha aqui nunca afeta a resposta da página).
type ViewRecorder interface {
	RecordView(ctx context.Context, owner string, ref string) error
}

// Handler agrupa os handlers de catálogo (produtos, categorias e busca).
type Handler struct {
	Service CatalogService
	History ViewRecorder
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service, o
// registrador de histórico e o Logger.
func NewHandler(svc CatalogService, history ViewRecorder, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		History: history,
		Logger:  log,
	}
}

// ListProductsHandler lida com GET /v1/products.
// @Summary Lista produtos do catálogo
// @Description Lista produtos, opcionalmente filtrados por categoria (?category=slug).
// @Tags catalog
// @Produce json
// @Param category query string false "Slug da categoria"
// @Param limit query int false "Limite de resultados"
// @Success 200 {array} domain.Product
// @Failure 500 {object} domain.ErrorResponse
// @Router /v1/products [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	filter := domain.ProductFilter{
		Category: r.URL.Query().Get("category"),
	}
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		if limit, err := strconv.Atoi(rawLimit); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	products, err := h.Service.ListProducts(r.Context(), filter)
	respond.JSON(w, r, h.Logger, products, err, http.StatusOK)
}

// GetProductHandler lida com GET /v1/products/{category}/{slug}.
// Além de responder o produto, registra a visita no histórico de navegação
// do dono da sessão (insumo do gateway de recomendações).
// @Summary Busca um produto por categoria e slug
// @Tags catalog
// @Produce json
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/products/{category}/{slug} [get]
func (h *Handler) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	// Extrai {category}/{slug} dos segmentos da URL.
	path := strings.Trim(r.URL.Path, "/")
	segments := strings.Split(path, "/")
	// Esperado: ["v1", "products", "{category}", "{slug}"]
	if len(segments) != 4 || segments[2] == "" || segments[3] == "" {
		respond.JSON(w, r, h.Logger, nil, apperror.NewValidationError("Formato de URL inválido. Use /v1/products/{categoria}/{slug}."), http.StatusOK)
		return
	}
	categorySlug, productSlug := segments[2], segments[3]

	product, err := h.Service.GetProductBySlug(ctx, categorySlug, productSlug)
	if err == nil {
		// Visita registrada apenas em buscas bem-sucedidas, como o
		// histórico do navegador faria. Dono ausente = sessão sem rastro.
		if owner := middleware.OwnerFromRequest(r); owner != "" {
			if recErr := h.History.RecordView(ctx, owner, categorySlug+"/"+productSlug); recErr != nil {
				h.Logger.Warn("Falha ao registrar visita no histórico.", map[string]interface{}{"owner": owner})
			}
		}
	}

	respond.JSON(w, r, h.Logger, product, err, http.StatusOK)
}

// ListCategoriesHandler lida com GET /v1/categories.
// @Summary Lista as categorias do catálogo
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.Category
// @Router /v1/categories [get]
func (h *Handler) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	categories, err := h.Service.ListCategories(r.Context())
	respond.JSON(w, r, h.Logger, categories, err, http.StatusOK)
}

// CategoryPageResponse é a resposta da página de categoria: a categoria e
// seus produtos.
type CategoryPageResponse struct {
	Category domain.Category  `json:"category"`
	Products []domain.Product `json:"products"`
}

// GetCategoryHandler lida com GET /v1/categories/{slug}.
// @Summary Busca uma categoria e seus produtos
// @Tags catalog
// @Produce json
// @Success 200 {object} CategoryPageResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/categories/{slug} [get]
func (h *Handler) GetCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	path := strings.Trim(r.URL.Path, "/")
	segments := strings.Split(path, "/")
	// Esperado: ["v1", "categories", "{slug}"]
	if len(segments) != 3 || segments[2] == "" {
		respond.JSON(w, r, h.Logger, nil, apperror.NewValidationError("Formato de URL inválido. Use /v1/categories/{slug}."), http.StatusOK)
		return
	}
	slug := segments[2]

	// Slug desconhecido encerra aqui com o 404 do serviço.
	category, err := h.Service.GetCategoryBySlug(ctx, slug)
	if err != nil {
		respond.JSON(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	products, err := h.Service.ListProducts(ctx, domain.ProductFilter{Category: slug})
	respond.JSON(w, r, h.Logger, CategoryPageResponse{Category: category, Products: products}, err, http.StatusOK)
}

// SearchHandler lida com GET /v1/search?q=...
// @Summary Busca textual de produtos
// @Description Substring case-insensitive sobre nome e descrição, unida com correspondência de tags.
// @Tags catalog
// @Produce json
// @Param q query string true "Termo de busca"
// @Success 200 {array} domain.Product
// @Router /v1/search [get]
func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	products, err := h.Service.Search(r.Context(), r.URL.Query().Get("q"))
	respond.JSON(w, r, h.Logger, products, err, http.StatusOK)
}
