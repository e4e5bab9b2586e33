package catalogservice

import (
	"context"
	"strings"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/logger"
)

// Service implementa a interface domain.CatalogService.
// Os caminhos de leitura do catálogo são finos: validação de entrada e
// delegação: filtros e joins ficam a cargo do repositório/DB.
type Service struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	logger     logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Catálogo.
func NewService(products domain.ProductRepository, categories domain.CategoryRepository, log logger.Logger) *Service {
	return &Service{
		products:   products,
		categories: categories,
		logger:     log,
	}
}

// ListProducts lista produtos, opcionalmente por categoria.
func (s *Service) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.products.FindAll(ctx, filter)
}

// GetProductBySlug busca um produto pelo par (categoria, slug).
// Slug desconhecido propaga o NotFoundError do repositório (estado 404).
func (s *Service) GetProductBySlug(ctx context.Context, categorySlug, productSlug string) (domain.Product, error) {
	if categorySlug == "" || productSlug == "" {
		return domain.Product{}, apperror.NewValidationError("Categoria e slug do produto são obrigatórios.")
	}
	return s.products.FindBySlug(ctx, categorySlug, productSlug)
}

// ListCategories lista todas as categorias.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.FindAll(ctx)
}

// GetCategoryBySlug busca uma categoria pelo slug.
func (s *Service) GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error) {
	if slug == "" {
		return domain.Category{}, apperror.NewValidationError("Slug da categoria é obrigatório.")
	}
	return s.categories.FindBySlug(ctx, slug)
}

// Search faz a busca textual. Consulta vazia retorna lista vazia sem tocar o
// repositório: é o estado neutro da página de busca, não um erro.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Product{}, nil
	}
	return s.products.Search(ctx, query)
}
