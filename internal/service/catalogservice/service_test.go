package catalogservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/logger"
	"goshop/internal/service/catalogservice"
)

// MockProductRepository é uma implementação mock da interface ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, categorySlug, productSlug string) (domain.Product, error) {
	args := m.Called(ctx, categorySlug, productSlug)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, query string) ([]domain.Product, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.Product), args.Error(1)
}

// MockCategoryRepository é uma implementação mock da interface CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (domain.Category, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(domain.Category), args.Error(1)
}

// TestListProducts testa a listagem com filtro de categoria.
func TestListProducts(t *testing.T) {
	products := new(MockProductRepository)
	svc := catalogservice.NewService(products, new(MockCategoryRepository), logger.NewLogger("debug"))

	expected := []domain.Product{{ID: "p1", Name: "Fone"}, {ID: "p2", Name: "Caixa de Som"}}
	products.On("FindAll", mock.Anything, domain.ProductFilter{Category: "electronics"}).Return(expected, nil)

	result, err := svc.ListProducts(context.Background(), domain.ProductFilter{Category: "electronics"})

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
}

// TestGetProductBySlug_NotFound testa que slug desconhecido vira 404.
func TestGetProductBySlug_NotFound(t *testing.T) {
	products := new(MockProductRepository)
	svc := catalogservice.NewService(products, new(MockCategoryRepository), logger.NewLogger("debug"))

	products.On("FindBySlug", mock.Anything, "electronics", "nao-existe").
		Return(domain.Product{}, apperror.NewNotFoundError("Produto não encontrado."))

	_, err := svc.GetProductBySlug(context.Background(), "electronics", "nao-existe")

	assert.Error(t, err)
	status, _, _ := apperror.MapToHTTPStatus(err)
	assert.Equal(t, 404, status)
}

// TestGetProductBySlug_RequiresSlugs testa a validação dos parâmetros de rota.
func TestGetProductBySlug_RequiresSlugs(t *testing.T) {
	products := new(MockProductRepository)
	svc := catalogservice.NewService(products, new(MockCategoryRepository), logger.NewLogger("debug"))

	_, err := svc.GetProductBySlug(context.Background(), "", "fone")

	assert.Error(t, err)
	products.AssertNotCalled(t, "FindBySlug")
}

// TestSearch_EmptyQueryReturnsEmpty testa que consulta vazia retorna lista
// vazia sem tocar o repositório.
func TestSearch_EmptyQueryReturnsEmpty(t *testing.T) {
	products := new(MockProductRepository)
	svc := catalogservice.NewService(products, new(MockCategoryRepository), logger.NewLogger("debug"))

	result, err := svc.Search(context.Background(), "")

	assert.NoError(t, err)
	assert.Empty(t, result)
	products.AssertNotCalled(t, "Search")
}

// TestSearch_DelegatesToRepo testa a delegação da busca textual.
func TestSearch_DelegatesToRepo(t *testing.T) {
	products := new(MockProductRepository)
	svc := catalogservice.NewService(products, new(MockCategoryRepository), logger.NewLogger("debug"))

	expected := []domain.Product{{ID: "p1", Name: "Fone Bluetooth Pro"}}
	products.On("Search", mock.Anything, "fone").Return(expected, nil)

	result, err := svc.Search(context.Background(), "fone")

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
}

// TestGetCategoryBySlug_NotFound testa que categoria desconhecida vira 404.
func TestGetCategoryBySlug_NotFound(t *testing.T) {
	categories := new(MockCategoryRepository)
	svc := catalogservice.NewService(new(MockProductRepository), categories, logger.NewLogger("debug"))

	categories.On("FindBySlug", mock.Anything, "nao-existe").
		Return(domain.Category{}, apperror.NewNotFoundError("Categoria não encontrada."))

	_, err := svc.GetCategoryBySlug(context.Background(), "nao-existe")

	assert.Error(t, err)
	status, _, _ := apperror.MapToHTTPStatus(err)
	assert.Equal(t, 404, status)
}
