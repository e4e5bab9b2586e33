package recommendationservice_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goshop/internal/domain"
	"goshop/internal/pkg/logger"
	"goshop/internal/service/recommendationservice"
)

// MockHistoryRepository é uma implementação mock da interface HistoryRepository.
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) LoadHistory(ctx context.Context, owner string) ([]string, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockHistoryRepository) SaveHistory(ctx context.Context, owner string, refs []string) error {
	args := m.Called(ctx, owner, refs)
	return args.Error(0)
}

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

// MockModel é uma implementação mock da interface recommender.Client.
type MockModel struct {
	mock.Mock
}

func (m *MockModel) Recommend(ctx context.Context, browsingHistory []string) ([]string, error) {
	args := m.Called(ctx, browsingHistory)
	return args.Get(0).([]string), args.Error(1)
}

// catalogOf gera um catálogo de n produtos nomeados sequencialmente.
func catalogOf(n int) []domain.Product {
	catalog := make([]domain.Product, 0, n)
	for i := 1; i <= n; i++ {
		catalog = append(catalog, domain.Product{
			ID:   fmt.Sprintf("prod-%02d", i),
			Name: fmt.Sprintf("Produto %02d", i),
		})
	}
	return catalog
}

// TestRecordView_MoveToFrontDedupe testa que revisitar um recurso já presente
// o move para a frente em vez de duplicar.
func TestRecordView_MoveToFrontDedupe(t *testing.T) {
	history := new(MockHistoryRepository)
	svc := recommendationservice.NewService(history, new(MockProductRepository), new(MockModel), logger.NewLogger("debug"))

	history.On("LoadHistory", mock.Anything, "sessao-1").Return([]string{"a", "b", "c"}, nil)
	history.On("SaveHistory", mock.Anything, "sessao-1", []string{"b", "a", "c"}).Return(nil)

	err := svc.RecordView(context.Background(), "sessao-1", "b")

	assert.NoError(t, err)
	history.AssertExpectations(t)
}

// TestRecordView_CapsAtMax testa o limite do histórico: a entrada mais antiga
// sai quando a sexta visita chega.
func TestRecordView_CapsAtMax(t *testing.T) {
	history := new(MockHistoryRepository)
	svc := recommendationservice.NewService(history, new(MockProductRepository), new(MockModel), logger.NewLogger("debug"))

	history.On("LoadHistory", mock.Anything, "sessao-1").Return([]string{"e", "d", "c", "b", "a"}, nil)
	history.On("SaveHistory", mock.Anything, "sessao-1", []string{"f", "e", "d", "c", "b"}).Return(nil)

	err := svc.RecordView(context.Background(), "sessao-1", "f")

	assert.NoError(t, err)
	history.AssertExpectations(t)
}

// TestRecordView_LoadFailureStartsFresh testa que indisponibilidade do
// histórico não falha a visita: ela é registrada a partir do zero.
func TestRecordView_LoadFailureStartsFresh(t *testing.T) {
	history := new(MockHistoryRepository)
	svc := recommendationservice.NewService(history, new(MockProductRepository), new(MockModel), logger.NewLogger("debug"))

	history.On("LoadHistory", mock.Anything, "sessao-1").Return([]string{}, errors.New("redis indisponível"))
	history.On("SaveHistory", mock.Anything, "sessao-1", []string{"a"}).Return(nil)

	err := svc.RecordView(context.Background(), "sessao-1", "a")

	assert.NoError(t, err)
	history.AssertExpectations(t)
}

// TestRecommend_EmptyHistoryReturnsDefaultSet testa o conjunto padrão para
// histórico vazio: os primeiros produtos do catálogo, sem chamar o modelo.
func TestRecommend_EmptyHistoryReturnsDefaultSet(t *testing.T) {
	history := new(MockHistoryRepository)
	products := new(MockProductRepository)
	model := new(MockModel)
	svc := recommendationservice.NewService(history, products, model, logger.NewLogger("debug"))

	catalog := catalogOf(10)
	history.On("LoadHistory", mock.Anything, "sessao-1").Return([]string{}, nil)
	products.On("FindAll", mock.Anything, domain.ProductFilter{}).Return(catalog, nil)

	result, err := svc.Recommend(context.Background(), "sessao-1")

	assert.NoError(t, err)
	assert.Equal(t, catalog[:4], result)
	model.AssertNotCalled(t, "Recommend")
}

// TestRecommend_ResolvesNamesCaseInsensitive testa a resolução dos nomes
// retornados pelo modelo por correspondência exata case-insensitive.
func TestRecommend_ResolvesNamesCaseInsensitive(t *testing.T) {
	history := new(MockHistoryRepository)
	products := new(MockProductRepository)
	model := new(MockModel)
	svc := recommendationservice.NewService(history, products, model, logger.NewLogger("debug"))

	catalog := catalogOf(10)
	history.On("LoadHistory", mock.Anything, "sessao-1").Return([]string{"electronics/fone"}, nil)
	products.On("FindAll", mock.Anything, domain.ProductFilter{}).Return(catalog, nil)
	model.On("Recommend", mock.Anything, []string{"electronics/fone"}).Return(
		[]string{"PRODUTO 07", "produto 05", "Produto 09", "Produto 03"}, nil)

	result, err := svc.Recommend(context.Background(), "sessao-1")

	assert.NoError(t, err)
	assert.Len(t, result, 4)
	assert.Equal(t, "prod-07", result[0].ID)
	assert.Equal(t, "prod-05", result[1].ID)
	assert.Equal(t, "prod-09", result[2].ID)
	assert.Equal(t, "prod-03", result[3].ID)
}

// TestRecommend_BackfillsToFixedSize testa que nomes não resolvidos são
// descartados e o resultado é completado até exatamente quatro produtos,
// sem duplicatas.
func TestRecommend_BackfillsToFixedSize(t *testing.T) {
	history := new(MockHistoryRepository)
	products := new(MockProductRepository)
	model := new(MockModel)
	svc := recommendationservice.NewService(history, products, model, logger.NewLogger("debug"))

	catalog := catalogOf(10)
	history.On("LoadHistory", mock.Anything, "sessao-1").Return([]string{"a"}, nil)
	products.On("FindAll", mock.Anything, domain.ProductFilter{}).Return(catalog, nil)
	// Apenas um nome resolve; os demais são alucinações do modelo.
	model.On("Recommend", mock.Anything, []string{"a"}).Return(
		[]string{"Produto 05", "Produto Fantasma", "Outro Inexistente"}, nil)

	result, err := svc.Recommend(context.Background(), "sessao-1")

	assert.NoError(t, err)
	assert.Len(t, result, 4)

	seen := map[string]bool{}
	for _, p := range result {
		assert.False(t, seen[p.ID], "produto duplicado: %s", p.ID)
		seen[p.ID] = true
	}
	assert.True(t, seen["prod-05"])
}

// TestRecommend_ModelFailureFallsBack testa a degradação obrigatória: falha
// do modelo retorna a lista alternativa do catálogo, nunca um erro.
func TestRecommend_ModelFailureFallsBack(t *testing.T) {
	history := new(MockHistoryRepository)
	products := new(MockProductRepository)
	model := new(MockModel)
	svc := recommendationservice.NewService(history, products, model, logger.NewLogger("debug"))

	catalog := catalogOf(10)
	history.On("LoadHistory", mock.Anything, "sessao-1").Return([]string{"a"}, nil)
	products.On("FindAll", mock.Anything, domain.ProductFilter{}).Return(catalog, nil)
	model.On("Recommend", mock.Anything, []string{"a"}).Return([]string{}, errors.New("timeout"))

	result, err := svc.Recommend(context.Background(), "sessao-1")

	assert.NoError(t, err)
	// Segunda página do catálogo: não repete o conjunto padrão.
	assert.Equal(t, catalog[4:8], result)
}

// TestRecommend_CatalogFailurePropagates testa o único erro possível do
// método: catálogo indisponível.
func TestRecommend_CatalogFailurePropagates(t *testing.T) {
	history := new(MockHistoryRepository)
	products := new(MockProductRepository)
	svc := recommendationservice.NewService(history, products, new(MockModel), logger.NewLogger("debug"))

	history.On("LoadHistory", mock.Anything, "sessao-1").Return([]string{}, nil)
	products.On("FindAll", mock.Anything, domain.ProductFilter{}).Return([]domain.Product{}, errors.New("conexão perdida"))

	_, err := svc.Recommend(context.Background(), "sessao-1")

	assert.Error(t, err)
}
