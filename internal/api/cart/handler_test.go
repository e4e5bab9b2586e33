package cart_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goshop/internal/api/cart"
	"goshop/internal/domain"
	"goshop/internal/pkg/logger"
	"goshop/internal/pkg/middleware"
)

// MockCartService é uma implementação mock da interface CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, owner string) (domain.CartState, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(domain.CartState), args.Error(1)
}

func (m *MockCartService) AdoptCart(ctx context.Context, sessionOwner, userOwner string) (domain.CartState, error) {
	args := m.Called(ctx, sessionOwner, userOwner)
	return args.Get(0).(domain.CartState), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, owner string, item domain.CartItem) (domain.CartState, string, error) {
	args := m.Called(ctx, owner, item)
	return args.Get(0).(domain.CartState), args.String(1), args.Error(2)
}

func (m *MockCartService) RemoveItem(ctx context.Context, owner string, itemID string) (domain.CartState, error) {
	args := m.Called(ctx, owner, itemID)
	return args.Get(0).(domain.CartState), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, owner string, itemID string, quantity int) (domain.CartState, error) {
	args := m.Called(ctx, owner, itemID, quantity)
	return args.Get(0).(domain.CartState), args.Error(1)
}

func (m *MockCartService) ClearCart(ctx context.Context, owner string) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

// TestCartHandler_GetRestoresSession testa GET /v1/cart com o dono resolvido
// a partir do header de sessão anônima.
func TestCartHandler_GetRestoresSession(t *testing.T) {
	mockSvc := new(MockCartService)
	handler := cart.NewHandler(mockSvc, logger.NewLogger("debug"))

	state := domain.CartState{Items: []domain.CartItem{{ID: "p1", Name: "Fone", Price: 100, Quantity: 2}}}
	mockSvc.On("GetCart", mock.Anything, "sessao-abc").Return(state, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	req.Header.Set(middleware.SessionHeader, "sessao-abc")
	rec := httptest.NewRecorder()

	handler.CartHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp cart.CartResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Items, 1)
	assert.InDelta(t, 200.00, resp.Subtotal, 0.0001)
}

// TestCartHandler_GetAdoptsGuestSessionAfterLogin testa GET /v1/cart de um
// usuário recém-logado cujo navegador ainda envia o X-Session-ID: o carrinho
// montado como visitante é adotado pelo slot do usuário em vez de sumir.
func TestCartHandler_GetAdoptsGuestSessionAfterLogin(t *testing.T) {
	mockSvc := new(MockCartService)
	handler := cart.NewHandler(mockSvc, logger.NewLogger("debug"))

	state := domain.CartState{Items: []domain.CartItem{{ID: "p1", Name: "Fone", Price: 100, Quantity: 2}}}
	mockSvc.On("AdoptCart", mock.Anything, "sessao-abc", "user-1").Return(state, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	req.Header.Set(middleware.SessionHeader, "sessao-abc")
	ctx := context.WithValue(req.Context(), middleware.UserClaimsKey, middleware.UserClaims{UserID: "user-1"})
	rec := httptest.NewRecorder()

	handler.CartHandler(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp cart.CartResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Items, 1)
	mockSvc.AssertNotCalled(t, "GetCart")
	mockSvc.AssertExpectations(t)
}

// TestAddItemHandler testa POST /v1/cart/items com a mensagem de confirmação.
func TestAddItemHandler(t *testing.T) {
	mockSvc := new(MockCartService)
	handler := cart.NewHandler(mockSvc, logger.NewLogger("debug"))

	state := domain.CartState{Items: []domain.CartItem{{ID: "p1", Name: "Fone Bluetooth Pro", Price: 299.90, Quantity: 1}}}
	mockSvc.On("AddItem", mock.Anything, "sessao-abc", mock.AnythingOfType("domain.CartItem")).
		Return(state, "Fone Bluetooth Pro foi adicionado ao seu carrinho.", nil)

	body := `{"id":"p1","name":"Fone Bluetooth Pro","price":299.90,"quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/v1/cart/items", strings.NewReader(body))
	req.Header.Set(middleware.SessionHeader, "sessao-abc")
	rec := httptest.NewRecorder()

	handler.AddItemHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp cart.CartResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Message, "Fone Bluetooth Pro")
}

// TestAddItemHandler_MalformedPayload testa o 400 para JSON inválido.
func TestAddItemHandler_MalformedPayload(t *testing.T) {
	mockSvc := new(MockCartService)
	handler := cart.NewHandler(mockSvc, logger.NewLogger("debug"))

	req := httptest.NewRequest(http.MethodPost, "/v1/cart/items", strings.NewReader(`{nope`))
	req.Header.Set(middleware.SessionHeader, "sessao-abc")
	rec := httptest.NewRecorder()

	handler.AddItemHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertNotCalled(t, "AddItem")
}

// TestItemHandler_PatchQuantity testa PATCH /v1/cart/items/{id}.
func TestItemHandler_PatchQuantity(t *testing.T) {
	mockSvc := new(MockCartService)
	handler := cart.NewHandler(mockSvc, logger.NewLogger("debug"))

	state := domain.CartState{Items: []domain.CartItem{{ID: "p1", Price: 10, Quantity: 4}}}
	mockSvc.On("UpdateQuantity", mock.Anything, "sessao-abc", "p1", 4).Return(state, nil)

	req := httptest.NewRequest(http.MethodPatch, "/v1/cart/items/p1", strings.NewReader(`{"quantity":4}`))
	req.Header.Set(middleware.SessionHeader, "sessao-abc")
	rec := httptest.NewRecorder()

	handler.ItemHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockSvc.AssertExpectations(t)
}

// TestItemHandler_DeleteRemovesLine testa DELETE /v1/cart/items/{id}.
func TestItemHandler_DeleteRemovesLine(t *testing.T) {
	mockSvc := new(MockCartService)
	handler := cart.NewHandler(mockSvc, logger.NewLogger("debug"))

	mockSvc.On("RemoveItem", mock.Anything, "sessao-abc", "p1").
		Return(domain.CartState{Items: []domain.CartItem{}}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/v1/cart/items/p1", nil)
	req.Header.Set(middleware.SessionHeader, "sessao-abc")
	rec := httptest.NewRecorder()

	handler.ItemHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockSvc.AssertExpectations(t)
}

// TestItemHandler_MissingID testa o 400 quando a URL não traz o ID da linha.
func TestItemHandler_MissingID(t *testing.T) {
	mockSvc := new(MockCartService)
	handler := cart.NewHandler(mockSvc, logger.NewLogger("debug"))

	req := httptest.NewRequest(http.MethodDelete, "/v1/cart/items/", nil)
	req.Header.Set(middleware.SessionHeader, "sessao-abc")
	rec := httptest.NewRecorder()

	handler.ItemHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertNotCalled(t, "RemoveItem")
}

// TestCartHandler_MethodNotAllowed testa a recusa de métodos não suportados.
func TestCartHandler_MethodNotAllowed(t *testing.T) {
	handler := cart.NewHandler(new(MockCartService), logger.NewLogger("debug"))

	req := httptest.NewRequest(http.MethodPost, "/v1/cart", nil)
	rec := httptest.NewRecorder()

	handler.CartHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
