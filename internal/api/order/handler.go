package order

import (
	"context"
	"net/http"

	"goshop/internal/api/respond"
	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/logger"
	"goshop/internal/pkg/middleware"
)

// OrderService define o contrato que o Handler espera da camada de serviço.
type OrderService interface {
	GetOrderHistory(ctx context.Context, userID string) ([]domain.Order, error)
}

// Handler agrupa os handlers de histórico de pedidos.
type Handler struct {
	Service OrderService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc OrderService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// ListOrdersHandler lida com GET /v1/orders: os pedidos do usuário
// autenticado, mais recentes primeiro, com as linhas congeladas no momento
// da compra.
// @Summary Lista os pedidos do usuário autenticado
// @Tags orders
// @Produce json
// @Success 200 {array} domain.Order
// @Failure 401 {object} domain.ErrorResponse
// @Router /v1/orders [get]
func (h *Handler) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok || claims.UserID == "" {
		respond.JSON(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Faça login para ver seus pedidos."), http.StatusOK)
		return
	}

	orders, err := h.Service.GetOrderHistory(r.Context(), claims.UserID)
	if err == nil && orders == nil {
		// Histórico vazio responde lista vazia, não null.
		orders = []domain.Order{}
	}
	respond.JSON(w, r, h.Logger, orders, err, http.StatusOK)
}
