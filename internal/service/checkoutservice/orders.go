package checkoutservice

import (
	"context"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
)

// GetOrderHistory retorna os pedidos do usuário, mais recentes primeiro.
// Leitura fina: o join pedido → linhas → snapshot de produto fica no
// repositório.
func (s *Service) GetOrderHistory(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, apperror.NewUnauthorizedError("Faça login para ver seus pedidos.")
	}
	return s.orders.FindByUser(ctx, userID)
}
