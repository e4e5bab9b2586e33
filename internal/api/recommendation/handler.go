package recommendation

import (
	"context"
	"net/http"

	"goshop/internal/api/respond"
	"goshop/internal/domain"
	"goshop/internal/pkg/logger"
	"goshop/internal/pkg/middleware"
)

// RecommendationService define o contrato que o Handler espera da camada de
// serviço.
type RecommendationService interface {
	Recommend(ctx context.Context, owner string) ([]domain.Product, error)
}

// Handler agrupa os handlers de recomendações.
type Handler struct {
	Service RecommendationService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc RecommendationService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// RecommendationsResponse é o payload da vitrine "Recomendados para você".
type RecommendationsResponse struct {
	Products []domain.Product `json:"products"`
}

// ListRecommendationsHandler lida com GET /v1/recommendations: produtos
// personalizados a partir do histórico de navegação do dono da sessão.
// A rota nunca falha por causa do modelo: degradações viram o fallback de
// catálogo dentro do serviço.
// @Summary Lista produtos recomendados para a sessão
// @Tags recommendations
// @Produce json
// @Success 200 {object} RecommendationsResponse
// @Router /v1/recommendations [get]
func (h *Handler) ListRecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	owner := middleware.OwnerFromRequest(r)
	products, err := h.Service.Recommend(r.Context(), owner)
	if products == nil {
		products = []domain.Product{}
	}
	respond.JSON(w, r, h.Logger, RecommendationsResponse{Products: products}, err, http.StatusOK)
}
