package checkout

import (
	"context"
	"encoding/json"
	"net/http"

	"goshop/internal/api/respond"
	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/logger"
	"goshop/internal/pkg/middleware"
)

// CheckoutService define o contrato que o Handler espera do orquestrador.
type CheckoutService interface {
	QuoteCart(ctx context.Context, owner, guestSession string) (domain.Quote, error)
	PlaceOrder(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResult, error)
}

// Handler agrupa os handlers de checkout.
type Handler struct {
	Service CheckoutService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc CheckoutService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// QuoteHandler lida com GET /v1/checkout/quote: o resumo do pedido
// (subtotal, frete, imposto, total) para a página de checkout.
// @Summary Calcula o total do carrinho para o checkout
// @Tags checkout
// @Produce json
// @Success 200 {object} domain.Quote
// @Failure 400 {object} domain.ErrorResponse
// @Router /v1/checkout/quote [get]
func (h *Handler) QuoteHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	owner := middleware.OwnerFromRequest(r)
	quote, err := h.Service.QuoteCart(r.Context(), owner, middleware.GuestSession(r))
	respond.JSON(w, r, h.Logger, quote, err, http.StatusOK)
}

// PlaceOrderRequest é o payload de submissão do checkout.
type PlaceOrderRequest struct {
	Shipping domain.ShippingInfo `json:"shipping"`
	Card     domain.CardDetails  `json:"card"`
}

// PlaceOrderHandler lida com POST /v1/checkout.
// A rota é protegida pelo middleware de autenticação: sem identidade a saga
// nem inicia (nenhum estado parcial é criado).
// @Summary Executa a saga de checkout (pagamento + pedido)
// @Tags checkout
// @Accept json
// @Produce json
// @Param checkout body PlaceOrderRequest true "Dados de entrega e pagamento"
// @Success 201 {object} domain.CheckoutResult
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 402 {object} domain.ErrorResponse
// @Router /v1/checkout [post]
func (h *Handler) PlaceOrderHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	claims, ok := middleware.GetUserClaimsFromContext(ctx)
	if !ok || claims.UserID == "" {
		// O middleware já deveria ter barrado; reforçamos a porta aqui para
		// que nenhum caminho alcance o gateway sem identidade.
		respond.JSON(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Faça login para concluir a compra."), http.StatusOK)
		return
	}

	var payload PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.JSON(w, r, h.Logger, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusOK)
		return
	}

	result, err := h.Service.PlaceOrder(ctx, domain.CheckoutRequest{
		UserID:    claims.UserID,
		SessionID: middleware.GuestSession(r),
		Shipping:  payload.Shipping,
		Card:      payload.Card,
	})
	respond.JSON(w, r, h.Logger, result, err, http.StatusCreated)
}
