package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"goshop/internal/api/respond"
	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/logger"
	"goshop/internal/pkg/middleware"
)

// CartService define o contrato que o Handler espera do carrinho.
type CartService interface {
	GetCart(ctx context.Context, owner string) (domain.CartState, error)
	AdoptCart(ctx context.Context, sessionOwner, userOwner string) (domain.CartState, error)
	AddItem(ctx context.Context, owner string, item domain.CartItem) (domain.CartState, string, error)
	RemoveItem(ctx context.Context, owner string, itemID string) (domain.CartState, error)
	UpdateQuantity(ctx context.Context, owner string, itemID string, quantity int) (domain.CartState, error)
	ClearCart(ctx context.Context, owner string) error
}

// Handler agrupa os handlers do carrinho. O dono do carrinho vem do usuário
// autenticado ou do header de sessão anônima (X-Session-ID).
type Handler struct {
	Service CartService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc CartService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CartResponse é a resposta padrão das operações de carrinho: o estado
// resultante, o subtotal e (no add) a mensagem de confirmação.
type CartResponse struct {
	Items    []domain.CartItem `json:"items"`
	Subtotal float64           `json:"subtotal"`
	Message  string            `json:"message,omitempty"`
}

func newCartResponse(state domain.CartState, message string) CartResponse {
	return CartResponse{
		Items:    state.Items,
		Subtotal: state.Subtotal(),
		Message:  message,
	}
}

// CartHandler despacha /v1/cart: GET restaura o carrinho, DELETE o esvazia.
// @Summary Restaura ou esvazia o carrinho da sessão
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse
// @Router /v1/cart [get]
func (h *Handler) CartHandler(w http.ResponseWriter, r *http.Request) {
	owner := middleware.OwnerFromRequest(r)

	switch r.Method {
	case http.MethodGet:
		// Requisição autenticada que ainda envia o X-Session-ID: o carrinho
		// montado antes do login vive no slot da sessão e é adotado aqui.
		var state domain.CartState
		var err error
		if guest := middleware.GuestSession(r); guest != "" {
			state, err = h.Service.AdoptCart(r.Context(), guest, owner)
		} else {
			state, err = h.Service.GetCart(r.Context(), owner)
		}
		respond.JSON(w, r, h.Logger, newCartResponse(state, ""), err, http.StatusOK)

	case http.MethodDelete:
		err := h.Service.ClearCart(r.Context(), owner)
		respond.JSON(w, r, h.Logger, newCartResponse(domain.CartState{Items: []domain.CartItem{}}, ""), err, http.StatusOK)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// AddItemHandler lida com POST /v1/cart/items.
// Adicionar um produto já presente soma a quantidade (merge-on-add).
// @Summary Adiciona um item ao carrinho
// @Tags cart
// @Accept json
// @Produce json
// @Param item body domain.CartItem true "Linha a adicionar"
// @Success 200 {object} CartResponse
// @Failure 400 {object} domain.ErrorResponse
// @Router /v1/cart/items [post]
func (h *Handler) AddItemHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	owner := middleware.OwnerFromRequest(r)

	var item domain.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respond.JSON(w, r, h.Logger, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusOK)
		return
	}

	state, ack, err := h.Service.AddItem(r.Context(), owner, item)
	respond.JSON(w, r, h.Logger, newCartResponse(state, ack), err, http.StatusOK)
}

// ItemHandler despacha /v1/cart/items/{id}: PATCH atualiza a quantidade,
// DELETE remove a linha (idempotente).
// @Summary Atualiza ou remove uma linha do carrinho
// @Tags cart
// @Accept json
// @Produce json
// @Success 200 {object} CartResponse
// @Router /v1/cart/items/{id} [patch]
func (h *Handler) ItemHandler(w http.ResponseWriter, r *http.Request) {
	owner := middleware.OwnerFromRequest(r)

	// Extrai o ID dos segmentos da URL.
	path := strings.Trim(r.URL.Path, "/")
	segments := strings.Split(path, "/")
	// Esperado: ["v1", "cart", "items", "{id}"]
	if len(segments) != 4 || segments[3] == "" {
		respond.JSON(w, r, h.Logger, nil, apperror.NewValidationError("Formato de URL inválido ou ID ausente."), http.StatusOK)
		return
	}
	itemID := segments[3]

	switch r.Method {
	case http.MethodPatch, http.MethodPut:
		var payload struct {
			Quantity int `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			respond.JSON(w, r, h.Logger, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusOK)
			return
		}

		// Quantidade <= 0 equivale a remover a linha.
		state, err := h.Service.UpdateQuantity(r.Context(), owner, itemID, payload.Quantity)
		respond.JSON(w, r, h.Logger, newCartResponse(state, ""), err, http.StatusOK)

	case http.MethodDelete:
		state, err := h.Service.RemoveItem(r.Context(), owner, itemID)
		respond.JSON(w, r, h.Logger, newCartResponse(state, ""), err, http.StatusOK)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}
