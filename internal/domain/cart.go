package domain

import (
	"context"
)

// CartItem representa uma linha do carrinho: um snapshot mínimo do produto
// no momento em que foi adicionado, mais a quantidade desejada.
// Invariante: Quantity >= 1. Uma atualização que levaria a quantidade a zero
// (ou negativo) remove a linha em vez de persistir quantidade inválida.
type CartItem struct {
	ID       string  `json:"id"` // ID do produto (uma linha por produto)
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// CartState é a sequência ordenada de linhas do carrinho.
// A ordem de inserção é preservada apenas para exibição; a correção
// não depende dela.
type CartState struct {
	Items []CartItem `json:"items"`
}

// Subtotal calcula a soma de preço x quantidade de todas as linhas.
func (s CartState) Subtotal() float64 {
	var sum float64
	for _, item := range s.Items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// IsEmpty informa se o carrinho não possui nenhuma linha.
func (s CartState) IsEmpty() bool {
	return len(s.Items) == 0
}

// --- Ações do Carrinho (comandos etiquetados do reducer) ---

// CartActionType identifica o tipo de transição aplicada ao estado do carrinho.
type CartActionType string

const (
	CartActionAddItem        CartActionType = "ADD_ITEM"
	CartActionRemoveItem     CartActionType = "REMOVE_ITEM"
	CartActionUpdateQuantity CartActionType = "UPDATE_QUANTITY"
	CartActionClear          CartActionType = "CLEAR_CART"
	CartActionSetState       CartActionType = "SET_STATE"
)

// CartAction é o comando etiquetado processado pela função de transição pura.
// Apenas os campos relevantes para o Type precisam estar preenchidos.
type CartAction struct {
	Type     CartActionType
	Item     CartItem  // ADD_ITEM
	ItemID   string    // REMOVE_ITEM / UPDATE_QUANTITY
	Quantity int       // UPDATE_QUANTITY
	State    CartState // SET_STATE
}

// --- Interfaces de Contrato ---

// CartService define as operações do carrinho expostas à camada de API.
// O dono (owner) identifica o carrinho: ID do usuário autenticado ou ID de
// sessão do navegador; em ambos os casos há um único escritor lógico.
type CartService interface {
	GetCart(ctx context.Context, owner string) (CartState, error)
	AdoptCart(ctx context.Context, sessionOwner, userOwner string) (CartState, error)
	AddItem(ctx context.Context, owner string, item CartItem) (CartState, string, error)
	RemoveItem(ctx context.Context, owner string, itemID string) (CartState, error)
	UpdateQuantity(ctx context.Context, owner string, itemID string, quantity int) (CartState, error)
	ClearCart(ctx context.Context, owner string) error
}

// CartRepository define o slot persistente do carrinho (um blob serializado
// por dono). Get deve reportar ausência de slot de forma distinta de erro.
type CartRepository interface {
	Load(ctx context.Context, owner string) (CartState, bool, error)
	Save(ctx context.Context, owner string, state CartState) error
	Clear(ctx context.Context, owner string) error
}
