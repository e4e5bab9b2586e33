package cartservice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"goshop/internal/domain"
	"goshop/internal/service/cartservice"
)

func item(id string, price float64, qty int) domain.CartItem {
	return domain.CartItem{ID: id, Name: "Produto " + id, Price: price, Quantity: qty}
}

// TestApply_AddItem_NewLine testa a adição de um produto ausente do carrinho.
func TestApply_AddItem_NewLine(t *testing.T) {
	state := domain.CartState{}

	next := cartservice.Apply(state, domain.CartAction{
		Type: domain.CartActionAddItem,
		Item: item("p1", 10.00, 2),
	})

	assert.Len(t, next.Items, 1)
	assert.Equal(t, "p1", next.Items[0].ID)
	assert.Equal(t, 2, next.Items[0].Quantity)
}

// TestApply_AddItem_MergesQuantities testa que adicionar um produto já
// presente soma as quantidades em vez de duplicar a linha.
func TestApply_AddItem_MergesQuantities(t *testing.T) {
	state := domain.CartState{Items: []domain.CartItem{item("p1", 10.00, 2)}}

	next := cartservice.Apply(state, domain.CartAction{
		Type: domain.CartActionAddItem,
		Item: item("p1", 10.00, 3),
	})

	assert.Len(t, next.Items, 1)
	assert.Equal(t, 5, next.Items[0].Quantity)
}

// TestApply_AddItem_PreservesInsertionOrder testa que a linha nova entra no
// fim e as existentes mantêm a posição.
func TestApply_AddItem_PreservesInsertionOrder(t *testing.T) {
	state := domain.CartState{Items: []domain.CartItem{item("p1", 10.00, 1), item("p2", 5.00, 1)}}

	next := cartservice.Apply(state, domain.CartAction{
		Type: domain.CartActionAddItem,
		Item: item("p3", 7.50, 1),
	})

	assert.Equal(t, []string{"p1", "p2", "p3"}, []string{next.Items[0].ID, next.Items[1].ID, next.Items[2].ID})
}

// TestApply_RemoveItem testa a remoção de uma linha existente.
func TestApply_RemoveItem(t *testing.T) {
	state := domain.CartState{Items: []domain.CartItem{item("p1", 10.00, 1), item("p2", 5.00, 1)}}

	next := cartservice.Apply(state, domain.CartAction{
		Type:   domain.CartActionRemoveItem,
		ItemID: "p1",
	})

	assert.Len(t, next.Items, 1)
	assert.Equal(t, "p2", next.Items[0].ID)
}

// TestApply_RemoveItem_AbsentIsNoOp testa que remover um ID ausente não é
// um erro: o estado permanece o mesmo.
func TestApply_RemoveItem_AbsentIsNoOp(t *testing.T) {
	state := domain.CartState{Items: []domain.CartItem{item("p1", 10.00, 1)}}

	next := cartservice.Apply(state, domain.CartAction{
		Type:   domain.CartActionRemoveItem,
		ItemID: "inexistente",
	})

	assert.Equal(t, state.Items, next.Items)
}

// TestApply_UpdateQuantity testa a substituição da quantidade de uma linha.
func TestApply_UpdateQuantity(t *testing.T) {
	state := domain.CartState{Items: []domain.CartItem{item("p1", 10.00, 1)}}

	next := cartservice.Apply(state, domain.CartAction{
		Type:     domain.CartActionUpdateQuantity,
		ItemID:   "p1",
		Quantity: 4,
	})

	assert.Equal(t, 4, next.Items[0].Quantity)
}

// TestApply_UpdateQuantity_ZeroRemovesLine testa que quantidade zero equivale
// a remover a linha: nenhuma linha persiste com quantidade inválida.
func TestApply_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	state := domain.CartState{Items: []domain.CartItem{item("p1", 10.00, 2)}}

	next := cartservice.Apply(state, domain.CartAction{
		Type:     domain.CartActionUpdateQuantity,
		ItemID:   "p1",
		Quantity: 0,
	})

	assert.Empty(t, next.Items)
}

// TestApply_UpdateQuantity_NegativeRemovesLine cobre o mesmo caminho para
// quantidade negativa.
func TestApply_UpdateQuantity_NegativeRemovesLine(t *testing.T) {
	state := domain.CartState{Items: []domain.CartItem{item("p1", 10.00, 2)}}

	next := cartservice.Apply(state, domain.CartAction{
		Type:     domain.CartActionUpdateQuantity,
		ItemID:   "p1",
		Quantity: -1,
	})

	assert.Empty(t, next.Items)
}

// TestApply_Clear testa o esvaziamento completo do carrinho.
func TestApply_Clear(t *testing.T) {
	state := domain.CartState{Items: []domain.CartItem{item("p1", 10.00, 1), item("p2", 5.00, 3)}}

	next := cartservice.Apply(state, domain.CartAction{Type: domain.CartActionClear})

	assert.Empty(t, next.Items)
}

// TestApply_SetState testa a substituição integral do estado (hidratação).
func TestApply_SetState(t *testing.T) {
	restored := domain.CartState{Items: []domain.CartItem{item("p9", 99.90, 2)}}

	next := cartservice.Apply(domain.CartState{}, domain.CartAction{
		Type:  domain.CartActionSetState,
		State: restored,
	})

	assert.Equal(t, restored, next)
}

// TestApply_UnknownActionLeavesStateUnchanged testa que um comando
// desconhecido não altera o estado.
func TestApply_UnknownActionLeavesStateUnchanged(t *testing.T) {
	state := domain.CartState{Items: []domain.CartItem{item("p1", 10.00, 1)}}

	next := cartservice.Apply(state, domain.CartAction{Type: "NOT_A_THING"})

	assert.Equal(t, state, next)
}

// TestApply_DoesNotMutateInput testa que Apply nunca muta o estado recebido:
// o slice original permanece intacto após um merge.
func TestApply_DoesNotMutateInput(t *testing.T) {
	original := []domain.CartItem{item("p1", 10.00, 2)}
	state := domain.CartState{Items: original}

	cartservice.Apply(state, domain.CartAction{
		Type: domain.CartActionAddItem,
		Item: item("p1", 10.00, 3),
	})

	assert.Equal(t, 2, original[0].Quantity)
}

// TestSubtotal testa a soma de preço x quantidade das linhas.
func TestSubtotal(t *testing.T) {
	state := domain.CartState{Items: []domain.CartItem{
		item("p1", 10.00, 2), // 20.00
		item("p2", 2.50, 2),  // 5.00
	}}

	assert.InDelta(t, 25.00, state.Subtotal(), 0.0001)
}
