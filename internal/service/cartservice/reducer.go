package cartservice

import (
	"goshop/internal/domain"
)

// Apply é a função de transição pura do carrinho: recebe um estado e um
// comando etiquetado e retorna o novo estado, sem nenhum I/O. Isso mantém a
// máquina de estados testável isoladamente da persistência.
//
// Invariantes garantidas por construção:
//   - no máximo uma linha por ID de produto (adicionar um ID já presente soma
//     a quantidade em vez de duplicar);
//   - toda linha tem Quantity >= 1 (uma atualização que levaria a quantidade
//     a zero ou negativo remove a linha);
//   - a ordem de inserção é preservada para exibição.
func Apply(state domain.CartState, action domain.CartAction) domain.CartState {
	switch action.Type {

	case domain.CartActionAddItem:
		// Merge-on-add: se o produto já está no carrinho, soma as quantidades.
		for i, item := range state.Items {
			if item.ID == action.Item.ID {
				merged := cloneItems(state.Items)
				merged[i].Quantity += action.Item.Quantity
				return domain.CartState{Items: merged}
			}
		}
		items := cloneItems(state.Items)
		items = append(items, action.Item)
		return domain.CartState{Items: items}

	case domain.CartActionRemoveItem:
		// Remoção idempotente: ID ausente é um no-op, não um erro.
		return domain.CartState{Items: filterOut(state.Items, action.ItemID)}

	case domain.CartActionUpdateQuantity:
		if action.Quantity <= 0 {
			// Quantidade não-positiva equivale a remover a linha.
			return domain.CartState{Items: filterOut(state.Items, action.ItemID)}
		}
		items := cloneItems(state.Items)
		for i := range items {
			if items[i].ID == action.ItemID {
				items[i].Quantity = action.Quantity
			}
		}
		return domain.CartState{Items: items}

	case domain.CartActionClear:
		return domain.CartState{Items: []domain.CartItem{}}

	case domain.CartActionSetState:
		return action.State

	default:
		// Comando desconhecido: estado inalterado.
		return state
	}
}

// cloneItems copia a sequência de linhas; Apply nunca muta o estado recebido.
func cloneItems(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}

// filterOut retorna a sequência sem a linha do ID informado.
func filterOut(items []domain.CartItem, id string) []domain.CartItem {
	out := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}
