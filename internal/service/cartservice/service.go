package cartservice

import (
	"context"
	"fmt"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/logger"
)

// CartRepository define o contrato que este Serviço espera do slot
// persistente do carrinho.
type CartRepository interface {
	Load(ctx context.Context, owner string) (domain.CartState, bool, error)
	Save(ctx context.Context, owner string, state domain.CartState) error
	Clear(ctx context.Context, owner string) error
}

// Service implementa a interface domain.CartService: hidrata o estado do
// slot, aplica a transição pura (Apply) e espelha o snapshot resultante de
// volta no slot após cada mutação.
//
// O estado em memória do resultado é a fonte de verdade da sessão corrente:
// uma falha de persistência é logada mas não desfaz a mutação.
type Service struct {
	repo   CartRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Carrinho.
func NewService(repo CartRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// GetCart restaura o carrinho do dono. Slot ausente ou corrompido resulta em
// carrinho vazio, nunca em erro: a inicialização da sessão não pode falhar.
func (s *Service) GetCart(ctx context.Context, owner string) (domain.CartState, error) {
	if owner == "" {
		return domain.CartState{}, apperror.NewValidationError("Identificador de sessão ou usuário é obrigatório.")
	}

	state, _, err := s.repo.Load(ctx, owner)
	if err != nil {
		// Indisponibilidade do slot também degrada para carrinho vazio:
		// melhor uma sessão começando do zero do que uma loja fora do ar.
		s.logger.Error("Falha ao restaurar carrinho; seguindo com carrinho vazio.", err)
		return domain.CartState{Items: []domain.CartItem{}}, nil
	}
	return state, nil
}

// AdoptCart transfere o carrinho da sessão anônima para o slot do usuário
// autenticado: cada linha da sessão é mesclada no carrinho do usuário (mesmas
// regras do merge-on-add) e o slot de sessão é limpo em seguida. Sem sessão
// pendente, equivale a GetCart do usuário.
//
// É o que torna o carrinho de visitante visível após o login exigido pelo
// checkout: sem a adoção, o slot construído sob o X-Session-ID ficaria
// invisível sob o UserID.
func (s *Service) AdoptCart(ctx context.Context, sessionOwner, userOwner string) (domain.CartState, error) {
	if userOwner == "" {
		return domain.CartState{}, apperror.NewValidationError("Identificador de sessão ou usuário é obrigatório.")
	}
	if sessionOwner == "" || sessionOwner == userOwner {
		return s.GetCart(ctx, userOwner)
	}

	sessionState, err := s.GetCart(ctx, sessionOwner)
	if err != nil {
		return domain.CartState{}, err
	}
	userState, err := s.GetCart(ctx, userOwner)
	if err != nil {
		return domain.CartState{}, err
	}
	if sessionState.IsEmpty() {
		return userState, nil
	}

	next := userState
	for _, line := range sessionState.Items {
		next = Apply(next, domain.CartAction{Type: domain.CartActionAddItem, Item: line})
	}
	s.persist(ctx, userOwner, next)

	if err := s.repo.Clear(ctx, sessionOwner); err != nil {
		// O slot do usuário já tem as linhas; um slot de sessão remanescente
		// seria readotado (e mesclado em dobro) numa próxima adoção, então o
		// problema fica registrado.
		s.logger.Error("Falha ao limpar slot de sessão após adoção do carrinho.", err)
	}

	s.logger.Info("Carrinho de sessão anônima adotado pelo usuário.", map[string]interface{}{
		"session": sessionOwner, "user_id": userOwner, "lines": len(sessionState.Items),
	})
	return next, nil
}

// AddItem adiciona (ou mescla) uma linha no carrinho e retorna o novo estado
// junto com a mensagem de confirmação exibida ao usuário.
func (s *Service) AddItem(ctx context.Context, owner string, item domain.CartItem) (domain.CartState, string, error) {
	if owner == "" {
		return domain.CartState{}, "", apperror.NewValidationError("Identificador de sessão ou usuário é obrigatório.")
	}
	if item.ID == "" {
		return domain.CartState{}, "", apperror.NewValidationError("ID do produto é obrigatório.")
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	state, err := s.GetCart(ctx, owner)
	if err != nil {
		return domain.CartState{}, "", err
	}

	next := Apply(state, domain.CartAction{Type: domain.CartActionAddItem, Item: item})
	s.persist(ctx, owner, next)

	// Confirmação visível ao usuário (o "toast" de adicionado ao carrinho).
	ack := fmt.Sprintf("%s foi adicionado ao seu carrinho.", item.Name)
	return next, ack, nil
}

// RemoveItem remove a linha do produto, se presente (no-op idempotente).
func (s *Service) RemoveItem(ctx context.Context, owner string, itemID string) (domain.CartState, error) {
	if owner == "" {
		return domain.CartState{}, apperror.NewValidationError("Identificador de sessão ou usuário é obrigatório.")
	}

	state, err := s.GetCart(ctx, owner)
	if err != nil {
		return domain.CartState{}, err
	}

	next := Apply(state, domain.CartAction{Type: domain.CartActionRemoveItem, ItemID: itemID})
	s.persist(ctx, owner, next)
	return next, nil
}

// UpdateQuantity substitui a quantidade da linha; quantidade <= 0 equivale a
// RemoveItem.
func (s *Service) UpdateQuantity(ctx context.Context, owner string, itemID string, quantity int) (domain.CartState, error) {
	if owner == "" {
		return domain.CartState{}, apperror.NewValidationError("Identificador de sessão ou usuário é obrigatório.")
	}

	state, err := s.GetCart(ctx, owner)
	if err != nil {
		return domain.CartState{}, err
	}

	next := Apply(state, domain.CartAction{Type: domain.CartActionUpdateQuantity, ItemID: itemID, Quantity: quantity})
	s.persist(ctx, owner, next)
	return next, nil
}

// ClearCart esvazia o carrinho e remove o slot persistente.
func (s *Service) ClearCart(ctx context.Context, owner string) error {
	if owner == "" {
		return apperror.NewValidationError("Identificador de sessão ou usuário é obrigatório.")
	}

	if err := s.repo.Clear(ctx, owner); err != nil {
		// Mesma política das demais mutações: loga e segue.
		s.logger.Error("Falha ao limpar slot do carrinho.", err)
	}
	return nil
}

// persist espelha o snapshot no slot. Falha de persistência não desfaz a
// mutação em memória: é logada e a sessão continua.
func (s *Service) persist(ctx context.Context, owner string, state domain.CartState) {
	if err := s.repo.Save(ctx, owner, state); err != nil {
		s.logger.Error("Falha ao persistir snapshot do carrinho.", err)
	}
}
