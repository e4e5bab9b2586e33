package checkoutservice

import (
	"context"
	"errors"
	"fmt"
	"math"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/logger"
	"goshop/internal/pkg/payment"
)

// CartStore define o que o orquestrador precisa do carrinho: ler o estado no
// momento do checkout, adotar o slot de sessão anônima quando o login
// aconteceu no meio do fluxo e limpá-lo na conclusão.
type CartStore interface {
	GetCart(ctx context.Context, owner string) (domain.CartState, error)
	AdoptCart(ctx context.Context, sessionOwner, userOwner string) (domain.CartState, error)
	ClearCart(ctx context.Context, owner string) error
}

// Service implementa a interface domain.CheckoutService como uma máquina de
// estados explícita sobre uma única tentativa de checkout:
//
//	Idle → IntentCreated → PaymentConfirmed → OrderHeaderWritten → OrderItemsWritten
//
// Cada transição tem sua saída de falha enumerada:
//
//	criação da intenção falhou  → erro interno; nenhum estado externo criado
//	confirmação recusada        → PaymentDeclinedError; nenhum pedido criado
//	cabeçalho falhou            → ReconciliationError; pagamento já ocorreu,
//	                              sem compensação (estorno automático arriscaria
//	                              divergir do gateway) e sem retry
//	linhas falharam             → DeleteHeader (única ação compensatória) e
//	                              ReconciliationError direcionando ao suporte
//
// Os passos são estritamente sequenciais: o chamador aguarda cada I/O antes
// de prosseguir, e não há timeout próprio além do transporte subjacente.
type Service struct {
	cart    CartStore
	orders  domain.OrderRepository
	gateway payment.Gateway
	logger  logger.Logger

	shippingFee float64
	taxRate     float64
	currency    string
}

// NewService cria e retorna uma nova instância do Orquestrador de Checkout.
func NewService(cart CartStore, orders domain.OrderRepository, gateway payment.Gateway, log logger.Logger, shippingFee, taxRate float64, currency string) *Service {
	return &Service{
		cart:        cart,
		orders:      orders,
		gateway:     gateway,
		logger:      log,
		shippingFee: shippingFee,
		taxRate:     taxRate,
		currency:    currency,
	}
}

// ErrEmptyCart sinaliza checkout com carrinho vazio: rejeitado antes de
// qualquer chamada externa (a UI redireciona para a visão de carrinho vazio).
var ErrEmptyCart = apperror.NewValidationError("O carrinho está vazio.")

// ComputeQuote calcula o total a partir do estado do carrinho:
// subtotal + frete fixo + (taxa de imposto x subtotal), com o valor em
// unidades menores (centavos) arredondado.
func (s *Service) ComputeQuote(state domain.CartState) domain.Quote {
	subtotal := state.Subtotal()
	tax := subtotal * s.taxRate
	total := subtotal + s.shippingFee + tax

	return domain.Quote{
		Subtotal:    subtotal,
		Shipping:    s.shippingFee,
		Tax:         tax,
		Total:       total,
		AmountMinor: int64(math.Round(total * 100)),
	}
}

// QuoteCart lê o carrinho do dono e computa o total do checkout.
// guestSession, quando presente, é o slot da sessão anônima anterior ao login:
// se o slot do dono estiver vazio, a sessão é adotada antes de rejeitar.
func (s *Service) QuoteCart(ctx context.Context, owner, guestSession string) (domain.Quote, error) {
	if owner == "" {
		return domain.Quote{}, apperror.NewValidationError("Identificador de sessão ou usuário é obrigatório.")
	}

	state, err := s.loadCart(ctx, owner, guestSession)
	if err != nil {
		return domain.Quote{}, err
	}
	if state.IsEmpty() {
		return domain.Quote{}, ErrEmptyCart
	}

	return s.ComputeQuote(state), nil
}

// loadCart lê o slot do dono e, se estiver vazio, adota o carrinho da sessão
// anônima que o antecedeu. É o que faz o fluxo "visitante monta o carrinho,
// loga na submissão e submete" enxergar o carrinho montado antes do login.
func (s *Service) loadCart(ctx context.Context, owner, guestSession string) (domain.CartState, error) {
	state, err := s.cart.GetCart(ctx, owner)
	if err != nil {
		return domain.CartState{}, err
	}
	if state.IsEmpty() && guestSession != "" && guestSession != owner {
		return s.cart.AdoptCart(ctx, guestSession, owner)
	}
	return state, nil
}

// PlaceOrder executa a saga de checkout de ponta a ponta.
func (s *Service) PlaceOrder(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResult, error) {
	state := domain.CheckoutIdle

	// --- Pré-condições (nenhuma chamada externa ainda) ---

	// Porta de autenticação: sem identidade não há passo 1 nem estado parcial.
	if req.UserID == "" {
		return domain.CheckoutResult{}, apperror.NewUnauthorizedError("Faça login para concluir a compra.")
	}
	if req.Shipping.FullName == "" {
		return domain.CheckoutResult{}, apperror.NewValidationError("O nome completo é obrigatório.")
	}
	if req.Card.Number == "" || req.Card.CVC == "" {
		return domain.CheckoutResult{}, apperror.NewValidationError("Os dados do cartão são obrigatórios.")
	}

	cartState, err := s.loadCart(ctx, req.UserID, req.SessionID)
	if err != nil {
		return domain.CheckoutResult{}, err
	}
	if cartState.IsEmpty() {
		return domain.CheckoutResult{}, ErrEmptyCart
	}

	quote := s.ComputeQuote(cartState)
	if quote.AmountMinor <= 0 {
		// Valor inválido é rejeitado antes de contatar o gateway.
		return domain.CheckoutResult{}, apperror.NewValidationError("O valor do pedido deve ser positivo.")
	}

	// --- Passo 1: criação da intenção de pagamento ---
	intent, err := s.gateway.CreateIntent(ctx, quote.AmountMinor, s.currency)
	if err != nil {
		s.logger.Error("Checkout: falha ao criar intenção de pagamento.", err)
		return domain.CheckoutResult{}, apperror.NewInternalError("Não foi possível iniciar o pagamento. Tente novamente.", err)
	}
	state = domain.CheckoutIntentCreated
	s.logger.Info("Checkout: intenção de pagamento criada.", map[string]interface{}{
		"user_id": req.UserID, "amount_minor": quote.AmountMinor, "state": string(state),
	})

	// --- Passo 2: confirmação do pagamento ---
	if err := s.gateway.Confirm(ctx, intent.ClientSecret, payment.Card{
		Number:   req.Card.Number,
		ExpMonth: req.Card.ExpMonth,
		ExpYear:  req.Card.ExpYear,
		CVC:      req.Card.CVC,
	}); err != nil {
		// Falha reportada pelo gateway: a mensagem legível vai ao usuário e a
		// saga para aqui; nenhum pedido parcial foi criado.
		var gatewayErr *payment.GatewayError
		if errors.As(err, &gatewayErr) {
			return domain.CheckoutResult{}, apperror.NewPaymentDeclinedError(gatewayErr.Message, err)
		}
		s.logger.Error("Checkout: falha de transporte na confirmação do pagamento.", err)
		return domain.CheckoutResult{}, apperror.NewInternalError("Não foi possível confirmar o pagamento. Tente novamente.", err)
	}
	state = domain.CheckoutPaymentConfirmed

	// --- Passo 3: escrita do cabeçalho do pedido ---
	order, err := s.orders.CreateHeader(ctx, domain.Order{
		UserID:       req.UserID,
		CustomerName: req.Shipping.FullName,
		Total:        quote.Total,
	})
	if err != nil {
		// O pagamento já foi confirmado: caso de conciliação manual.
		// Sem estorno automático e sem retry (retry arriscaria cobrança dupla).
		s.logger.Error("Checkout: pagamento confirmado mas o cabeçalho do pedido falhou; requer conciliação.", err)
		return domain.CheckoutResult{}, apperror.NewReconciliationError(
			"Seu pagamento foi aprovado, mas houve um problema ao registrar o pedido. Entre em contato com o suporte e não tente pagar novamente.", err)
	}
	state = domain.CheckoutOrderHeaderWritten

	// --- Passo 4: escrita das linhas do pedido ---
	items := make([]domain.OrderItem, 0, len(cartState.Items))
	for _, line := range cartState.Items {
		items = append(items, domain.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ID,
			Name:      line.Name,
			Category:  line.Category,
			Image:     line.Image,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}

	if err := s.orders.CreateItems(ctx, order.ID, items); err != nil {
		s.logger.Error("Checkout: falha ao gravar linhas do pedido; compensando cabeçalho.", err)

		// Única ação compensatória da saga: remover o cabeçalho recém-criado
		// para não deixar um pedido Pending sem linhas visível.
		if delErr := s.orders.DeleteHeader(ctx, order.ID); delErr != nil {
			// A própria compensação falhou: cabeçalho órfão E erro reportado.
			// Política: log em nível de erro com o ID para alerta/varredura de
			// conciliação; sem retry automático aqui.
			s.logger.Error(fmt.Sprintf("Checkout: compensação falhou; cabeçalho órfão %s requer limpeza manual.", order.ID), delErr)
		}

		return domain.CheckoutResult{}, apperror.NewReconciliationError(
			"Seu pagamento foi aprovado, mas não foi possível registrar os itens do pedido. Entre em contato com o suporte e não tente pagar novamente.", err)
	}
	state = domain.CheckoutOrderItemsWritten

	// --- Passo 5: conclusão ---
	if err := s.cart.ClearCart(ctx, req.UserID); err != nil {
		// O pedido já está completo; falha ao limpar o carrinho não o desfaz.
		s.logger.Warn("Checkout: falha ao limpar o carrinho após a conclusão.", map[string]interface{}{"order_id": order.ID})
	}

	s.logger.Info("Checkout concluído com sucesso.", map[string]interface{}{
		"order_id": order.ID, "user_id": req.UserID, "total": quote.Total, "state": string(state),
	})

	return domain.CheckoutResult{
		OrderID: order.ID,
		Quote:   quote,
		State:   state,
	}, nil
}
