package domain

import (
	"context"
)

// CheckoutState identifica a posição de uma tentativa de checkout na máquina
// de estados da saga. Cada transição tem sua saída de falha enumerada no
// orquestrador; a única ação compensatória é a remoção do cabeçalho do pedido
// quando a escrita das linhas falha.
type CheckoutState string

const (
	CheckoutIdle               CheckoutState = "Idle"
	CheckoutIntentCreated      CheckoutState = "IntentCreated"
	CheckoutPaymentConfirmed   CheckoutState = "PaymentConfirmed"
	CheckoutOrderHeaderWritten CheckoutState = "OrderHeaderWritten"
	CheckoutOrderItemsWritten  CheckoutState = "OrderItemsWritten"
)

// ShippingInfo são os dados de entrega coletados no formulário de checkout.
type ShippingInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
}

// CardDetails são os dados do instrumento de pagamento informados pelo
// usuário. São repassados opacamente ao gateway; o core nunca os persiste.
type CardDetails struct {
	Number   string `json:"number"`
	ExpMonth string `json:"exp_month"`
	ExpYear  string `json:"exp_year"`
	CVC      string `json:"cvc"`
}

// Quote é o total computado do carrinho antes do pagamento.
type Quote struct {
	Subtotal    float64 `json:"subtotal"`
	Shipping    float64 `json:"shipping"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
	AmountMinor int64   `json:"amount_minor"` // Total em unidades menores (centavos), arredondado
}

// CheckoutRequest é a entrada de uma tentativa de checkout.
// SessionID carrega o ID de sessão anônima quando o navegador ainda o envia
// após o login: o carrinho montado antes da autenticação vive nesse slot e é
// adotado pelo slot do usuário antes da saga rejeitar por carrinho vazio.
type CheckoutRequest struct {
	UserID    string
	SessionID string
	Shipping  ShippingInfo
	Card      CardDetails
}

// CheckoutResult é o desfecho de uma tentativa bem-sucedida.
type CheckoutResult struct {
	OrderID string        `json:"order_id"`
	Quote   Quote         `json:"quote"`
	State   CheckoutState `json:"state"`
}

// CheckoutService é o contrato do orquestrador para a camada de API.
// guestSession é o ID de sessão anônima a adotar quando o slot do dono está
// vazio ("" quando não há sessão pendente).
type CheckoutService interface {
	QuoteCart(ctx context.Context, owner, guestSession string) (Quote, error)
	PlaceOrder(ctx context.Context, req CheckoutRequest) (CheckoutResult, error)
}
