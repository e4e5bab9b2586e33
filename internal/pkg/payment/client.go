package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Gateway define as duas operações de pagamento consumidas pelo checkout:
// criar uma intenção de pagamento (retornando um client secret opaco) e
// confirmá-la com os dados do instrumento informados pelo usuário.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (Intent, error)
	Confirm(ctx context.Context, clientSecret string, card Card) error
}

// Intent é a intenção de pagamento criada no gateway.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// Card são os dados do instrumento repassados ao gateway na confirmação.
type Card struct {
	Number   string
	ExpMonth string
	ExpYear  string
	CVC      string
}

// GatewayError é o erro estruturado reportado pelo gateway, com a mensagem
// legível que deve ser exibida ao usuário (e.g., "Your card was declined.").
type GatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *GatewayError) Error() string { return e.Message }

// Client é a implementação HTTP do Gateway, no estilo da API do Stripe:
// POSTs form-encoded autenticados por Bearer secret key, valores monetários
// sempre em unidades menores (centavos).
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient cria o cliente do gateway de pagamentos.
// O timeout é o do transporte; a saga de checkout não impõe timeout próprio.
func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateIntent cria uma intenção de pagamento para o valor informado.
// O chamador já validou amountMinor > 0 antes de chegar aqui.
func (c *Client) CreateIntent(ctx context.Context, amountMinor int64, currency string) (Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinor, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")

	var intent Intent
	if err := c.postForm(ctx, "/v1/payment_intents", form, &intent); err != nil {
		return Intent{}, err
	}
	if intent.ClientSecret == "" {
		return Intent{}, fmt.Errorf("gateway retornou intenção sem client_secret")
	}
	return intent, nil
}

// Confirm submete os dados do cartão contra a intenção criada.
// Uma recusa do gateway volta como *GatewayError com a mensagem legível.
func (c *Client) Confirm(ctx context.Context, clientSecret string, card Card) error {
	form := url.Values{}
	form.Set("client_secret", clientSecret)
	form.Set("payment_method_data[type]", "card")
	form.Set("payment_method_data[card][number]", card.Number)
	form.Set("payment_method_data[card][exp_month]", card.ExpMonth)
	form.Set("payment_method_data[card][exp_year]", card.ExpYear)
	form.Set("payment_method_data[card][cvc]", card.CVC)

	var confirmed struct {
		Status string `json:"status"`
	}
	if err := c.postForm(ctx, "/v1/payment_intents/confirm", form, &confirmed); err != nil {
		return err
	}
	if confirmed.Status != "succeeded" {
		return &GatewayError{Code: "payment_failed", Message: "O pagamento não foi concluído pelo gateway."}
	}
	return nil
}

// postForm executa um POST form-encoded e decodifica a resposta JSON.
// Respostas de erro do gateway ({"error": {...}}) viram *GatewayError.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("falha ao montar requisição ao gateway: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("falha ao contatar o gateway de pagamentos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// O gateway reporta falhas estruturadas no corpo, com mensagem
		// destinada ao usuário final.
		var gatewayResp struct {
			Error GatewayError `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&gatewayResp); decodeErr == nil && gatewayResp.Error.Message != "" {
			return &gatewayResp.Error
		}
		return &GatewayError{
			Code:    "gateway_error",
			Message: fmt.Sprintf("O gateway de pagamentos retornou o status %d.", resp.StatusCode),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("falha ao decodificar resposta do gateway: %w", err)
		}
	}
	return nil
}
