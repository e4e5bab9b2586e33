package recommender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client invoca o modelo de recomendação: recebe o histórico de navegação
// (lista ordenada de strings) e retorna nomes de produtos sugeridos.
// Qualquer falha aqui (timeout, erro HTTP, resposta malformada) é tratada
// pelo chamador como degradação para a lista de fallback; nunca propaga
// para a página.
type Client interface {
	Recommend(ctx context.Context, browsingHistory []string) ([]string, error)
}

// HTTPClient é a implementação concreta contra o endpoint do modelo.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient cria o cliente do modelo de recomendação.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Recommend envia o histórico e devolve a lista de nomes de produtos.
func (c *HTTPClient) Recommend(ctx context.Context, browsingHistory []string) ([]string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"browsing_history": browsingHistory,
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao serializar histórico: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/recommendations", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("falha ao montar requisição ao modelo: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("falha ao invocar o modelo de recomendação: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("modelo de recomendação retornou status %d", resp.StatusCode)
	}

	var result struct {
		Recommendations []string `json:"recommendations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("resposta malformada do modelo: %w", err)
	}

	return result.Recommendations, nil
}
