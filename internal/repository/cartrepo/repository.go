package cartrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"goshop/internal/domain"
	"goshop/internal/pkg/cache"
	"goshop/internal/pkg/logger"
)

// Chaves dos slots persistentes por dono (usuário autenticado ou sessão
// anônima). Cada slot guarda um único blob serializado; não há garantia
// transacional entre as chaves.
const (
	cartKey    = "cart:%s"
	historyKey = "history:%s"
)

// CartRepository implementa domain.CartRepository e domain.HistoryRepository
// sobre o Redis: o equivalente servidor do armazenamento local do navegador.
// Os slots não expiram: o carrinho sobrevive entre visitas da mesma sessão.
type CartRepository struct {
	Cache  cache.Client
	logger logger.Logger
}

// NewCartRepository cria uma nova instância do CartRepository.
func NewCartRepository(cacheClient cache.Client, log logger.Logger) *CartRepository {
	return &CartRepository{
		Cache:  cacheClient,
		logger: log,
	}
}

// Load restaura o estado do carrinho do slot persistente.
// O booleano indica se havia um slot. Um blob corrompido é tratado como slot
// ausente: logamos e seguimos com carrinho vazio, pois a restauração nunca falha
// a inicialização da sessão.
func (r *CartRepository) Load(ctx context.Context, owner string) (domain.CartState, bool, error) {
	raw, err := r.Cache.Get(ctx, fmt.Sprintf(cartKey, owner))
	if err == cache.ErrCacheMiss {
		return domain.CartState{Items: []domain.CartItem{}}, false, nil
	}
	if err != nil {
		return domain.CartState{}, false, fmt.Errorf("falha ao ler slot do carrinho: %w", err)
	}

	var state domain.CartState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		r.logger.Warn("Slot do carrinho corrompido; descartando e seguindo com carrinho vazio.", map[string]interface{}{
			"owner": owner,
			"error": err.Error(),
		})
		return domain.CartState{Items: []domain.CartItem{}}, false, nil
	}
	if state.Items == nil {
		state.Items = []domain.CartItem{}
	}

	return state, true, nil
}

// Save espelha o snapshot completo do estado no slot persistente.
func (r *CartRepository) Save(ctx context.Context, owner string, state domain.CartState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("falha ao serializar carrinho: %w", err)
	}
	if err := r.Cache.Set(ctx, fmt.Sprintf(cartKey, owner), blob, 0); err != nil {
		return fmt.Errorf("falha ao persistir carrinho: %w", err)
	}
	return nil
}

// Clear remove o slot do carrinho.
func (r *CartRepository) Clear(ctx context.Context, owner string) error {
	if err := r.Cache.Delete(ctx, fmt.Sprintf(cartKey, owner)); err != nil {
		return fmt.Errorf("falha ao limpar carrinho: %w", err)
	}
	return nil
}

// --- Histórico de navegação (mesmo padrão de slot, chave própria) ---

// LoadHistory restaura o histórico de navegação do dono.
// Blob corrompido ou ausente degrada para histórico vazio, sem erro.
func (r *CartRepository) LoadHistory(ctx context.Context, owner string) ([]string, error) {
	raw, err := r.Cache.Get(ctx, fmt.Sprintf(historyKey, owner))
	if err == cache.ErrCacheMiss {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao ler slot do histórico: %w", err)
	}

	var refs []string
	if err := json.Unmarshal([]byte(raw), &refs); err != nil {
		r.logger.Warn("Slot do histórico corrompido; descartando.", map[string]interface{}{
			"owner": owner,
			"error": err.Error(),
		})
		return []string{}, nil
	}
	return refs, nil
}

// SaveHistory espelha o histórico no slot persistente.
func (r *CartRepository) SaveHistory(ctx context.Context, owner string, refs []string) error {
	blob, err := json.Marshal(refs)
	if err != nil {
		return fmt.Errorf("falha ao serializar histórico: %w", err)
	}
	if err := r.Cache.Set(ctx, fmt.Sprintf(historyKey, owner), blob, 0); err != nil {
		return fmt.Errorf("falha ao persistir histórico: %w", err)
	}
	return nil
}
