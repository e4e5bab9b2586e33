package recommendationservice

import (
	"context"
	"strings"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/logger"
	"goshop/internal/pkg/recommender"
)

// Service implementa a interface domain.RecommendationService.
//
// Requisito duro: Recommend nunca propaga falha ao chamador. Qualquer erro na
// invocação do modelo (timeout, erro HTTP, resposta malformada) degrada para
// uma lista alternativa fixa do catálogo: recomendações jamais bloqueiam ou
// quebram a página.
type Service struct {
	history  domain.HistoryRepository
	products domain.ProductRepository
	model    recommender.Client
	logger   logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Recomendações.
func NewService(history domain.HistoryRepository, products domain.ProductRepository, model recommender.Client, log logger.Logger) *Service {
	return &Service{
		history:  history,
		products: products,
		model:    model,
		logger:   log,
	}
}

// RecordView registra um recurso visitado no histórico de navegação do dono:
// sequência limitada a domain.MaxBrowsingHistory, com deduplicação por
// mover-para-frente (revisitar não insere duplicata).
func (s *Service) RecordView(ctx context.Context, owner string, ref string) error {
	if owner == "" || ref == "" {
		return apperror.NewValidationError("Dono e referência do recurso são obrigatórios.")
	}

	refs, err := s.history.LoadHistory(ctx, owner)
	if err != nil {
		// Histórico é melhor-esforço: indisponibilidade vira histórico vazio.
		s.logger.Warn("Falha ao carregar histórico; começando do zero.", map[string]interface{}{"owner": owner, "error": err.Error()})
		refs = []string{}
	}

	next := pushFront(refs, ref, domain.MaxBrowsingHistory)

	if err := s.history.SaveHistory(ctx, owner, next); err != nil {
		s.logger.Warn("Falha ao persistir histórico de navegação.", map[string]interface{}{"owner": owner, "error": err.Error()})
	}
	return nil
}

// pushFront move (ou insere) ref na frente da sequência, limitada a max.
func pushFront(refs []string, ref string, max int) []string {
	next := make([]string, 0, max)
	next = append(next, ref)
	for _, r := range refs {
		if r != ref {
			next = append(next, r)
		}
	}
	if len(next) > max {
		next = next[:max]
	}
	return next
}

// Recommend monta a lista de produtos recomendados para o dono.
// Histórico vazio retorna o conjunto padrão (primeiros produtos do catálogo);
// caso contrário invoca o modelo, resolve os nomes retornados e completa o
// resultado até domain.MaxRecommendations.
func (s *Service) Recommend(ctx context.Context, owner string) ([]domain.Product, error) {
	refs := []string{}
	if owner != "" {
		loaded, err := s.history.LoadHistory(ctx, owner)
		if err != nil {
			s.logger.Warn("Falha ao carregar histórico para recomendação.", map[string]interface{}{"owner": owner, "error": err.Error()})
		} else {
			refs = loaded
		}
	}

	// O catálogo inteiro é a base tanto da resolução de nomes quanto dos
	// conjuntos padrão e de fallback.
	catalog, err := s.products.FindAll(ctx, domain.ProductFilter{})
	if err != nil {
		// Sem catálogo não há o que recomendar; este é o único erro possível
		// deste método, e não vem do modelo de IA.
		return nil, err
	}

	// Histórico vazio: conjunto padrão (primeiras entradas do catálogo).
	if len(refs) == 0 {
		return head(catalog, domain.MaxRecommendations), nil
	}

	names, err := s.model.Recommend(ctx, refs)
	if err != nil {
		// Degradação obrigatória: lista alternativa fixa do catálogo.
		s.logger.Warn("Modelo de recomendação falhou; usando fallback do catálogo.", map[string]interface{}{"error": err.Error()})
		return fallbackSlice(catalog), nil
	}

	// Resolve cada nome por correspondência exata case-insensitive;
	// nomes não resolvidos são descartados silenciosamente.
	byName := make(map[string]domain.Product, len(catalog))
	for _, p := range catalog {
		byName[strings.ToLower(p.Name)] = p
	}

	selected := make([]domain.Product, 0, domain.MaxRecommendations)
	selectedIDs := make(map[string]bool)
	for _, name := range names {
		if p, ok := byName[strings.ToLower(name)]; ok && !selectedIDs[p.ID] {
			selected = append(selected, p)
			selectedIDs[p.ID] = true
		}
	}

	// Completa com outros produtos do catálogo até o tamanho fixo.
	for _, p := range catalog {
		if len(selected) >= domain.MaxRecommendations {
			break
		}
		if !selectedIDs[p.ID] {
			selected = append(selected, p)
			selectedIDs[p.ID] = true
		}
	}

	// Trunca caso o modelo tenha resolvido mais do que o necessário.
	return head(selected, domain.MaxRecommendations), nil
}

// head retorna os primeiros n elementos (ou todos, se houver menos).
func head(products []domain.Product, n int) []domain.Product {
	if len(products) <= n {
		return products
	}
	return products[:n]
}

// fallbackSlice é o conjunto alternativo usado quando o modelo falha:
// a segunda página do catálogo, para não repetir o conjunto padrão.
func fallbackSlice(catalog []domain.Product) []domain.Product {
	n := domain.MaxRecommendations
	if len(catalog) <= n {
		return catalog
	}
	end := 2 * n
	if end > len(catalog) {
		end = len(catalog)
	}
	return catalog[n:end]
}
