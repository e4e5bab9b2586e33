package domain

import (
	"context"
)

// MaxBrowsingHistory é o tamanho máximo do histórico de navegação.
// Revisitar um recurso já presente move-o para a frente em vez de duplicar.
const MaxBrowsingHistory = 5

// MaxRecommendations é o tamanho fixo da lista de recomendações retornada
// ao cliente. Resultados curtos são completados com outros produtos do
// catálogo; resultados longos são truncados.
const MaxRecommendations = 4

// RecommendationService define o gateway de recomendações.
// Recommend nunca falha por causa do modelo de IA: qualquer erro degrada
// para uma lista alternativa do catálogo: a página nunca bloqueia.
type RecommendationService interface {
	RecordView(ctx context.Context, owner string, ref string) error
	Recommend(ctx context.Context, owner string) ([]Product, error)
}

// HistoryRepository define o slot persistente do histórico de navegação:
// uma sequência ordenada e limitada de identificadores recentes por dono.
type HistoryRepository interface {
	LoadHistory(ctx context.Context, owner string) ([]string, error)
	SaveHistory(ctx context.Context, owner string, refs []string) error
}
