package domain

import (
	"context"
)

// Product representa um item do catálogo da loja (a Entidade).
// Do ponto de vista do core o produto é somente-leitura: quem escreve
// no catálogo é um processo administrativo fora deste serviço.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Category    string   `json:"category"` // Slug da categoria à qual o produto pertence
	Images      []string `json:"images"`   // Lista ordenada de identificadores de imagem
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Tags        []string `json:"tags"`
}

// Category representa uma seção do catálogo (e.g., "electronics", "apparel").
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// ProductFilter define os parâmetros de listagem do catálogo.
type ProductFilter struct {
	Category string // Slug da categoria (vazio = todas)
	Limit    int
}

// --- Interfaces de Contrato (Clean Architecture) ---

// CatalogService define o que a camada de API pode pedir ao catálogo.
// As leituras são finas: busca exata por slug e busca textual por substring,
// sem ranking além da pertinência ao resultado.
type CatalogService interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	GetProductBySlug(ctx context.Context, categorySlug, productSlug string) (Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (Category, error)
	Search(ctx context.Context, query string) ([]Product, error)
}

// ProductRepository define o contrato de persistência do catálogo.
type ProductRepository interface {
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)
	FindBySlug(ctx context.Context, categorySlug, productSlug string) (Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
}

// CategoryRepository define o contrato de persistência das categorias.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]Category, error)
	FindBySlug(ctx context.Context, slug string) (Category, error)
}
