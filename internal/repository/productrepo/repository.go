package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/cache"
	"goshop/internal/pkg/logger"
)

// Chave de cache para a leitura de produto por slug (a rota mais quente da loja).
const productCacheKey = "product:%s:%s"

// TTL do cache de produto. O catálogo muda raramente; 5 minutos é suficiente.
const productCacheTTL = 5 * time.Minute

// ProductRepository implementa a interface domain.ProductRepository sobre o
// PostgreSQL, com cache-aside no Redis para a leitura por slug.
type ProductRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewProductRepository cria e retorna uma nova instância do Repositório.
// Aqui injetamos as dependências de Infraestrutura (DB e Cache).
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout time.Duration, log logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

const productColumns = `id, name, slug, category_slug, images, price, description, rating, review_count, tags`

// scanProduct mapeia uma linha do resultado para a struct domain.Product.
func scanProduct(row interface{ Scan(...interface{}) error }) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Category,
		pq.Array(&p.Images),
		&p.Price,
		&p.Description,
		&p.Rating,
		&p.ReviewCount,
		pq.Array(&p.Tags),
	)
	return p, err
}

// FindAll lista produtos, opcionalmente filtrados por categoria e limitados.
// A ordem é a que o banco retornar; não há ranking neste caminho de leitura.
func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products`
	args := []interface{}{}

	if filter.Category != "" {
		query += ` WHERE category_slug = $1`
		args = append(args, filter.Category)
	}
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
	}

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		return nil, apperror.NewDBError("Falha ao listar produtos", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, apperror.NewDBError("Falha ao mapear produto", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao iterar produtos", err)
	}

	return products, nil
}

// FindBySlug busca um produto pelo par (categoria, slug), utilizando a
// estratégia Cache-Aside.
func (r *ProductRepository) FindBySlug(ctx context.Context, categorySlug, productSlug string) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(productCacheKey, categorySlug, productSlug)
	var product domain.Product

	// --- 1. Estratégia Cache-Aside (READ) ---
	cachedData, err := r.Cache.Get(ctxTimeout, key)
	if err == nil {
		// Cache HIT
		if json.Unmarshal([]byte(cachedData), &product) == nil {
			return product, nil
		}
		// Se a desserialização falhar, seguimos para o DB.
	} else if err != cache.ErrCacheMiss {
		// Erro real de cache (ex: conexão perdida): logamos e continuamos.
		r.logger.Warn("Falha ao ler produto do cache; consultando o DB.", map[string]interface{}{"key": key, "error": err.Error()})
	}

	// --- 2. Busca no Banco de Dados (PostgreSQL) ---
	query := `SELECT ` + productColumns + ` FROM products WHERE category_slug = $1 AND slug = $2`
	row := r.DB.QueryRowContext(ctxTimeout, query, categorySlug, productSlug)

	product, err = scanProduct(row)

	// 3. Tratamento do Erro de Busca (crucial para o 404)
	if err == sql.ErrNoRows {
		return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto '%s' não existe na categoria '%s'.", productSlug, categorySlug))
	}
	if err != nil {
		return domain.Product{}, apperror.NewDBError("Falha ao buscar produto no DB", err)
	}

	// --- 4. Estratégia Cache-Aside (WRITE) ---
	if productJSON, marshalErr := json.Marshal(product); marshalErr == nil {
		if cacheErr := r.Cache.Set(ctxTimeout, key, productJSON, productCacheTTL); cacheErr != nil {
			r.logger.Warn("Falha ao popular o cache de produto.", map[string]interface{}{"key": key, "error": cacheErr.Error()})
		}
	}

	return product, nil
}

// Search faz a busca textual do catálogo: substring case-insensitive sobre
// nome e descrição, unida com correspondência de tags.
func (r *ProductRepository) Search(ctx context.Context, query string) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	// EXISTS sobre o unnest das tags cobre a variante de busca por tag;
	// ILIKE cobre nome e descrição. Sem ranking: a pertinência ao resultado
	// é o único critério.
	searchSQL := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name ILIKE $1
		   OR description ILIKE $1
		   OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $1)`

	rows, err := r.DB.QueryContext(ctxTimeout, searchSQL, "%"+query+"%")
	if err != nil {
		return nil, apperror.NewDBError("Falha na busca de produtos", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, apperror.NewDBError("Falha ao mapear produto da busca", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao iterar resultados da busca", err)
	}

	return products, nil
}
