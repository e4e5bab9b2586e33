package categoryrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/logger"
)

// CategoryRepository implementa a interface domain.CategoryRepository.
type CategoryRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewCategoryRepository cria uma nova instância do CategoryRepository.
func NewCategoryRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *CategoryRepository {
	return &CategoryRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// FindAll lista todas as categorias do catálogo.
func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT id, name, slug, image, description FROM categories`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		return nil, apperror.NewDBError("Falha ao listar categorias", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Image, &c.Description); err != nil {
			return nil, apperror.NewDBError("Falha ao mapear categoria", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao iterar categorias", err)
	}

	return categories, nil
}

// FindBySlug busca uma categoria pelo slug.
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (domain.Category, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT id, name, slug, image, description FROM categories WHERE slug = $1`
	row := r.DB.QueryRowContext(ctxTimeout, query, slug)

	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Image, &c.Description)

	if err == sql.ErrNoRows {
		// Condição "não encontrado" distinta de outros erros: vira o estado
		// terminal 404 na renderização, sem semântica de retry.
		return domain.Category{}, apperror.NewNotFoundError(fmt.Sprintf("Categoria '%s' não existe.", slug))
	}
	if err != nil {
		return domain.Category{}, apperror.NewDBError("Falha ao buscar categoria no DB", err)
	}

	return c, nil
}
