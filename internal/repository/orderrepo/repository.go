package orderrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/logger"
)

// OrderRepository implementa a interface domain.OrderRepository.
// As escritas do checkout são deliberadamente duas operações separadas
// (cabeçalho e linhas): a saga precisa observar a falha entre elas e aplicar
// a compensação (DeleteHeader); não é uma transação única.
type OrderRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewOrderRepository cria uma nova instância do OrderRepository.
func NewOrderRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *OrderRepository {
	return &OrderRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// CreateHeader persiste o cabeçalho do pedido (fase 1 da escrita).
// O status é sempre inicializado como Pending.
func (r *OrderRepository) CreateHeader(ctx context.Context, order domain.Order) (domain.Order, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	order.Status = domain.OrderStatusPending
	order.CreatedAt = time.Now().UTC()

	const headerSQL = `INSERT INTO orders (id, user_id, customer_name, total, status, created_at)
	                   VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(ctxTimeout, headerSQL,
		order.ID,
		order.UserID,
		order.CustomerName,
		order.Total,
		order.Status,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir cabeçalho de pedido no DB.", err)
		return domain.Order{}, apperror.NewDBError("failed to insert order header", err)
	}

	return order, nil
}

// CreateItems persiste as linhas do pedido (fase 2 da escrita), todas
// referenciando o cabeçalho pelo id. As linhas entre si são atômicas (uma
// transação), mas a atomicidade com o cabeçalho é responsabilidade da saga.
func (r *OrderRepository) CreateItems(ctx context.Context, orderID string, items []domain.OrderItem) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return apperror.NewDBError("failed to start tx", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	const itemSQL = `INSERT INTO order_items (order_id, product_id, name, category, image, price, quantity)
	                 VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, item := range items {
		_, err = tx.ExecContext(ctxTimeout, itemSQL,
			orderID,
			item.ProductID,
			item.Name,
			item.Category,
			item.Image,
			item.Price,
			item.Quantity,
		)
		if err != nil {
			return apperror.NewDBError("failed to insert order items", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return apperror.NewDBError("failed to commit tx", err)
	}

	return nil
}

// DeleteHeader remove o cabeçalho do pedido, a única ação compensatória da
// saga de checkout, usada quando a escrita das linhas falha.
func (r *OrderRepository) DeleteHeader(ctx context.Context, orderID string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		r.logger.Error("Falha ao remover cabeçalho de pedido (compensação).", err)
		return apperror.NewDBError("failed to delete order header", err)
	}
	return nil
}

// FindByUser retorna o histórico de pedidos do usuário, mais recentes
// primeiro, com as linhas de cada pedido.
func (r *OrderRepository) FindByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		SELECT o.id, o.user_id, o.customer_name, o.total, o.status, o.created_at,
		       i.product_id, i.name, i.category, i.image, i.price, i.quantity
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, userID)
	if err != nil {
		return nil, apperror.NewDBError("Falha ao buscar pedidos do usuário", err)
	}
	defer rows.Close()

	// Agrupa as linhas do join por pedido, preservando a ordem retornada.
	orders := []domain.Order{}
	index := map[string]int{}

	for rows.Next() {
		var o domain.Order
		var productID, name, category, image sql.NullString
		var price sql.NullFloat64
		var quantity sql.NullInt64

		err := rows.Scan(
			&o.ID, &o.UserID, &o.CustomerName, &o.Total, &o.Status, &o.CreatedAt,
			&productID, &name, &category, &image, &price, &quantity,
		)
		if err != nil {
			return nil, apperror.NewDBError("Falha ao mapear pedido", err)
		}

		pos, seen := index[o.ID]
		if !seen {
			o.Items = []domain.OrderItem{}
			orders = append(orders, o)
			pos = len(orders) - 1
			index[o.ID] = pos
		}

		// LEFT JOIN: um pedido sem linhas vem com colunas de item nulas.
		if productID.Valid {
			orders[pos].Items = append(orders[pos].Items, domain.OrderItem{
				OrderID:   o.ID,
				ProductID: productID.String,
				Name:      name.String,
				Category:  category.String,
				Image:     image.String,
				Price:     price.Float64,
				Quantity:  int(quantity.Int64),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao iterar pedidos", err)
	}

	return orders, nil
}
