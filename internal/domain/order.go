package domain

import (
	"context"
	"time"
)

// OrderStatus é o estado de cumprimento do pedido.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// Order representa o cabeçalho de um pedido já pago.
// É criado pelo orquestrador de checkout em duas fases: primeiro o cabeçalho
// (sempre com status Pending), depois as linhas referenciando o cabeçalho.
type Order struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	CustomerName string      `json:"customer_name"`
	Total        float64     `json:"total"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	Items        []OrderItem `json:"items"`
}

// OrderItem é uma linha do pedido: snapshot do produto + quantidade.
type OrderItem struct {
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderRepository define o contrato de persistência de pedidos.
// CreateHeader e CreateItems são deliberadamente separados: o orquestrador de
// checkout precisa da escrita em duas fases com compensação explícita
// (DeleteHeader) quando a segunda fase falha.
type OrderRepository interface {
	CreateHeader(ctx context.Context, order Order) (Order, error)
	CreateItems(ctx context.Context, orderID string, items []OrderItem) error
	DeleteHeader(ctx context.Context, orderID string) error
	FindByUser(ctx context.Context, userID string) ([]Order, error)
}

// OrderService define a leitura do histórico de pedidos para a API.
type OrderService interface {
	GetOrderHistory(ctx context.Context, userID string) ([]Order, error)
}
