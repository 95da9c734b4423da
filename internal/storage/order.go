package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/domain/models"
	"github.com/lib/pq"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStorage describe los métodos de acceso a las tablas orders y order_items.
type OrderStorage interface {
	// CreateOrder inserta el pedido y todas sus líneas dentro de la
	// transacción recibida; si algo falla no queda estado parcial.
	CreateOrder(ctx context.Context, tx *sql.Tx, order *models.Order) (*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, status string) ([]*models.Order, error)
	ListOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) error
	DeleteOrder(ctx context.Context, id int64) error
}

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, tx *sql.Tx, order *models.Order) (*models.Order, error) {
	err := tx.QueryRowContext(ctx,
		`INSERT INTO orders (reference, user_id, total_amount, status, created_at)
		 VALUES ($1, $2, $3, $4, NOW()) RETURNING id, created_at`,
		order.Reference, order.UserID, order.TotalAmount, order.Status,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err := tx.QueryRowContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			item.OrderID, item.ProductID, item.Quantity, item.UnitPrice,
		).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	return order, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	order := &models.Order{}
	row := r.db.QueryRowContext(ctx,
		`SELECT o.id, o.reference, o.user_id, u.email, o.total_amount, o.status, o.created_at
		 FROM orders o JOIN users u ON o.user_id = u.id WHERE o.id = $1`, id)
	if err := row.Scan(&order.ID, &order.Reference, &order.UserID, &order.UserEmail,
		&order.TotalAmount, &order.Status, &order.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if err := r.loadItems(ctx, []*models.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, status string) ([]*models.Order, error) {
	query := `SELECT o.id, o.reference, o.user_id, u.email, o.total_amount, o.status, o.created_at
	          FROM orders o JOIN users u ON o.user_id = u.id`
	var args []interface{}
	if status != "" {
		query += " WHERE o.status = $1"
		args = append(args, status)
	}
	query += " ORDER BY o.created_at DESC"
	return r.queryOrders(ctx, query, args...)
}

func (r *orderRepository) ListOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error) {
	query := `SELECT o.id, o.reference, o.user_id, u.email, o.total_amount, o.status, o.created_at
	          FROM orders o JOIN users u ON o.user_id = u.id
	          WHERE o.user_id = $1 ORDER BY o.created_at DESC`
	return r.queryOrders(ctx, query, userID)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.Reference, &order.UserID, &order.UserEmail,
			&order.TotalAmount, &order.Status, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadItems rellena las líneas de todos los pedidos con una sola consulta.
func (r *orderRepository) loadItems(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*models.Order, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
		byID[order.ID] = order
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT i.id, i.order_id, i.product_id, p.name, i.quantity, i.unit_price
		 FROM order_items i JOIN products p ON i.product_id = p.id
		 WHERE i.order_id = ANY($1) ORDER BY i.id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		item := models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice); err != nil {
			return err
		}
		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	return rows.Err()
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE orders SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, id int64) error {
	// las líneas caen en cascada por la FK
	res, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
