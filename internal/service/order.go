package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/domain/models"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/metrics"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/storage"
	"github.com/google/uuid"
)

// NewOrderItem es una línea de pedido tal y como la envía el cliente.
// Deliberadamente no lleva precio: el precio sale siempre de la base de
// datos en el momento de crear el pedido.
type NewOrderItem struct {
	ProductID int64
	Quantity  int
}

type OrderServiceInterface interface {
	Create(ctx context.Context, userID int64, items []NewOrderItem) (*models.Order, error)
	ListAll(ctx context.Context, status string) ([]*models.Order, error)
	ListMine(ctx context.Context, userID int64) ([]*models.Order, error)
	Get(ctx context.Context, callerID int64, isAdmin bool, id int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error)
	Delete(ctx context.Context, id int64) error
}

type orderService struct {
	log         *slog.Logger
	db          *sql.DB
	productRepo storage.ProductStorage
	orderRepo   storage.OrderStorage
}

func NewOrderService(log *slog.Logger, db *sql.DB, productRepo storage.ProductStorage, orderRepo storage.OrderStorage) OrderServiceInterface {
	return &orderService{
		log:         log,
		db:          db,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Create registra un pedido con estado pending. Resuelve cada producto
// dentro de la transacción y calcula unit_price y total_amount con los
// precios vigentes de la base de datos; cualquier precio que venga del
// cliente se ignora. Si algún id no resuelve, no se persiste nada.
// Invariante: totalAmount == Σ(precio actual en BD × cantidad).
func (s *orderService) Create(ctx context.Context, userID int64, items []NewOrderItem) (*models.Order, error) {
	const op = "service.OrderService.Create"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyOrder)
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%s: %w", op, ErrBadQuantity)
		}
	}

	logger.Info("starting order transaction", slog.Int("items", len(items)))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	order := &models.Order{
		Reference: uuid.NewString(),
		UserID:    userID,
		Status:    models.OrderStatusPending,
	}

	var total float64
	for _, item := range items {
		product, err := s.productRepo.GetProductByIDTx(ctx, tx, item.ProductID)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("transaction rollback failed", slog.Any("error", rbErr))
			}
			logger.Warn("order item did not resolve", slog.Int64("productID", item.ProductID))
			return nil, fmt.Errorf("%s: failed to resolve product %d: %w", op, item.ProductID, err)
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		total += product.Price * float64(item.Quantity)
	}
	order.TotalAmount = total

	created, err := s.orderRepo.CreateOrder(ctx, tx, order)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	metrics.OrdersCreated.Inc()
	logger.Info("order created", slog.Int64("orderID", created.ID), slog.Float64("total", created.TotalAmount))
	return created, nil
}

func (s *orderService) ListAll(ctx context.Context, status string) ([]*models.Order, error) {
	const op = "service.OrderService.ListAll"
	if status != "" && !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%s: %w", op, ErrBadStatus)
	}
	orders, err := s.orderRepo.ListOrders(ctx, status)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s *orderService) ListMine(ctx context.Context, userID int64) ([]*models.Order, error) {
	const op = "service.OrderService.ListMine"
	orders, err := s.orderRepo.ListOrdersByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

// Get devuelve un pedido. Quien no sea administrador solo puede leer los
// suyos; si no, ErrForbidden.
func (s *orderService) Get(ctx context.Context, callerID int64, isAdmin bool, id int64) (*models.Order, error) {
	const op = "service.OrderService.Get"
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !isAdmin && order.UserID != callerID {
		s.log.Warn("ownership check failed", slog.String("op", op),
			slog.Int64("callerID", callerID), slog.Int64("orderID", id))
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}
	return order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	const op = "service.OrderService.UpdateStatus"
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%s: %w", op, ErrBadStatus)
	}
	if err := s.orderRepo.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("order status updated", slog.String("op", op),
		slog.Int64("orderID", id), slog.String("status", status))
	return order, nil
}

func (s *orderService) Delete(ctx context.Context, id int64) error {
	const op = "service.OrderService.Delete"
	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("order deleted", slog.String("op", op), slog.Int64("orderID", id))
	return nil
}
