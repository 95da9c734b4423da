package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/lib/api/response"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/security"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/service"
)

// OrderItemRequest es una línea de pedido tal como llega del cliente.
// El campo price se acepta por compatibilidad pero se descarta: el
// precio sale siempre de la base de datos.
type OrderItemRequest struct {
	Product  int64   `json:"product" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	Price    float64 `json:"price"`
}

// CreateOrderRequest es el cuerpo de POST /api/orders.
type CreateOrderRequest struct {
	OrderItems []OrderItemRequest `json:"orderItems" validate:"required,min=1,dive"`
}

// UpdateOrderRequest es el cuerpo de PUT /api/orders/{id}.
type UpdateOrderRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateOrderHandler gestiona POST /api/orders.
func CreateOrderHandler(log *slog.Logger, orderService service.OrderServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := security.FromContext(r.Context())
		if !ok {
			response.Error(w, http.StatusUnauthorized, "No autorizado")
			return
		}

		var req CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Warn("validation error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "El pedido debe contener al menos un artículo")
			return
		}

		items := make([]service.NewOrderItem, 0, len(req.OrderItems))
		for _, item := range req.OrderItems {
			items = append(items, service.NewOrderItem{
				ProductID: item.Product,
				Quantity:  item.Quantity,
			})
		}

		order, err := orderService.Create(r.Context(), userID, items)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusCreated, "Pedido creado correctamente", order)
	}
}

// ListOrdersHandler gestiona GET /api/orders (solo administradores), con
// filtro opcional ?status=.
func ListOrdersHandler(log *slog.Logger, orderService service.OrderServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrdersHandler"
		logger := log.With(slog.String("op", op))

		orders, err := orderService.ListAll(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Pedidos obtenidos correctamente", orders)
	}
}

// MyOrdersHandler gestiona GET /api/orders/myorders.
func MyOrdersHandler(log *slog.Logger, orderService service.OrderServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.MyOrdersHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := security.FromContext(r.Context())
		if !ok {
			response.Error(w, http.StatusUnauthorized, "No autorizado")
			return
		}

		orders, err := orderService.ListMine(r.Context(), userID)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Pedidos obtenidos correctamente", orders)
	}
}

// GetOrderHandler gestiona GET /api/orders/{id}. Quien no sea
// administrador solo puede leer sus propios pedidos.
func GetOrderHandler(log *slog.Logger, orderService service.OrderServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetOrderHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := security.FromContext(r.Context())
		if !ok {
			response.Error(w, http.StatusUnauthorized, "No autorizado")
			return
		}
		id, err := idParam(r)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Identificador inválido")
			return
		}

		order, err := orderService.Get(r.Context(), userID, security.IsAdmin(r.Context()), id)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Pedido obtenido correctamente", order)
	}
}

// UpdateOrderStatusHandler gestiona PUT /api/orders/{id} (solo
// administradores); el estado debe ser uno de los tres enumerados.
func UpdateOrderStatusHandler(log *slog.Logger, orderService service.OrderServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateOrderStatusHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Identificador inválido")
			return
		}

		var req UpdateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Warn("validation error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "Estado de pedido inválido")
			return
		}

		order, err := orderService.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Pedido actualizado correctamente", order)
	}
}

// DeleteOrderHandler gestiona DELETE /api/orders/{id} (solo
// administradores).
func DeleteOrderHandler(log *slog.Logger, orderService service.OrderServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteOrderHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Identificador inválido")
			return
		}
		if err := orderService.Delete(r.Context(), id); err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Pedido eliminado correctamente", nil)
	}
}
