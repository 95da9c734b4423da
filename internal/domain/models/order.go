package models

import "time"

// Estados posibles de un pedido.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus comprueba que el estado es uno de los tres enumerados.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem es una línea de pedido. UnitPrice se fija en el servidor con
// el precio vigente del producto en el momento de la compra, nunca con el
// precio que envíe el cliente.
type OrderItem struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"-"`
	ProductID   int64   `json:"product"`
	ProductName string  `json:"productName,omitempty"` // se rellena con JOIN sobre products
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPriceAtPurchase"`
}

// Order representa un pedido de un usuario.
type Order struct {
	ID          int64       `json:"id"`
	Reference   string      `json:"reference"`
	UserID      int64       `json:"user"`
	UserEmail   string      `json:"userEmail,omitempty"` // se rellena con JOIN sobre users
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}
