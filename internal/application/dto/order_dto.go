package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/permission"
)

// CartItemRequest POST /orders/cart/items.
type CartItemRequest struct {
	ProductoID int64 `json:"productoId"`
	Cantidad   int   `json:"cantidad"`
}

// CartQuantityRequest PUT /orders/cart/items/:index.
type CartQuantityRequest struct {
	Cantidad int `json:"cantidad"`
}

// CartFormRequest PUT /orders/cart. Solo se aplican los campos presentes.
type CartFormRequest struct {
	ClienteID      *int64  `json:"clienteId"`
	DireccionEnvio *string `json:"direccionEnvio"`
	MetodoPago     *string `json:"metodoPago"`
	Estado         *string `json:"estado"`
}

// CartLineView línea del carrito con su posición.
type CartLineView struct {
	Index          int             `json:"index"`
	ID             int64           `json:"id"`
	Nombre         string          `json:"nombre"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Cantidad       int             `json:"cantidad"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// CartView carrito del formulario de pedido.
type CartView struct {
	Estado         string                 `json:"estado"`
	Lineas         []CartLineView         `json:"lineas"`
	Total          decimal.Decimal        `json:"total"`
	ClienteID      int64                  `json:"clienteId"`
	DireccionEnvio string                 `json:"direccionEnvio"`
	MetodoPago     entity.PaymentMethod   `json:"metodoPago"`
	EstadoPedido   entity.OrderStatus     `json:"estadoPedido"`
	MetodosPago    []entity.PaymentMethod `json:"metodosPago"`
}

// OrderStatusRequest PATCH /orders/:id/estado.
type OrderStatusRequest struct {
	Estado string `json:"estado"`
}

// OrderSearchQuery GET /orders/search.
type OrderSearchQuery struct {
	DNI         string `query:"dni"`
	Estado      string `query:"estado"`
	FechaInicio string `query:"fechaInicio"`
	FechaFin    string `query:"fechaFin"`
	Page        int    `query:"page"`
	Size        int    `query:"size"`
}

// OrderRow pedido con los estados a los que puede avanzar.
type OrderRow struct {
	entity.Order
	Siguientes    []entity.OrderStatus `json:"siguientes"`
	PDFDisponible bool                 `json:"pdfDisponible"`
}

// OrdersView página de pedidos.
type OrdersView struct {
	Pedidos   Section[*entity.Page[OrderRow]] `json:"pedidos"`
	Clientes  Section[[]entity.Customer]      `json:"clientes"`
	Productos Section[[]entity.Product]       `json:"productos"`
	Carrito   CartView                        `json:"carrito"`
	Estados   []entity.OrderStatus            `json:"estados"`
	Filtrado  bool                            `json:"filtrado"`
	Acciones  map[permission.Action]bool      `json:"acciones"`
}
