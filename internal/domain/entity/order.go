package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido. Conjunto cerrado validado en la frontera.
type OrderStatus string

// Estados de pedido.
const (
	OrderPendiente  OrderStatus = "PENDIENTE"
	OrderConfirmado OrderStatus = "CONFIRMADO"
	OrderEnviado    OrderStatus = "ENVIADO"
	OrderEntregado  OrderStatus = "ENTREGADO"
	OrderCancelado  OrderStatus = "CANCELADO"
)

// Avance permitido hacia adelante; ENTREGADO y CANCELADO son terminales.
var validNextStatus = map[OrderStatus]map[OrderStatus]bool{
	OrderPendiente:  {OrderConfirmado: true, OrderEnviado: true, OrderEntregado: true, OrderCancelado: true},
	OrderConfirmado: {OrderEnviado: true, OrderEntregado: true, OrderCancelado: true},
	OrderEnviado:    {OrderEntregado: true, OrderCancelado: true},
	OrderEntregado:  {},
	OrderCancelado:  {},
}

// OrderStatuses devuelve los estados en orden de ciclo de vida.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPendiente, OrderConfirmado, OrderEnviado, OrderEntregado, OrderCancelado}
}

// ParseOrderStatus valida un estado recibido como texto.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := validNextStatus[st]; !ok {
		return "", fmt.Errorf("estado de pedido desconocido %q", s)
	}
	return st, nil
}

// CanTransition indica si un pedido puede pasar de from a to.
func CanTransition(from, to OrderStatus) bool {
	return validNextStatus[from][to]
}

// PaymentMethod método de pago ofrecido en el formulario de pedido.
type PaymentMethod string

// Métodos de pago.
const (
	PaymentCredito       PaymentMethod = "Tarjeta de crédito"
	PaymentDebito        PaymentMethod = "Tarjeta de débito"
	PaymentTransferencia PaymentMethod = "Transferencia bancaria"
	PaymentEfectivo      PaymentMethod = "Efectivo"
)

// PaymentMethods devuelve los métodos de pago en el orden del formulario.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCredito, PaymentDebito, PaymentTransferencia, PaymentEfectivo}
}

// ParsePaymentMethod valida el método de pago.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch pm := PaymentMethod(strings.TrimSpace(s)); pm {
	case PaymentCredito, PaymentDebito, PaymentTransferencia, PaymentEfectivo:
		return pm, nil
	}
	return "", fmt.Errorf("método de pago desconocido %q", s)
}

// OrderDetail línea de un pedido.
type OrderDetail struct {
	Producto       Product         `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
}

// Subtotal precio unitario por cantidad, sin redondeo.
func (d OrderDetail) Subtotal() decimal.Decimal {
	return d.PrecioUnitario.Mul(decimal.NewFromInt(int64(d.Cantidad)))
}

// Order pedido tal como lo devuelve el backend.
type Order struct {
	ID             int64           `json:"id"`
	ClienteID      int64           `json:"clienteId"`
	Cliente        *Customer       `json:"cliente,omitempty"`
	Total          decimal.Decimal `json:"total"`
	DireccionEnvio string          `json:"direccionEnvio"`
	MetodoPago     string          `json:"metodoPago"`
	Estado         OrderStatus     `json:"estado"`
	FechaPedido    string          `json:"fechaPedido,omitempty"`
	Detalles       []OrderDetail   `json:"detalles"`
}

// NewOrder payload de creación de pedido.
type NewOrder struct {
	ClienteID      int64           `json:"clienteId"`
	Total          decimal.Decimal `json:"total"`
	DireccionEnvio string          `json:"direccionEnvio"`
	MetodoPago     PaymentMethod   `json:"metodoPago"`
	Estado         OrderStatus     `json:"estado"`
	Detalles       []OrderDetail   `json:"detalles"`
}
