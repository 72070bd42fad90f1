// Package orderbuilder arma un pedido (carrito + datos de envío) antes de la
// única llamada de creación.
//
// Estados: empty → building → submitting → {success | failed}. Cualquier
// mutación posterior a success/failed vuelve a empty o building según el carrito.
package orderbuilder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-admin/internal/domain"
	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
)

// State estado del armado.
type State string

// Estados posibles.
const (
	StateEmpty      State = "empty"
	StateBuilding   State = "building"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

// Errores del armado. Los de submit se evalúan en este orden.
// Todos salvo ErrSubmitInProgress cumplen errors.Is(err, domain.ErrValidation).
var (
	ErrInvalidQuantity  = &domain.ValidationError{Msg: "La cantidad debe ser al menos 1"}
	ErrNoProduct        = &domain.ValidationError{Msg: "Selecciona un producto"}
	ErrLineNotFound     = &domain.ValidationError{Msg: "La línea del carrito no existe"}
	ErrNoCustomer       = &domain.ValidationError{Msg: "Selecciona un cliente"}
	ErrEmptyCart        = &domain.ValidationError{Msg: "Agrega al menos un producto al carrito"}
	ErrNoAddress        = &domain.ValidationError{Msg: "Ingresa la dirección de envío"}
	ErrSubmitInProgress = errors.New("orderbuilder: ya hay un envío en curso")
)

// Line línea del carrito.
type Line struct {
	ID             int64           `json:"id"`
	Nombre         string          `json:"nombre"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Cantidad       int             `json:"cantidad"`
	Producto       entity.Product  `json:"producto"`
}

// Subtotal precio unitario por cantidad, sin redondeo.
func (l Line) Subtotal() decimal.Decimal {
	return l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad)))
}

// CreateFunc crea el pedido en el backend.
type CreateFunc func(ctx context.Context, in *entity.NewOrder) (*entity.Order, error)

// RefreshFunc recarga la lista de pedidos tras un envío exitoso.
type RefreshFunc func(ctx context.Context) error

// Builder carrito de un pedido. Seguro para uso concurrente; un segundo Submit
// mientras el primero está en vuelo devuelve ErrSubmitInProgress.
type Builder struct {
	mu        sync.Mutex
	state     State
	lines     []Line
	clienteID int64
	direccion string
	metodo    entity.PaymentMethod
	estado    entity.OrderStatus
}

// New carrito vacío con método de pago y estado por defecto.
func New() *Builder {
	return &Builder{
		state:  StateEmpty,
		metodo: entity.PaymentCredito,
		estado: entity.OrderPendiente,
	}
}

// State estado actual.
func (b *Builder) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Lines copia de las líneas.
func (b *Builder) Lines() []Line {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Line(nil), b.lines...)
}

// Quantity cantidad total de un producto en el carrito.
func (b *Builder) Quantity(productID int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range b.lines {
		if l.ID == productID {
			return l.Cantidad
		}
	}
	return 0
}

// Total suma exacta de subtotales; sin redondeo.
func (b *Builder) Total() decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total()
}

func (b *Builder) total() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range b.lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

// SubmitTotal total redondeado a 2 decimales, tal como se envía al backend.
func (b *Builder) SubmitTotal() decimal.Decimal {
	return b.Total().Round(2)
}

// CustomerID cliente seleccionado (0 = ninguno).
func (b *Builder) CustomerID() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clienteID
}

// Address dirección de envío.
func (b *Builder) Address() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.direccion
}

// PaymentMethod método de pago elegido.
func (b *Builder) PaymentMethod() entity.PaymentMethod {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.metodo
}

// Status estado inicial del pedido.
func (b *Builder) Status() entity.OrderStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.estado
}

// ── Mutaciones ───────────────────────────────────────────────────────────────

// mutate ejecuta fn bajo el lock salvo que haya un envío en curso.
func (b *Builder) mutate(fn func() error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateSubmitting {
		return ErrSubmitInProgress
	}
	if err := fn(); err != nil {
		return err
	}
	b.settle()
	return nil
}

// settle recalcula empty/building tras una mutación. Requiere b.mu.
func (b *Builder) settle() {
	if len(b.lines) == 0 {
		b.state = StateEmpty
		return
	}
	b.state = StateBuilding
}

// AddItem agrega qty unidades del producto; si ya está, suma la cantidad.
func (b *Builder) AddItem(p entity.Product, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if p.ID == 0 {
		return ErrNoProduct
	}
	return b.mutate(func() error {
		for i := range b.lines {
			if b.lines[i].ID == p.ID {
				b.lines[i].Cantidad += qty
				return nil
			}
		}
		b.lines = append(b.lines, Line{
			ID:             p.ID,
			Nombre:         p.Nombre,
			PrecioUnitario: p.Precio,
			Cantidad:       qty,
			Producto:       p,
		})
		return nil
	})
}

// UpdateQuantity reemplaza la cantidad de la línea i.
func (b *Builder) UpdateQuantity(i, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	return b.mutate(func() error {
		if i < 0 || i >= len(b.lines) {
			return ErrLineNotFound
		}
		b.lines[i].Cantidad = qty
		return nil
	})
}

// RemoveItem quita solo la línea i.
func (b *Builder) RemoveItem(i int) error {
	return b.mutate(func() error {
		if i < 0 || i >= len(b.lines) {
			return ErrLineNotFound
		}
		b.lines = append(b.lines[:i:i], b.lines[i+1:]...)
		return nil
	})
}

// Clear vacía el carrito; conserva cliente y datos de envío.
func (b *Builder) Clear() error {
	return b.mutate(func() error {
		b.lines = nil
		return nil
	})
}

// SetCustomer selecciona el cliente (0 lo deselecciona).
func (b *Builder) SetCustomer(id int64) error {
	return b.mutate(func() error {
		if id < 0 {
			id = 0
		}
		b.clienteID = id
		return nil
	})
}

// SetAddress dirección de envío.
func (b *Builder) SetAddress(dir string) error {
	return b.mutate(func() error {
		b.direccion = dir
		return nil
	})
}

// SetPaymentMethod valida contra el conjunto cerrado de métodos.
func (b *Builder) SetPaymentMethod(s string) error {
	pm, err := entity.ParsePaymentMethod(s)
	if err != nil {
		return domain.Invalid("Método de pago no válido")
	}
	return b.mutate(func() error {
		b.metodo = pm
		return nil
	})
}

// SetStatus estado inicial del pedido.
func (b *Builder) SetStatus(s string) error {
	st, err := entity.ParseOrderStatus(s)
	if err != nil {
		return domain.Invalid("Estado de pedido no válido")
	}
	return b.mutate(func() error {
		b.estado = st
		return nil
	})
}

// ── Envío ────────────────────────────────────────────────────────────────────

// validate requisitos de envío en orden. Requiere b.mu.
func (b *Builder) validate() error {
	switch {
	case b.clienteID == 0:
		return ErrNoCustomer
	case len(b.lines) == 0:
		return ErrEmptyCart
	case b.direccion == "":
		return ErrNoAddress
	}
	return nil
}

// payload arma el cuerpo de creación con total y precios redondeados a 2 decimales. Requiere b.mu.
func (b *Builder) payload() *entity.NewOrder {
	out := &entity.NewOrder{
		ClienteID:      b.clienteID,
		Total:          b.total().Round(2),
		DireccionEnvio: b.direccion,
		MetodoPago:     b.metodo,
		Estado:         b.estado,
		Detalles:       make([]entity.OrderDetail, 0, len(b.lines)),
	}
	for _, l := range b.lines {
		out.Detalles = append(out.Detalles, entity.OrderDetail{
			Producto:       l.Producto,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario.Round(2),
		})
	}
	return out
}

// Submit valida y crea el pedido. Ante un requisito faltante no se llama a create.
// En éxito el carrito queda vacío y se invoca refresh; en fallo el carrito se conserva.
func (b *Builder) Submit(ctx context.Context, create CreateFunc, refresh RefreshFunc) (*entity.Order, error) {
	b.mu.Lock()
	if b.state == StateSubmitting {
		b.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if err := b.validate(); err != nil {
		b.mu.Unlock()
		return nil, err
	}
	in := b.payload()
	b.state = StateSubmitting
	b.mu.Unlock()

	order, err := create(ctx, in)

	b.mu.Lock()
	if err != nil {
		b.state = StateFailed
		b.mu.Unlock()
		return nil, fmt.Errorf("orderbuilder: crear pedido: %w", err)
	}
	b.lines = nil
	b.clienteID = 0
	b.direccion = ""
	b.metodo = entity.PaymentCredito
	b.estado = entity.OrderPendiente
	b.state = StateSuccess
	b.mu.Unlock()

	if refresh != nil {
		// refresh solo recarga la vista; lo que deba persistirse se hace tras Submit.
		_ = refresh(ctx)
	}
	return order, nil
}

// ── Persistencia ─────────────────────────────────────────────────────────────

type snapshot struct {
	State          State                `json:"state"`
	Lines          []Line               `json:"lines"`
	ClienteID      int64                `json:"clienteId"`
	DireccionEnvio string               `json:"direccionEnvio"`
	MetodoPago     entity.PaymentMethod `json:"metodoPago"`
	Estado         entity.OrderStatus   `json:"estado"`
}

// Snapshot serializa el carrito para guardarlo en la sesión.
func (b *Builder) Snapshot() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return json.Marshal(snapshot{
		State:          b.state,
		Lines:          b.lines,
		ClienteID:      b.clienteID,
		DireccionEnvio: b.direccion,
		MetodoPago:     b.metodo,
		Estado:         b.estado,
	})
}

// Restore reconstruye un carrito guardado. Un envío interrumpido vuelve a building.
func Restore(raw []byte) (*Builder, error) {
	b := New()
	if len(raw) == 0 {
		return b, nil
	}
	var s snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("orderbuilder: snapshot ilegible: %w", err)
	}
	for _, l := range s.Lines {
		if l.ID == 0 || l.Cantidad < 1 {
			return nil, fmt.Errorf("orderbuilder: línea inválida %+v", l)
		}
	}
	b.lines = s.Lines
	b.clienteID = s.ClienteID
	b.direccion = s.DireccionEnvio
	if pm, err := entity.ParsePaymentMethod(string(s.MetodoPago)); err == nil {
		b.metodo = pm
	}
	if st, err := entity.ParseOrderStatus(string(s.Estado)); err == nil {
		b.estado = st
	}
	switch s.State {
	case StateSuccess, StateFailed:
		b.state = s.State
	default:
		b.settle()
	}
	return b, nil
}
