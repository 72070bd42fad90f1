package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Inventario-admin/internal/application/auth"
	"github.com/jhoicas/Inventario-admin/internal/application/dto"
	"github.com/jhoicas/Inventario-admin/internal/application/orderbuilder"
	"github.com/jhoicas/Inventario-admin/internal/application/toast"
	"github.com/jhoicas/Inventario-admin/internal/domain"
	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/permission"
	"github.com/jhoicas/Inventario-admin/internal/domain/repository"
)

// KeyCart clave del carrito en el Storage de la sesión.
const KeyCart = auth.KeyCart

// ReceiptRenderer genera el comprobante PDF de un pedido.
type ReceiptRenderer interface {
	Render(order *entity.Order) ([]byte, error)
}

// OrderUseCase página de pedidos: listado, carrito, cambio de estado,
// búsqueda de boletas y comprobante PDF.
type OrderUseCase struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	reports   repository.ReportRepository
	receipts  ReceiptRenderer

	// submitting un envío en vuelo por sesión, aunque lleguen peticiones en paralelo.
	submitting sync.Map
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	reports repository.ReportRepository,
	receipts ReceiptRenderer,
) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		customers: customers,
		products:  products,
		reports:   reports,
		receipts:  receipts,
	}
}

// ── Carga ────────────────────────────────────────────────────────────────────

// Load pedidos, clientes y productos en paralelo; cada sección falla por separado.
func (uc *OrderUseCase) Load(ctx context.Context, actor auth.Actor, st auth.Storage, page entity.PageRequest) *dto.OrdersView {
	ordersCh := make(chan dto.Section[*entity.Page[entity.Order]], 1)
	go func() {
		p, err := uc.orders.List(ctx, actor.Token(), page)
		if err != nil {
			ordersCh <- dto.Section[*entity.Page[entity.Order]]{Data: &entity.Page[entity.Order]{}, Error: err.Error()}
			return
		}
		ordersCh <- dto.Section[*entity.Page[entity.Order]]{Data: p}
	}()
	view := uc.lookups(ctx, actor, st)
	view.Pedidos = uc.rows(actor.Role(), <-ordersCh)
	return view
}

// lookups clientes, productos y carrito; comunes a Load y Search.
func (uc *OrderUseCase) lookups(ctx context.Context, actor auth.Actor, st auth.Storage) *dto.OrdersView {
	customersCh := make(chan dto.Section[[]entity.Customer], 1)
	productsCh := make(chan dto.Section[[]entity.Product], 1)
	go func() { customersCh <- lookup(ctx, actor.Token(), uc.customers.List) }()
	go func() { productsCh <- lookup(ctx, actor.Token(), uc.products.List) }()

	cart, err := loadCart(ctx, st)
	if err != nil {
		cart = orderbuilder.New()
	}
	return &dto.OrdersView{
		Clientes:  <-customersCh,
		Productos: <-productsCh,
		Carrito:   cartView(cart),
		Estados:   entity.OrderStatuses(),
		Acciones: permission.Allowed(actor.Role(),
			permission.CreateOrder, permission.UpdateOrder, permission.DeleteOrder, permission.UpdateOrderStatus),
	}
}

// rows ordena por id descendente y agrega los estados siguientes permitidos.
func (uc *OrderUseCase) rows(role entity.Role, in dto.Section[*entity.Page[entity.Order]]) dto.Section[*entity.Page[dto.OrderRow]] {
	out := dto.Section[*entity.Page[dto.OrderRow]]{
		Data:  &entity.Page[dto.OrderRow]{Items: []dto.OrderRow{}},
		Error: in.Error,
	}
	if in.Data == nil {
		return out
	}
	out.Data.TotalPages = in.Data.TotalPages
	out.Data.TotalElements = in.Data.TotalElements
	canChange := permission.CanAccess(role, permission.UpdateOrderStatus)
	for _, o := range in.Data.Items {
		row := dto.OrderRow{Order: o, Siguientes: []entity.OrderStatus{}, PDFDisponible: o.Estado == entity.OrderEntregado}
		if canChange {
			for _, next := range entity.OrderStatuses() {
				if entity.CanTransition(o.Estado, next) {
					row.Siguientes = append(row.Siguientes, next)
				}
			}
		}
		out.Data.Items = append(out.Data.Items, row)
	}
	sort.SliceStable(out.Data.Items, func(i, j int) bool {
		return out.Data.Items[i].ID > out.Data.Items[j].ID
	})
	return out
}

// ── Búsqueda ─────────────────────────────────────────────────────────────────

// Search boletas por DNI y/o rango de fechas (al menos un criterio).
func (uc *OrderUseCase) Search(ctx context.Context, actor auth.Actor, st auth.Storage, q dto.OrderSearchQuery) (*dto.OrdersView, error) {
	f := entity.ReceiptFilter{
		DNI:         strings.TrimSpace(q.DNI),
		FechaInicio: strings.TrimSpace(q.FechaInicio),
		FechaFin:    strings.TrimSpace(q.FechaFin),
	}
	if f.Empty() {
		err := domain.Invalid("Por favor ingresa al menos un criterio de búsqueda")
		toast.Error(ctx, err.Error())
		return nil, err
	}
	if q.Estado != "" {
		estado, err := entity.ParseOrderStatus(q.Estado)
		if err != nil {
			verr := domain.Invalid("Estado de pedido no válido")
			toast.Error(ctx, verr.Error())
			return nil, verr
		}
		f.Estado = estado
	}
	if len(f.FechaInicio) == len("2006-01-02") {
		f.FechaInicio += "T00:00:00"
	}
	if len(f.FechaFin) == len("2006-01-02") {
		f.FechaFin += "T23:59:59"
	}

	page := entity.PageRequest{Page: q.Page, Size: q.Size}
	found, err := uc.reports.SearchReceipts(ctx, actor.Token(), f, page)
	if err != nil {
		return nil, wrap("pedidos: buscar", err)
	}
	view := uc.lookups(ctx, actor, st)
	view.Pedidos = uc.rows(actor.Role(), dto.Section[*entity.Page[entity.Order]]{Data: found})
	view.Filtrado = true
	toast.Success(ctx, "Búsqueda completada")
	return view, nil
}

// ── Estado y borrado ─────────────────────────────────────────────────────────

// ChangeStatus avanza el estado del pedido según la tabla de transiciones.
func (uc *OrderUseCase) ChangeStatus(ctx context.Context, actor auth.Actor, st auth.Storage, page entity.PageRequest, id int64, estado string) (*dto.OrdersView, error) {
	if err := auth.Authorize(ctx, actor, permission.UpdateOrderStatus); err != nil {
		return nil, err
	}
	if err := validID(ctx, id); err != nil {
		return nil, err
	}
	next, err := entity.ParseOrderStatus(estado)
	if err != nil {
		verr := domain.Invalid("Estado de pedido no válido")
		toast.Error(ctx, verr.Error())
		return nil, verr
	}
	current, err := uc.orders.GetByID(ctx, actor.Token(), id)
	if err != nil {
		return nil, wrap("pedidos: leer", err)
	}
	if current == nil {
		toast.Error(ctx, "Pedido no encontrado")
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(current.Estado, next) {
		msg := fmt.Sprintf("No se puede cambiar el pedido de %s a %s", current.Estado, next)
		toast.Error(ctx, msg)
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidTransition, msg)
	}
	if _, err := uc.orders.UpdateStatus(ctx, actor.Token(), id, next); err != nil {
		return nil, wrap("pedidos: cambiar estado", err)
	}
	toast.Success(ctx, "Estado del pedido actualizado")
	return uc.Load(ctx, actor, st, page), nil
}

// Delete elimina el pedido (requiere confirm) y recarga.
func (uc *OrderUseCase) Delete(ctx context.Context, actor auth.Actor, st auth.Storage, page entity.PageRequest, id int64, confirm bool) (*dto.OrdersView, error) {
	if err := auth.Authorize(ctx, actor, permission.DeleteOrder); err != nil {
		return nil, err
	}
	if err := validID(ctx, id); err != nil {
		return nil, err
	}
	if !confirm {
		return nil, Confirmation("¿Estás seguro de que deseas eliminar este pedido?")
	}
	if err := uc.orders.Delete(ctx, actor.Token(), id); err != nil {
		return nil, wrap("pedidos: eliminar", err)
	}
	toast.Success(ctx, "Pedido eliminado exitosamente")
	return uc.Load(ctx, actor, st, page), nil
}

// ── Comprobante ──────────────────────────────────────────────────────────────

// Receipt genera el PDF de un pedido entregado.
func (uc *OrderUseCase) Receipt(ctx context.Context, actor auth.Actor, id int64) (*entity.ExportFile, error) {
	if err := validID(ctx, id); err != nil {
		return nil, err
	}
	order, err := uc.orders.GetByID(ctx, actor.Token(), id)
	if err != nil {
		return nil, wrap("pedidos: leer", err)
	}
	if order == nil {
		toast.Error(ctx, "Pedido no encontrado")
		return nil, domain.ErrNotFound
	}
	if order.Estado != entity.OrderEntregado {
		err := domain.Invalid("Solo disponible para pedidos entregados")
		toast.Error(ctx, err.Error())
		return nil, err
	}
	if order.Cliente == nil && order.ClienteID > 0 {
		order.Cliente = uc.findCustomer(ctx, actor.Token(), order.ClienteID)
	}
	data, err := uc.receipts.Render(order)
	if err != nil {
		toast.Error(ctx, "Error al generar el comprobante")
		return nil, wrap("pedidos: comprobante", err)
	}
	return &entity.ExportFile{
		FileName:    fmt.Sprintf("Pedido_%d.pdf", order.ID),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// findCustomer busca el cliente en la primera página de clientes; nil si no está.
func (uc *OrderUseCase) findCustomer(ctx context.Context, token string, id int64) *entity.Customer {
	p, err := uc.customers.List(toast.Silence(ctx), token, lookupPage)
	if err != nil {
		return nil
	}
	for _, c := range p.Items {
		if c.ID == id {
			cp := c
			return &cp
		}
	}
	return nil
}

// ── Carrito ──────────────────────────────────────────────────────────────────

func loadCart(ctx context.Context, st auth.Storage) (*orderbuilder.Builder, error) {
	raw, err := st.Get(ctx, KeyCart)
	if errors.Is(err, auth.ErrNoValue) {
		return orderbuilder.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("carrito: leer: %w", err)
	}
	return orderbuilder.Restore([]byte(raw))
}

func saveCart(ctx context.Context, st auth.Storage, b *orderbuilder.Builder) error {
	raw, err := b.Snapshot()
	if err != nil {
		return fmt.Errorf("carrito: serializar: %w", err)
	}
	if err := st.Set(ctx, KeyCart, string(raw)); err != nil {
		return fmt.Errorf("carrito: guardar: %w", err)
	}
	return nil
}

func cartView(b *orderbuilder.Builder) dto.CartView {
	lines := b.Lines()
	out := dto.CartView{
		Estado:         string(b.State()),
		Lineas:         make([]dto.CartLineView, 0, len(lines)),
		Total:          b.Total(),
		ClienteID:      b.CustomerID(),
		DireccionEnvio: b.Address(),
		MetodoPago:     b.PaymentMethod(),
		EstadoPedido:   b.Status(),
		MetodosPago:    entity.PaymentMethods(),
	}
	for i, l := range lines {
		out.Lineas = append(out.Lineas, dto.CartLineView{
			Index:          i,
			ID:             l.ID,
			Nombre:         l.Nombre,
			PrecioUnitario: l.PrecioUnitario,
			Cantidad:       l.Cantidad,
			Subtotal:       l.Subtotal(),
		})
	}
	return out
}

// editCart restaura el carrito, aplica fn y lo guarda. Un error de fn se
// notifica y el carrito queda como estaba.
func (uc *OrderUseCase) editCart(ctx context.Context, actor auth.Actor, st auth.Storage, fn func(*orderbuilder.Builder) error) (*dto.CartView, error) {
	if err := auth.Authorize(ctx, actor, permission.CreateOrder); err != nil {
		return nil, err
	}
	cart, err := loadCart(ctx, st)
	if err != nil {
		cart = orderbuilder.New()
	}
	if err := fn(cart); err != nil {
		toast.Error(ctx, userMessage(err))
		return nil, err
	}
	if err := saveCart(ctx, st, cart); err != nil {
		return nil, err
	}
	v := cartView(cart)
	return &v, nil
}

// Cart estado actual del carrito.
func (uc *OrderUseCase) Cart(ctx context.Context, st auth.Storage) dto.CartView {
	cart, err := loadCart(ctx, st)
	if err != nil {
		cart = orderbuilder.New()
	}
	return cartView(cart)
}

// AddToCart agrega un producto del catálogo al carrito.
func (uc *OrderUseCase) AddToCart(ctx context.Context, actor auth.Actor, st auth.Storage, in dto.CartItemRequest) (*dto.CartView, error) {
	var product *entity.Product
	if in.ProductoID > 0 && in.Cantidad >= 1 {
		p, err := uc.products.List(ctx, actor.Token(), lookupPage)
		if err != nil {
			return nil, wrap("carrito: productos", err)
		}
		for i := range p.Items {
			if p.Items[i].ID == in.ProductoID {
				product = &p.Items[i]
				break
			}
		}
	}
	return uc.editCart(ctx, actor, st, func(b *orderbuilder.Builder) error {
		if in.Cantidad < 1 {
			return orderbuilder.ErrInvalidQuantity
		}
		if product == nil {
			return orderbuilder.ErrNoProduct
		}
		return b.AddItem(*product, in.Cantidad)
	})
}

// UpdateCartQuantity reemplaza la cantidad de la línea index.
func (uc *OrderUseCase) UpdateCartQuantity(ctx context.Context, actor auth.Actor, st auth.Storage, index, qty int) (*dto.CartView, error) {
	return uc.editCart(ctx, actor, st, func(b *orderbuilder.Builder) error {
		return b.UpdateQuantity(index, qty)
	})
}

// RemoveCartItem quita la línea index.
func (uc *OrderUseCase) RemoveCartItem(ctx context.Context, actor auth.Actor, st auth.Storage, index int) (*dto.CartView, error) {
	return uc.editCart(ctx, actor, st, func(b *orderbuilder.Builder) error {
		return b.RemoveItem(index)
	})
}

// ClearCart vacía el carrito.
func (uc *OrderUseCase) ClearCart(ctx context.Context, actor auth.Actor, st auth.Storage) (*dto.CartView, error) {
	return uc.editCart(ctx, actor, st, func(b *orderbuilder.Builder) error {
		return b.Clear()
	})
}

// UpdateCartForm aplica cliente, dirección, método de pago y estado presentes.
func (uc *OrderUseCase) UpdateCartForm(ctx context.Context, actor auth.Actor, st auth.Storage, in dto.CartFormRequest) (*dto.CartView, error) {
	return uc.editCart(ctx, actor, st, func(b *orderbuilder.Builder) error {
		if in.ClienteID != nil {
			if err := b.SetCustomer(*in.ClienteID); err != nil {
				return err
			}
		}
		if in.DireccionEnvio != nil {
			if err := b.SetAddress(strings.TrimSpace(*in.DireccionEnvio)); err != nil {
				return err
			}
		}
		if in.MetodoPago != nil {
			if err := b.SetPaymentMethod(*in.MetodoPago); err != nil {
				return err
			}
		}
		if in.Estado != nil {
			if err := b.SetStatus(*in.Estado); err != nil {
				return err
			}
		}
		return nil
	})
}

// SubmitCart crea el pedido con el carrito de la sesión y devuelve la página recargada.
// Un segundo envío de la misma sesión mientras el primero está en vuelo
// devuelve orderbuilder.ErrSubmitInProgress.
func (uc *OrderUseCase) SubmitCart(ctx context.Context, actor auth.Actor, st auth.Storage, page entity.PageRequest) (*dto.OrdersView, error) {
	if err := auth.Authorize(ctx, actor, permission.CreateOrder); err != nil {
		return nil, err
	}
	key := actor.Token()
	if _, busy := uc.submitting.LoadOrStore(key, struct{}{}); busy {
		return nil, orderbuilder.ErrSubmitInProgress
	}
	defer uc.submitting.Delete(key)

	cart, err := loadCart(ctx, st)
	if err != nil {
		return nil, err
	}

	create := func(ctx context.Context, in *entity.NewOrder) (*entity.Order, error) {
		return uc.orders.Create(ctx, actor.Token(), in)
	}
	_, submitErr := cart.Submit(ctx, create, func(ctx context.Context) error {
		toast.Success(ctx, "Pedido creado exitosamente")
		return nil
	})
	if submitErr == nil {
		// El pedido ya existe: el carrito anterior no puede quedar en la sesión
		// o un reintento lo duplicaría.
		if err := saveCart(ctx, st, cart); err != nil {
			if rmErr := st.Remove(ctx, KeyCart); rmErr != nil {
				err = errors.Join(err, fmt.Errorf("carrito: quitar: %w", rmErr))
			}
			toast.Error(ctx, "El pedido se creó pero no se pudo vaciar el carrito")
			return nil, fmt.Errorf("pedidos: vaciar carrito: %w", err)
		}
		return uc.Load(ctx, actor, st, page), nil
	}

	var verr *domain.ValidationError
	if errors.As(submitErr, &verr) {
		toast.Error(ctx, verr.Msg)
	}
	if err := saveCart(ctx, st, cart); err != nil {
		return nil, err
	}
	return nil, wrap("pedidos: crear", submitErr)
}

// userMessage mensaje para el usuario de un error de validación o genérico.
func userMessage(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Msg
	}
	if errors.Is(err, orderbuilder.ErrSubmitInProgress) {
		return "Ya se está enviando el pedido"
	}
	return err.Error()
}
