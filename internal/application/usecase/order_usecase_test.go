package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-admin/internal/application/dto"
	"github.com/jhoicas/Inventario-admin/internal/application/orderbuilder"
	"github.com/jhoicas/Inventario-admin/internal/application/usecase"
	"github.com/jhoicas/Inventario-admin/internal/domain"
	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/permission"
)

type orderFixture struct {
	uc        *usecase.OrderUseCase
	orders    *fakeOrders
	customers *fakeRepo[entity.Customer]
	products  *fakeRepo[entity.Product]
	reports   *fakeReports
	renderer  *fakeRenderer
	st        *memStorage
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders: &fakeOrders{orders: []entity.Order{
			{ID: 3, ClienteID: 1, Estado: entity.OrderPendiente, Total: decimal.NewFromInt(20)},
			{ID: 7, ClienteID: 1, Estado: entity.OrderEntregado, Total: decimal.NewFromInt(50)},
			{ID: 5, ClienteID: 2, Estado: entity.OrderEnviado, Total: decimal.NewFromInt(10)},
		}},
		customers: &fakeRepo[entity.Customer]{items: []entity.Customer{
			{ID: 1, Nombre: "Ana", Apellido: "Ríos", DNI: "12345678"},
			{ID: 2, Nombre: "Luis"},
		}},
		products: &fakeRepo[entity.Product]{items: []entity.Product{
			{ID: 10, Nombre: "Teclado", Precio: decimal.RequireFromString("10.116")},
			{ID: 11, Nombre: "Mouse", Precio: decimal.RequireFromString("5")},
		}},
		reports:  &fakeReports{},
		renderer: &fakeRenderer{},
		st:       newMemStorage(),
	}
	f.uc = usecase.NewOrderUseCase(f.orders, f.customers, f.products, f.reports, f.renderer)
	return f
}

func ptr[T any](v T) *T { return &v }

func TestOrders_LoadOrdenaYCalculaSiguientes(t *testing.T) {
	f := newOrderFixture()
	ctx, _ := ctxWithToaster()

	view := f.uc.Load(ctx, admin, f.st, firstPage)
	require.Empty(t, view.Pedidos.Error)
	rows := view.Pedidos.Data.Items
	require.Len(t, rows, 3)
	assert.Equal(t, []int64{7, 5, 3}, []int64{rows[0].ID, rows[1].ID, rows[2].ID}, "pedidos por id descendente")

	assert.Empty(t, rows[0].Siguientes, "ENTREGADO es terminal")
	assert.True(t, rows[0].PDFDisponible)
	assert.Equal(t, []entity.OrderStatus{entity.OrderEntregado, entity.OrderCancelado}, rows[1].Siguientes)
	assert.False(t, rows[2].PDFDisponible)
	assert.Len(t, view.Clientes.Data, 2)
	assert.Len(t, view.Productos.Data, 2)
	assert.Equal(t, "empty", view.Carrito.Estado)
}

func TestOrders_UserNoVeCambiosDeEstado(t *testing.T) {
	f := newOrderFixture()
	ctx, _ := ctxWithToaster()

	view := f.uc.Load(ctx, user, f.st, firstPage)
	for _, r := range view.Pedidos.Data.Items {
		assert.Empty(t, r.Siguientes)
	}
	assert.False(t, view.Acciones[permission.UpdateOrderStatus])
	assert.True(t, view.Acciones[permission.DeleteOrder])
}

func TestCart_FlujoCompleto(t *testing.T) {
	f := newOrderFixture()
	ctx, tst := ctxWithToaster()

	cart, err := f.uc.AddToCart(ctx, user, f.st, dto.CartItemRequest{ProductoID: 10, Cantidad: 2})
	require.NoError(t, err)
	require.Len(t, cart.Lineas, 1)
	assert.Equal(t, "building", cart.Estado)

	cart, err = f.uc.AddToCart(ctx, user, f.st, dto.CartItemRequest{ProductoID: 10, Cantidad: 1})
	require.NoError(t, err)
	require.Len(t, cart.Lineas, 1, "el mismo producto se acumula en la misma línea")
	assert.Equal(t, 3, cart.Lineas[0].Cantidad)

	_, err = f.uc.UpdateCartForm(ctx, user, f.st, dto.CartFormRequest{
		ClienteID:      ptr(int64(1)),
		DireccionEnvio: ptr("  Av. Siempre Viva 742 "),
		MetodoPago:     ptr("Efectivo"),
	})
	require.NoError(t, err)

	view, err := f.uc.SubmitCart(ctx, user, f.st, firstPage)
	require.NoError(t, err)
	require.Len(t, f.orders.created, 1)
	sent := f.orders.created[0]
	assert.Equal(t, int64(1), sent.ClienteID)
	assert.Equal(t, "Av. Siempre Viva 742", sent.DireccionEnvio)
	assert.Equal(t, entity.PaymentEfectivo, sent.MetodoPago)
	assert.Equal(t, entity.OrderPendiente, sent.Estado)
	assert.Equal(t, "30.35", sent.Total.StringFixed(2), "total redondeado a 2 decimales")

	assert.Contains(t, messages(tst), "Pedido creado exitosamente")
	assert.Empty(t, view.Carrito.Lineas, "el carrito queda vacío tras el éxito")
	assert.Len(t, view.Pedidos.Data.Items, 4)

	again := f.uc.Cart(ctx, f.st)
	assert.Empty(t, again.Lineas, "el carrito vacío se guarda en la sesión")
}

func TestCart_ValidacionAntesDeLlamarAlBackend(t *testing.T) {
	f := newOrderFixture()
	ctx, tst := ctxWithToaster()

	_, err := f.uc.AddToCart(ctx, user, f.st, dto.CartItemRequest{ProductoID: 10, Cantidad: 1})
	require.NoError(t, err)

	_, err = f.uc.SubmitCart(ctx, user, f.st, firstPage)
	require.ErrorIs(t, err, orderbuilder.ErrNoCustomer)
	assert.Empty(t, f.orders.created)
	assert.Contains(t, messages(tst), "Selecciona un cliente")

	cart := f.uc.Cart(ctx, f.st)
	assert.Len(t, cart.Lineas, 1, "un envío inválido conserva el carrito")
}

func TestCart_FalloAlVaciarTrasCrearNoDuplicaPedido(t *testing.T) {
	f := newOrderFixture()
	ctx, tst := ctxWithToaster()

	_, err := f.uc.AddToCart(ctx, user, f.st, dto.CartItemRequest{ProductoID: 11, Cantidad: 2})
	require.NoError(t, err)
	_, err = f.uc.UpdateCartForm(ctx, user, f.st, dto.CartFormRequest{ClienteID: ptr(int64(2)), DireccionEnvio: ptr("Calle 1")})
	require.NoError(t, err)

	saveErr := errors.New("redis caído")
	f.st.failSet = saveErr
	view, err := f.uc.SubmitCart(ctx, user, f.st, firstPage)
	require.ErrorIs(t, err, saveErr, "el fallo al guardar el carrito vacío no se pierde")
	assert.Nil(t, view)
	assert.Len(t, f.orders.created, 1)
	assert.Contains(t, messages(tst), "El pedido se creó pero no se pudo vaciar el carrito")

	f.st.failSet = nil
	assert.Empty(t, f.uc.Cart(ctx, f.st).Lineas, "el carrito anterior no queda en la sesión")

	_, err = f.uc.SubmitCart(ctx, user, f.st, firstPage)
	require.Error(t, err)
	assert.Len(t, f.orders.created, 1, "un reintento no crea un segundo pedido")
}

func TestCart_CantidadYProductoInvalidos(t *testing.T) {
	f := newOrderFixture()
	ctx, tst := ctxWithToaster()

	_, err := f.uc.AddToCart(ctx, user, f.st, dto.CartItemRequest{ProductoID: 10, Cantidad: 0})
	assert.ErrorIs(t, err, orderbuilder.ErrInvalidQuantity)
	_, err = f.uc.AddToCart(ctx, user, f.st, dto.CartItemRequest{ProductoID: 999, Cantidad: 1})
	assert.ErrorIs(t, err, orderbuilder.ErrNoProduct)
	assert.Equal(t, []string{"La cantidad debe ser al menos 1", "Selecciona un producto"}, messages(tst))
}

func TestCart_EditarYQuitarLineas(t *testing.T) {
	f := newOrderFixture()
	ctx, _ := ctxWithToaster()

	_, _ = f.uc.AddToCart(ctx, user, f.st, dto.CartItemRequest{ProductoID: 10, Cantidad: 1})
	_, _ = f.uc.AddToCart(ctx, user, f.st, dto.CartItemRequest{ProductoID: 11, Cantidad: 1})

	cart, err := f.uc.UpdateCartQuantity(ctx, user, f.st, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Lineas[1].Cantidad)
	assert.Equal(t, "30.116", cart.Total.String())

	cart, err = f.uc.RemoveCartItem(ctx, user, f.st, 0)
	require.NoError(t, err)
	require.Len(t, cart.Lineas, 1)
	assert.Equal(t, int64(11), cart.Lineas[0].ID)

	_, err = f.uc.RemoveCartItem(ctx, user, f.st, 5)
	assert.ErrorIs(t, err, orderbuilder.ErrLineNotFound)

	cart, err = f.uc.ClearCart(ctx, user, f.st)
	require.NoError(t, err)
	assert.Empty(t, cart.Lineas)
	assert.Equal(t, "empty", cart.Estado)
}

func TestCart_MetodoDePagoInvalido(t *testing.T) {
	f := newOrderFixture()
	ctx, tst := ctxWithToaster()

	_, err := f.uc.UpdateCartForm(ctx, user, f.st, dto.CartFormRequest{MetodoPago: ptr("Bitcoin")})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []string{"Método de pago no válido"}, messages(tst))
}

func TestCart_EnvioConcurrenteDeLaMismaSesion(t *testing.T) {
	f := newOrderFixture()
	f.orders.gate = make(chan struct{})
	f.orders.entered = make(chan struct{}, 1)
	ctx, _ := ctxWithToaster()

	_, _ = f.uc.AddToCart(ctx, user, f.st, dto.CartItemRequest{ProductoID: 11, Cantidad: 1})
	_, _ = f.uc.UpdateCartForm(ctx, user, f.st, dto.CartFormRequest{ClienteID: ptr(int64(2)), DireccionEnvio: ptr("Calle 1")})

	done := make(chan error, 1)
	go func() {
		_, err := f.uc.SubmitCart(context.Background(), user, f.st, firstPage)
		done <- err
	}()
	<-f.orders.entered

	_, err := f.uc.SubmitCart(ctx, user, f.st, firstPage)
	assert.ErrorIs(t, err, orderbuilder.ErrSubmitInProgress)

	close(f.orders.gate)
	require.NoError(t, <-done)
	assert.Len(t, f.orders.created, 1, "solo un pedido creado")
}

func TestChangeStatus(t *testing.T) {
	f := newOrderFixture()
	ctx, tst := ctxWithToaster()

	_, err := f.uc.ChangeStatus(ctx, user, f.st, firstPage, 3, "CONFIRMADO")
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "No tienes permiso para cambiar el estado de pedidos", messages(tst)[0])

	_, err = f.uc.ChangeStatus(ctx, admin, f.st, firstPage, 7, "PENDIENTE")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, f.orders.statuses)

	_, err = f.uc.ChangeStatus(ctx, admin, f.st, firstPage, 3, "DESCONOCIDO")
	require.ErrorIs(t, err, domain.ErrValidation)

	view, err := f.uc.ChangeStatus(ctx, admin, f.st, firstPage, 3, "confirmado")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderConfirmado, f.orders.statuses[3])
	assert.Contains(t, messages(tst), "Estado del pedido actualizado")
	for _, r := range view.Pedidos.Data.Items {
		if r.ID == 3 {
			assert.Equal(t, entity.OrderConfirmado, r.Estado)
		}
	}

	_, err = f.uc.ChangeStatus(ctx, admin, f.st, firstPage, 99, "ENVIADO")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderDelete_Confirmacion(t *testing.T) {
	f := newOrderFixture()
	ctx, tst := ctxWithToaster()

	_, err := f.uc.Delete(ctx, user, f.st, firstPage, 3, false)
	require.ErrorIs(t, err, domain.ErrConfirmationRequired)
	assert.Empty(t, f.orders.deleted)

	_, err = f.uc.Delete(ctx, user, f.st, firstPage, 3, true)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, f.orders.deleted)
	assert.Equal(t, []string{"Pedido eliminado exitosamente"}, messages(tst))
}

func TestSearch(t *testing.T) {
	f := newOrderFixture()
	f.reports.found = []entity.Order{{ID: 3, Estado: entity.OrderPendiente}, {ID: 8, Estado: entity.OrderEntregado}}
	ctx, tst := ctxWithToaster()

	_, err := f.uc.Search(ctx, admin, f.st, dto.OrderSearchQuery{Estado: "PENDIENTE"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []string{"Por favor ingresa al menos un criterio de búsqueda"}, messages(tst))
	assert.Zero(t, f.reports.calls)

	view, err := f.uc.Search(ctx, admin, f.st, dto.OrderSearchQuery{DNI: " 12345678 ", FechaInicio: "2026-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "12345678", f.reports.filter.DNI)
	assert.Equal(t, "2026-01-01T00:00:00", f.reports.filter.FechaInicio)
	assert.True(t, view.Filtrado)
	assert.Equal(t, int64(8), view.Pedidos.Data.Items[0].ID)
	assert.Contains(t, messages(tst), "Búsqueda completada")
}

func TestReceipt(t *testing.T) {
	f := newOrderFixture()
	ctx, tst := ctxWithToaster()

	_, err := f.uc.Receipt(ctx, admin, 3)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []string{"Solo disponible para pedidos entregados"}, messages(tst))
	assert.Nil(t, f.renderer.last)

	file, err := f.uc.Receipt(ctx, user, 7)
	require.NoError(t, err)
	assert.Equal(t, "Pedido_7.pdf", file.FileName)
	assert.Equal(t, "application/pdf", file.ContentType)
	require.NotNil(t, f.renderer.last.Cliente, "el cliente se completa para el comprobante")
	assert.Equal(t, "Ana Ríos", f.renderer.last.Cliente.FullName())
}
