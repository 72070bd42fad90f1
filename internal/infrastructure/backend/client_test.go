package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-admin/internal/application/toast"
	"github.com/jhoicas/Inventario-admin/internal/domain"
	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/infrastructure/backend"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// captured última petición recibida por el backend falso.
type captured struct {
	mu     sync.Mutex
	method string
	path   string
	query  string
	auth   string
	body   []byte
}

func (c *captured) set(r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.method, c.path, c.query = r.Method, r.URL.Path, r.URL.RawQuery
	c.auth = r.Header.Get("Authorization")
	c.body = b
}

// fakeBackend responde siempre status + body y registra la petición.
func fakeBackend(t *testing.T, status int, body string) (*backend.Client, *captured) {
	t.Helper()
	rec := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.set(r)
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL+"/", 0, nil), rec
}

func ctxWithToaster() (context.Context, *toast.Toaster) {
	ts := toast.New()
	return toast.WithToaster(context.Background(), ts), ts
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_400AgregaMensajesDeValidacion(t *testing.T) {
	c, _ := fakeBackend(t, http.StatusBadRequest, `{"nombre":["no puede estar vacío"],"precio":"debe ser positivo"}`)
	ctx, ts := ctxWithToaster()

	_, err := backend.NewProductRepository(c).Create(ctx, "tok", &entity.Product{})
	require.Error(t, err)

	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "no puede estar vacío debe ser positivo", apiErr.Message)
	assert.Equal(t, backend.KindValidation, apiErr.Kind)
	assert.ErrorIs(t, err, domain.ErrValidation)

	items := ts.Items()
	require.Len(t, items, 1, "cada falla debe publicar exactamente un toast")
	assert.Equal(t, toast.KindError, items[0].Type)
	assert.Equal(t, apiErr.Message, items[0].Message)
}

func TestClient_MensajesFijosPorStatus(t *testing.T) {
	casos := []struct {
		nombre string
		status int
		body   string
		msg    string
		kind   backend.ErrorKind
		target error
	}{
		{"403 ignora el cuerpo", http.StatusForbidden, `{"mensaje":"otro texto"}`, backend.MsgForbidden, backend.KindForbidden, domain.ErrForbidden},
		{"401", http.StatusUnauthorized, ``, backend.MsgUnauthenticated, backend.KindUnauthenticated, domain.ErrUnauthenticated},
		{"405", http.StatusMethodNotAllowed, `no-json`, backend.MsgMethodNotAllowed, backend.KindMethodNotAllowed, domain.ErrMethodNotAllowed},
		{"500 no JSON", http.StatusInternalServerError, `<html>boom</html>`, "Respuesta inválida del servidor (HTTP 500)", backend.KindBackend, domain.ErrBackend},
		{"500 JSON compacto", http.StatusInternalServerError, "{ \"error\" : \"fallo\" }", `{"error":"fallo"}`, backend.KindBackend, domain.ErrBackend},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			c, _ := fakeBackend(t, tc.status, tc.body)
			ctx, ts := ctxWithToaster()

			_, err := backend.NewCategoryRepository(c).List(ctx, "tok", entity.PageRequest{})
			var apiErr *backend.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.msg, apiErr.Message)
			assert.Equal(t, tc.kind, apiErr.Kind)
			assert.ErrorIs(t, err, tc.target)
			require.Len(t, ts.Items(), 1)
			assert.Equal(t, tc.msg, ts.Items()[0].Message)
		})
	}
}

func TestClient_ErrorDeRed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := backend.NewClient(url, 0, nil)
	ctx, ts := ctxWithToaster()
	_, err := backend.NewOrderRepository(c).List(ctx, "tok", entity.PageRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, backend.MsgNetwork, err.Error())
	require.Len(t, ts.Items(), 1)
	assert.Equal(t, backend.MsgNetwork, ts.Items()[0].Message)
}

func TestClient_SinToasterNoFalla(t *testing.T) {
	c, _ := fakeBackend(t, http.StatusForbidden, ``)
	_, err := backend.NewCategoryRepository(c).List(context.Background(), "tok", entity.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Peticiones
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_EnviaBearerYQuery(t *testing.T) {
	c, rec := fakeBackend(t, http.StatusOK, `[]`)
	_, err := backend.NewProductRepository(c).List(context.Background(), "abc.def.ghi", entity.PageRequest{Page: 2, Size: 5})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/v1/productos", rec.path, "la barra final del base URL no debe duplicarse")
	assert.Equal(t, "page=2&size=5", rec.query)
	assert.Equal(t, "Bearer abc.def.ghi", rec.auth)
	assert.Empty(t, rec.body, "GET no debe llevar cuerpo")
}

func TestClient_SinTokenNoEnviaAuthorization(t *testing.T) {
	c, rec := fakeBackend(t, http.StatusOK, `{"token":"t","id":1,"email":"a@b.c","role":"ADMIN"}`)
	_, err := backend.NewAuthRepository(c).Login(context.Background(), entity.Credentials{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)
	assert.Empty(t, rec.auth)
	assert.JSONEq(t, `{"email":"a@b.c","password":"x"}`, string(rec.body))
}

func TestDelete_ExitoDevuelveNil(t *testing.T) {
	c, rec := fakeBackend(t, http.StatusNoContent, ``)
	err := backend.NewCustomerRepository(c).Delete(context.Background(), "tok", 7)
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/v1/clientes/7", rec.path)
}

func TestDelete_CuerpoIlegibleIgualEsExito(t *testing.T) {
	c, _ := fakeBackend(t, http.StatusOK, `ok`)
	assert.NoError(t, backend.NewCategoryRepository(c).Delete(context.Background(), "tok", 1))
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalización de listas e ids
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FormasDeEnvelope(t *testing.T) {
	casos := map[string]string{
		"array plano":       `[{"id":1,"nombre":"A"},{"id":2,"nombre":"B"}]`,
		"datos con content": `{"datos":{"content":[{"idCategoria":1,"nombre":"A"},{"idCategoria":2,"nombre":"B"}],"totalPages":1,"totalElements":2}}`,
		"data con array":    `{"data":[{"id":"1","nombre":"A"},{"id":"2","nombre":"B"}]}`,
		"content suelto":    `{"content":[{"id":1,"nombre":"A"},{"id":2,"nombre":"B"}],"totalPages":1,"totalElements":2}`,
	}
	for nombre, body := range casos {
		t.Run(nombre, func(t *testing.T) {
			c, _ := fakeBackend(t, http.StatusOK, body)
			page, err := backend.NewCategoryRepository(c).List(context.Background(), "tok", entity.PageRequest{})
			require.NoError(t, err)
			require.Len(t, page.Items, 2)
			assert.Equal(t, int64(1), page.Items[0].ID)
			assert.Equal(t, "B", page.Items[1].Nombre)
			assert.Equal(t, int64(2), page.TotalElements)
			assert.Equal(t, 1, page.TotalPages)
		})
	}
}

func TestList_RespuestaVaciaEsListaVacia(t *testing.T) {
	c, _ := fakeBackend(t, http.StatusOK, `{"datos":{"content":[],"totalPages":0,"totalElements":0}}`)
	page, err := backend.NewProductRepository(c).List(context.Background(), "tok", entity.PageRequest{})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestList_CuerpoIlegibleEsErrorDeRed(t *testing.T) {
	c, _ := fakeBackend(t, http.StatusOK, `"texto"`)
	ctx, ts := ctxWithToaster()
	_, err := backend.NewProductRepository(c).List(ctx, "tok", entity.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNetwork)
	require.Len(t, ts.Items(), 1)
}

func TestProducts_CategoriaAnidadaYPrecio(t *testing.T) {
	c, _ := fakeBackend(t, http.StatusOK, `{"datos":{"content":[{"idProducto":9,"nombre":"Mouse","precio":25.5,"stock":3,"categoria":{"idCategoria":4,"nombre":"Periféricos"},"estado":true}]}}`)
	page, err := backend.NewProductRepository(c).List(context.Background(), "tok", entity.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	p := page.Items[0]
	assert.Equal(t, int64(9), p.ID)
	assert.True(t, p.Precio.Equal(decimal.RequireFromString("25.5")))
	assert.Equal(t, int64(4), p.CategoriaID, "el id de categoría se toma del objeto anidado")
	require.NotNil(t, p.Categoria)
	assert.Equal(t, "Periféricos", p.Categoria.Nombre)
	assert.Equal(t, "true", p.Estado)
}

func TestCustomers_IdAlternativos(t *testing.T) {
	c, _ := fakeBackend(t, http.StatusOK, `[{"idCliente":3,"nombre":"Ana"},{"idCustomer":"5","nombre":"Luis"}]`)
	page, err := backend.NewCustomerRepository(c).List(context.Background(), "tok", entity.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Items[0].ID)
	assert.Equal(t, int64(5), page.Items[1].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestOrders_EstadoDesconocidoSeRechaza(t *testing.T) {
	c, _ := fakeBackend(t, http.StatusOK, `[{"id":1,"estado":"PERDIDO"}]`)
	_, err := backend.NewOrderRepository(c).List(context.Background(), "tok", entity.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestOrders_FormaPlanaAntigua(t *testing.T) {
	c, _ := fakeBackend(t, http.StatusOK, `{"datos":{"idPedido":12,"clienteId":3,"estado":"pendiente","productoId":8,"cantidad":2,"precioUnitario":10,"total":20}}`)
	o, err := backend.NewOrderRepository(c).GetByID(context.Background(), "tok", 12)
	require.NoError(t, err)
	assert.Equal(t, int64(12), o.ID)
	assert.Equal(t, entity.OrderPendiente, o.Estado)
	require.Len(t, o.Detalles, 1)
	assert.Equal(t, int64(8), o.Detalles[0].Producto.ID)
	assert.Equal(t, 2, o.Detalles[0].Cantidad)
}

func TestOrders_UpdateStatusUsaPatchConQuery(t *testing.T) {
	c, rec := fakeBackend(t, http.StatusOK, `{"id":4,"estado":"ENVIADO"}`)
	o, err := backend.NewOrderRepository(c).UpdateStatus(context.Background(), "tok", 4, entity.OrderEnviado)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/v1/pedidos/4/estado", rec.path)
	assert.Equal(t, "estado=ENVIADO", rec.query)
	assert.Equal(t, entity.OrderEnviado, o.Estado)
}

func TestOrders_CreateSerializaDetalles(t *testing.T) {
	decimal.MarshalJSONWithoutQuotes = true
	t.Cleanup(func() { decimal.MarshalJSONWithoutQuotes = false })

	c, rec := fakeBackend(t, http.StatusCreated, `{"id":30,"clienteId":3,"estado":"PENDIENTE","total":31}`)
	in := &entity.NewOrder{
		ClienteID:      3,
		Total:          decimal.RequireFromString("31"),
		DireccionEnvio: "Av. Siempre Viva 123",
		MetodoPago:     entity.PaymentCredito,
		Estado:         entity.OrderPendiente,
		Detalles: []entity.OrderDetail{{
			Producto:       entity.Product{ID: 8, Nombre: "Teclado", Precio: decimal.RequireFromString("15.5")},
			Cantidad:       2,
			PrecioUnitario: decimal.RequireFromString("15.5"),
		}},
	}
	o, err := backend.NewOrderRepository(c).Create(context.Background(), "tok", in)
	require.NoError(t, err)
	assert.Equal(t, int64(30), o.ID)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.Equal(t, "Tarjeta de crédito", sent["metodoPago"])
	assert.Equal(t, "PENDIENTE", sent["estado"])
	assert.EqualValues(t, 31, sent["total"])
	detalles := sent["detalles"].([]any)
	require.Len(t, detalles, 1)
	linea := detalles[0].(map[string]any)
	assert.EqualValues(t, 8, linea["producto"].(map[string]any)["id"])
	assert.EqualValues(t, 2, linea["cantidad"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReports_VentasPorProductoOrdenadas(t *testing.T) {
	c, rec := fakeBackend(t, http.StatusOK, `{"content":[{"productoId":1,"nombreProducto":"A","cantidadVendida":3,"totalVendido":30}]}`)
	dr := entity.DateRange{FechaInicio: "2026-01-01T00:00:00", FechaFin: "2026-01-31T23:59:59"}
	page, err := backend.NewReportRepository(c).SalesByProduct(context.Background(), "tok", dr, entity.PageRequest{Size: 5})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "/v1/reportes/ventas/producto", rec.path)
	assert.Contains(t, rec.query, "sortBy=totalVendido")
	assert.Contains(t, rec.query, "sortDirection=DESC")
	assert.Contains(t, rec.query, "fechaInicio=2026-01-01T00%3A00%3A00")
	assert.Contains(t, rec.query, "size=5")
}

func TestReports_BoletaSoloEnviaCriteriosPresentes(t *testing.T) {
	c, rec := fakeBackend(t, http.StatusOK, `[]`)
	_, err := backend.NewReportRepository(c).SearchReceipts(context.Background(), "tok", entity.ReceiptFilter{DNI: "12345678"}, entity.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, "/v1/reportes/boleta", rec.path)
	assert.Contains(t, rec.query, "dni=12345678")
	assert.NotContains(t, rec.query, "estado=")
	assert.NotContains(t, rec.query, "fechaInicio=")
}

func TestReports_StockBajo(t *testing.T) {
	c, rec := fakeBackend(t, http.StatusOK, `{"datos":[{"productoId":2,"nombreProducto":"Cable","stock":1}]}`)
	page, err := backend.NewReportRepository(c).LowStock(context.Background(), "tok", 10, entity.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Items[0].Stock)
	assert.Contains(t, rec.query, "stockMinimo=10")
}

func TestReports_DashboardDesenvuelveDatos(t *testing.T) {
	c, _ := fakeBackend(t, http.StatusOK, `{"datos":{"totalPedidos":12,"totalVentas":1500.75}}`)
	d, err := backend.NewReportRepository(c).Dashboard(context.Background(), "tok", entity.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, int64(12), d.TotalPedidos)
	assert.True(t, d.TotalVentas.Equal(decimal.RequireFromString("1500.75")))
}

func TestReports_ExportDevuelveArchivo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/reportes/exportar", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="ventas.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	f, err := backend.NewReportRepository(backend.NewClient(srv.URL, 0, nil)).Export(context.Background(), "tok",
		entity.ExportFilter{TipoReporte: "VENTAS", Formato: "PDF"})
	require.NoError(t, err)
	assert.Equal(t, "ventas.pdf", f.FileName)
	assert.Equal(t, "application/pdf", f.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), f.Data)
}

func TestReports_ExportSinDispositionUsaNombrePorDefecto(t *testing.T) {
	c, _ := fakeBackend(t, http.StatusOK, `{}`)
	f, err := backend.NewReportRepository(c).Export(context.Background(), "tok", entity.ExportFilter{TipoReporte: "STOCK", Formato: "EXCEL"})
	require.NoError(t, err)
	assert.Equal(t, "reporte_STOCK.xlsx", f.FileName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CamposAlternativos(t *testing.T) {
	c, _ := fakeBackend(t, http.StatusOK, `{"data":{"accessToken":"x.y.z","userId":"a1b2","email":"e@x.pe","rol":"USER"}}`)
	res, err := backend.NewAuthRepository(c).Login(context.Background(), entity.Credentials{Email: "e@x.pe", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "x.y.z", res.Token)
	assert.Equal(t, "a1b2", res.ID)
	assert.Equal(t, "USER", res.Role)
}

func TestCreate_CuerpoVacioDevuelveCopiaDeEntrada(t *testing.T) {
	c, rec := fakeBackend(t, http.StatusCreated, ``)
	in := &entity.Category{Nombre: "Audio", Descripcion: "Parlantes"}
	out, err := backend.NewCategoryRepository(c).Create(context.Background(), "tok", in)
	require.NoError(t, err)
	assert.Equal(t, "Audio", out.Nombre)
	assert.NotSame(t, in, out)
	assert.JSONEq(t, `{"nombre":"Audio","descripcion":"Parlantes"}`, string(rec.body))
}
