package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-admin/internal/application/analytics"
	"github.com/jhoicas/Inventario-admin/internal/application/usecase"
	"github.com/jhoicas/Inventario-admin/internal/infrastructure/backend"
	"github.com/jhoicas/Inventario-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-admin/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/Inventario-admin/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Inventario-admin/pkg/jwt"
	"github.com/jhoicas/Inventario-admin/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCookie = "sid"
	testSecret = "secreto-del-backend"
)

// fakeBackend API remota mínima: login por email, listas vacías y registro
// de los Authorization recibidos.
type fakeBackend struct {
	mu    sync.Mutex
	auths map[string]string
}

func (f *fakeBackend) authFor(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.auths[path]
}

func (f *fakeBackend) hit(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.auths[path]
	return ok
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.auths[r.URL.Path] = r.Header.Get("Authorization")
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/v1/auth/login":
		var in struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		role := map[string]string{"admin@tienda.pe": "ADMIN", "user@tienda.pe": "USER"}[in.Email]
		if role == "" || in.Password != "clave" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		tok, _ := pkgjwt.Generate(testSecret, "7", in.Email, role, 60)
		_ = json.NewEncoder(w).Encode(map[string]any{"token": tok, "id": 7, "email": in.Email, "role": role})
	case r.URL.Path == "/v1/productos" && r.Method == http.MethodGet:
		_, _ = io.WriteString(w, `{"content":[{"id":1,"nombre":"Teclado","precio":10.5,"stock":3,"categoriaId":2}],"totalPages":1,"totalElements":1}`)
	case r.Method == http.MethodGet:
		_, _ = io.WriteString(w, `[]`)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestApp(t *testing.T) (*fiber.App, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{auths: map[string]string{}}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)

	client := backend.NewClient(srv.URL, 5*time.Second, logger.Nop())
	products := backend.NewProductRepository(client)
	categories := backend.NewCategoryRepository(client)
	customers := backend.NewCustomerRepository(client)
	orders := backend.NewOrderRepository(client)
	reports := backend.NewReportRepository(client)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthRepo:    backend.NewAuthRepository(client),
		Sessions:    storage.NewMemory(time.Hour),
		Session:     apphttp.SessionConfig{CookieName: testCookie, TTL: time.Hour},
		ProductUC:   usecase.NewProductUseCase(products, categories),
		CategoryUC:  usecase.NewCategoryUseCase(categories),
		CustomerUC:  usecase.NewCustomerUseCase(customers),
		OrderUC:     usecase.NewOrderUseCase(orders, customers, products, reports, pdf.NewReceiptRenderer()),
		DashboardUC: analytics.NewDashboardUseCase(products, categories, customers, reports, 10),
		ReportsUC:   analytics.NewReportsUseCase(reports, 10),
		BackendURL:  srv.URL,
		Log:         logger.Nop(),
	})
	return app, fb
}

// doRequest lanza la petición con la cookie de sesión (si hay) y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, method, path, body, sid string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: sid})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func sessionID(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == testCookie {
			return c.Value
		}
	}
	t.Fatal("la respuesta debe fijar la cookie de sesión")
	return ""
}

// login inicia sesión y devuelve el id de sesión.
func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/login", `{"email":"`+email+`","password":"clave"}`, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return sessionID(t, resp)
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Code   string          `json:"code"`
	Toasts []struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"toasts"`
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

// ──────────────────────────────────────────────────────────────────────────────
// Guard
// ──────────────────────────────────────────────────────────────────────────────

func TestGuard_SinSesionGetRedirigeALogin(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/products", "", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestGuard_SinSesionMutacionResponde401(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/products", `{"nombre":"x"}`, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", decode(t, resp).Code)
}

func TestGuard_UserNoEntraACategorias(t *testing.T) {
	app, _ := newTestApp(t)
	sid := login(t, app, "user@tienda.pe")

	resp := doRequest(t, app, http.MethodGet, "/categories", "", sid)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	resp = doRequest(t, app, http.MethodPost, "/categories", `{"nombre":"Audio"}`, sid)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRaiz_RedirigeSegunSesion(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/", "", "")
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	sid := login(t, app, "admin@tienda.pe")
	resp = doRequest(t, app, http.MethodGet, "/", "", sid)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	resp = doRequest(t, app, http.MethodGet, "/login", "", sid)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode, "con sesión la página de login redirige")
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_PersisteLaSesionEntrePeticiones(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/login", `{"email":"admin@tienda.pe","password":"clave"}`, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	sid := sessionID(t, resp)
	env := decode(t, resp)
	require.Len(t, env.Toasts, 1)
	assert.Equal(t, "Sesión iniciada correctamente", env.Toasts[0].Message)

	resp = doRequest(t, app, http.MethodGet, "/products", "", sid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var view struct {
		Productos struct {
			Data struct {
				Items []struct {
					Nombre string `json:"nombre"`
				} `json:"content"`
			} `json:"data"`
		} `json:"productos"`
	}
	require.NoError(t, json.Unmarshal(decode(t, resp).Data, &view))
	require.Len(t, view.Productos.Data.Items, 1)
	assert.Equal(t, "Teclado", view.Productos.Data.Items[0].Nombre)
}

func TestLogin_CredencialesInvalidasUnSoloToast(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/login", `{"email":"admin@tienda.pe","password":"mala"}`, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	env := decode(t, resp)
	require.Len(t, env.Toasts, 1, "el cliente HTTP ya notificó la falla")
	assert.Equal(t, backend.MsgUnauthenticated, env.Toasts[0].Message)
}

func TestLogin_CamposVacios(t *testing.T) {
	app, fb := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/login", `{"email":" ","password":""}`, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.False(t, fb.hit("/v1/auth/login"), "no debe llamarse al backend")
}

func TestLogout_CierraLaSesion(t *testing.T) {
	app, _ := newTestApp(t)
	sid := login(t, app, "admin@tienda.pe")

	resp := doRequest(t, app, http.MethodPost, "/logout", "", sid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/dashboard", "", sid)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestMe_PaginasVisiblesPorRol(t *testing.T) {
	app, _ := newTestApp(t)
	sid := login(t, app, "user@tienda.pe")

	resp := doRequest(t, app, http.MethodGet, "/me", "", sid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var view struct {
		Paginas []string `json:"paginas"`
	}
	require.NoError(t, json.Unmarshal(decode(t, resp).Data, &view))
	assert.NotContains(t, view.Paginas, "/categories")
	assert.NotContains(t, view.Paginas, "/reports")
	assert.Contains(t, view.Paginas, "/orders")
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos y proxy
// ──────────────────────────────────────────────────────────────────────────────

func TestPedidos_EliminarSinConfirmacion409(t *testing.T) {
	app, _ := newTestApp(t)
	sid := login(t, app, "admin@tienda.pe")

	resp := doRequest(t, app, http.MethodDelete, "/orders/5", "", sid)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFIRMATION_REQUIRED", decode(t, resp).Code)
}

func TestPedidos_CarritoSobreviveEntrePeticiones(t *testing.T) {
	app, _ := newTestApp(t)
	sid := login(t, app, "admin@tienda.pe")

	resp := doRequest(t, app, http.MethodPost, "/orders/cart/items", `{"productoId":1,"cantidad":2}`, sid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/orders/cart", "", sid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cart struct {
		Lineas []struct {
			Nombre   string `json:"nombre"`
			Cantidad int    `json:"cantidad"`
		} `json:"lineas"`
	}
	require.NoError(t, json.Unmarshal(decode(t, resp).Data, &cart))
	require.Len(t, cart.Lineas, 1)
	assert.Equal(t, "Teclado", cart.Lineas[0].Nombre)
	assert.Equal(t, 2, cart.Lineas[0].Cantidad)
}

func TestLogin_OtroUsuarioNoHeredaElCarrito(t *testing.T) {
	app, _ := newTestApp(t)
	sid := login(t, app, "admin@tienda.pe")

	resp := doRequest(t, app, http.MethodPost, "/orders/cart/items", `{"productoId":1,"cantidad":2}`, sid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/login", `{"email":"user@tienda.pe","password":"clave"}`, sid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/orders/cart", "", sid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cart struct {
		Lineas []struct {
			Nombre string `json:"nombre"`
		} `json:"lineas"`
	}
	require.NoError(t, json.Unmarshal(decode(t, resp).Data, &cart))
	assert.Empty(t, cart.Lineas, "el carrito del usuario anterior no pasa al nuevo")
}

func TestProxy_InyectaElTokenDeLaSesion(t *testing.T) {
	app, fb := newTestApp(t)
	sid := login(t, app, "admin@tienda.pe")

	resp := doRequest(t, app, http.MethodGet, "/v1/productos?page=0&size=5", "", sid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(fb.authFor("/v1/productos"), "Bearer "), "el proxy debe enviar el token de la sesión")
}
