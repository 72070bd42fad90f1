package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
)

// flexID acepta ids numéricos o numéricos entre comillas; null → 0.
type flexID int64

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("id inválido %s", b)
	}
	*f = flexID(n)
	return nil
}

// first devuelve el primer id distinto de cero.
func first(ids ...flexID) int64 {
	for _, id := range ids {
		if id != 0 {
			return int64(id)
		}
	}
	return 0
}

// ── Categorías ────────────────────────────────────────────────────────────────

type categoryWire struct {
	ID          flexID `json:"id"`
	IDCategoria flexID `json:"idCategoria"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

func toCategory(w categoryWire) (entity.Category, error) {
	return entity.Category{
		ID:          first(w.ID, w.IDCategoria),
		Nombre:      w.Nombre,
		Descripcion: w.Descripcion,
	}, nil
}

type categoryRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

// ── Productos ─────────────────────────────────────────────────────────────────

type productWire struct {
	ID            flexID          `json:"id"`
	IDProducto    flexID          `json:"idProducto"`
	Nombre        string          `json:"nombre"`
	Descripcion   string          `json:"descripcion"`
	Precio        decimal.Decimal `json:"precio"`
	Stock         int             `json:"stock"`
	CategoriaID   flexID          `json:"categoriaId"`
	Categoria     *categoryWire   `json:"categoria"`
	Marca         string          `json:"marca"`
	Modelo        string          `json:"modelo"`
	Color         string          `json:"color"`
	Estado        json.RawMessage `json:"estado"`
	FechaCreacion string          `json:"fechaCreacion"`
}

func toProduct(w productWire) (entity.Product, error) {
	p := entity.Product{
		ID:            first(w.ID, w.IDProducto),
		Nombre:        w.Nombre,
		Descripcion:   w.Descripcion,
		Precio:        w.Precio,
		Stock:         w.Stock,
		CategoriaID:   int64(w.CategoriaID),
		Marca:         w.Marca,
		Modelo:        w.Modelo,
		Color:         w.Color,
		Estado:        rawText(w.Estado),
		FechaCreacion: w.FechaCreacion,
	}
	if w.Categoria != nil {
		c, _ := toCategory(*w.Categoria)
		p.Categoria = &c
		if p.CategoriaID == 0 {
			p.CategoriaID = c.ID
		}
	}
	return p, nil
}

// rawText el backend envía estado como texto o como booleano según la versión.
func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if !present(raw) {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}

type productRequest struct {
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	CategoriaID int64           `json:"categoriaId"`
	Marca       string          `json:"marca,omitempty"`
	Modelo      string          `json:"modelo,omitempty"`
	Color       string          `json:"color,omitempty"`
	Estado      string          `json:"estado,omitempty"`
}

func newProductRequest(p *entity.Product) productRequest {
	return productRequest{
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Stock:       p.Stock,
		CategoriaID: p.CategoriaID,
		Marca:       p.Marca,
		Modelo:      p.Modelo,
		Color:       p.Color,
		Estado:      p.Estado,
	}
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type customerWire struct {
	ID            flexID          `json:"id"`
	IDCustomer    flexID          `json:"idCustomer"`
	IDCliente     flexID          `json:"idCliente"`
	Nombre        string          `json:"nombre"`
	Apellido      string          `json:"apellido"`
	Email         string          `json:"email"`
	Telefono      string          `json:"telefono"`
	DNI           string          `json:"dni"`
	Direccion     string          `json:"direccion"`
	FechaRegistro string          `json:"fechaRegistro"`
	Estado        json.RawMessage `json:"estado"`
}

func toCustomer(w customerWire) (entity.Customer, error) {
	return entity.Customer{
		ID:            first(w.ID, w.IDCustomer, w.IDCliente),
		Nombre:        w.Nombre,
		Apellido:      w.Apellido,
		Email:         w.Email,
		Telefono:      w.Telefono,
		DNI:           w.DNI,
		Direccion:     w.Direccion,
		FechaRegistro: w.FechaRegistro,
		Estado:        rawText(w.Estado),
	}, nil
}

type customerRequest struct {
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	DNI       string `json:"dni"`
	Direccion string `json:"direccion"`
}

func newCustomerRequest(c *entity.Customer) customerRequest {
	return customerRequest{
		Nombre:    c.Nombre,
		Apellido:  c.Apellido,
		Email:     c.Email,
		Telefono:  c.Telefono,
		DNI:       c.DNI,
		Direccion: c.Direccion,
	}
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

type orderDetailWire struct {
	Producto       *productWire    `json:"producto"`
	ProductoID     flexID          `json:"productoId"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
}

type orderWire struct {
	ID             flexID            `json:"id"`
	IDPedido       flexID            `json:"idPedido"`
	ClienteID      flexID            `json:"clienteId"`
	Cliente        *customerWire     `json:"cliente"`
	Total          decimal.Decimal   `json:"total"`
	DireccionEnvio string            `json:"direccionEnvio"`
	MetodoPago     string            `json:"metodoPago"`
	Estado         string            `json:"estado"`
	FechaPedido    string            `json:"fechaPedido"`
	Detalles       []orderDetailWire `json:"detalles"`

	// Forma plana antigua: un solo producto por pedido.
	ProductoID     flexID          `json:"productoId"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
}

func toOrder(w orderWire) (entity.Order, error) {
	estado, err := entity.ParseOrderStatus(w.Estado)
	if err != nil {
		return entity.Order{}, fmt.Errorf("pedido %d: %w", first(w.ID, w.IDPedido), err)
	}
	o := entity.Order{
		ID:             first(w.ID, w.IDPedido),
		ClienteID:      int64(w.ClienteID),
		Total:          w.Total,
		DireccionEnvio: w.DireccionEnvio,
		MetodoPago:     w.MetodoPago,
		Estado:         estado,
		FechaPedido:    w.FechaPedido,
		Detalles:       make([]entity.OrderDetail, 0, len(w.Detalles)),
	}
	if w.Cliente != nil {
		c, _ := toCustomer(*w.Cliente)
		o.Cliente = &c
		if o.ClienteID == 0 {
			o.ClienteID = c.ID
		}
	}
	for _, d := range w.Detalles {
		det := entity.OrderDetail{Cantidad: d.Cantidad, PrecioUnitario: d.PrecioUnitario}
		if d.Producto != nil {
			det.Producto, _ = toProduct(*d.Producto)
		}
		if det.Producto.ID == 0 {
			det.Producto.ID = int64(d.ProductoID)
		}
		o.Detalles = append(o.Detalles, det)
	}
	if len(o.Detalles) == 0 && w.ProductoID != 0 {
		o.Detalles = append(o.Detalles, entity.OrderDetail{
			Producto:       entity.Product{ID: int64(w.ProductoID)},
			Cantidad:       w.Cantidad,
			PrecioUnitario: w.PrecioUnitario,
		})
	}
	return o, nil
}

type orderDetailRequest struct {
	Producto       productRef      `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
}

type productRef struct {
	ID     int64           `json:"id"`
	Nombre string          `json:"nombre,omitempty"`
	Precio decimal.Decimal `json:"precio"`
}

type orderRequest struct {
	ClienteID      int64                `json:"clienteId"`
	Total          decimal.Decimal      `json:"total"`
	DireccionEnvio string               `json:"direccionEnvio"`
	MetodoPago     string               `json:"metodoPago"`
	Estado         string               `json:"estado"`
	Detalles       []orderDetailRequest `json:"detalles"`
}

func newOrderRequest(clienteID int64, total decimal.Decimal, direccion, metodo string, estado entity.OrderStatus, detalles []entity.OrderDetail) orderRequest {
	req := orderRequest{
		ClienteID:      clienteID,
		Total:          total,
		DireccionEnvio: direccion,
		MetodoPago:     metodo,
		Estado:         string(estado),
		Detalles:       make([]orderDetailRequest, 0, len(detalles)),
	}
	for _, d := range detalles {
		req.Detalles = append(req.Detalles, orderDetailRequest{
			Producto:       productRef{ID: d.Producto.ID, Nombre: d.Producto.Nombre, Precio: d.Producto.Precio},
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
		})
	}
	return req
}
