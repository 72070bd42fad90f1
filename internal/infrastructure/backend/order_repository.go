package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepository)(nil)

const ordersPath = "/v1/pedidos"

// OrderRepository CRUD de /v1/pedidos y cambio de estado.
type OrderRepository struct {
	c *Client
}

// NewOrderRepository construye el repositorio.
func NewOrderRepository(c *Client) *OrderRepository {
	return &OrderRepository{c: c}
}

func orderPath(id int64) string {
	return ordersPath + "/" + strconv.FormatInt(id, 10)
}

// List GET /v1/pedidos?page=&size=.
func (r *OrderRepository) List(ctx context.Context, token string, page entity.PageRequest) (*entity.Page[entity.Order], error) {
	page.DefaultPage()
	body, err := r.c.getJSON(ctx, call{method: http.MethodGet, path: ordersPath, query: pageQuery(page.Page, page.Size), token: token})
	if err != nil {
		return nil, err
	}
	out, err := decodePage(body, toOrder)
	if err != nil {
		return nil, r.c.decodeFailure(ctx, ordersPath, err)
	}
	return out, nil
}

// GetByID GET /v1/pedidos/{id}.
func (r *OrderRepository) GetByID(ctx context.Context, token string, id int64) (*entity.Order, error) {
	return r.one(ctx, call{method: http.MethodGet, path: orderPath(id), token: token})
}

// Create POST /v1/pedidos.
func (r *OrderRepository) Create(ctx context.Context, token string, in *entity.NewOrder) (*entity.Order, error) {
	req := newOrderRequest(in.ClienteID, in.Total, in.DireccionEnvio, string(in.MetodoPago), in.Estado, in.Detalles)
	return r.one(ctx, call{method: http.MethodPost, path: ordersPath, token: token, body: req})
}

// Update PUT /v1/pedidos/{id}.
func (r *OrderRepository) Update(ctx context.Context, token string, id int64, in *entity.Order) (*entity.Order, error) {
	req := newOrderRequest(in.ClienteID, in.Total, in.DireccionEnvio, in.MetodoPago, in.Estado, in.Detalles)
	return r.one(ctx, call{method: http.MethodPut, path: orderPath(id), token: token, body: req})
}

// UpdateStatus PATCH /v1/pedidos/{id}/estado?estado=X.
func (r *OrderRepository) UpdateStatus(ctx context.Context, token string, id int64, estado entity.OrderStatus) (*entity.Order, error) {
	q := url.Values{}
	q.Set("estado", string(estado))
	return r.one(ctx, call{method: http.MethodPatch, path: orderPath(id) + "/estado", query: q, token: token})
}

// Delete DELETE /v1/pedidos/{id}.
func (r *OrderRepository) Delete(ctx context.Context, token string, id int64) error {
	return r.c.deleteResource(ctx, orderPath(id), token)
}

// one ejecuta la llamada y decodifica un pedido; un cuerpo vacío devuelve (nil, nil).
func (r *OrderRepository) one(ctx context.Context, in call) (*entity.Order, error) {
	body, err := r.c.getJSON(ctx, in)
	if err != nil {
		return nil, err
	}
	if !present(body) {
		return nil, nil
	}
	out, err := decodeOne(body, toOrder)
	if err != nil {
		return nil, r.c.decodeFailure(ctx, in.path, err)
	}
	return &out, nil
}
