package backend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

const customersPath = "/v1/clientes"

// CustomerRepository CRUD de /v1/clientes.
type CustomerRepository struct {
	c *Client
}

// NewCustomerRepository construye el repositorio.
func NewCustomerRepository(c *Client) *CustomerRepository {
	return &CustomerRepository{c: c}
}

// List GET /v1/clientes?page=&size=.
func (r *CustomerRepository) List(ctx context.Context, token string, page entity.PageRequest) (*entity.Page[entity.Customer], error) {
	page.DefaultPage()
	body, err := r.c.getJSON(ctx, call{method: http.MethodGet, path: customersPath, query: pageQuery(page.Page, page.Size), token: token})
	if err != nil {
		return nil, err
	}
	out, err := decodePage(body, toCustomer)
	if err != nil {
		return nil, r.c.decodeFailure(ctx, customersPath, err)
	}
	return out, nil
}

// Create POST /v1/clientes.
func (r *CustomerRepository) Create(ctx context.Context, token string, in *entity.Customer) (*entity.Customer, error) {
	return r.save(ctx, http.MethodPost, customersPath, token, in)
}

// Update PUT /v1/clientes/{id}.
func (r *CustomerRepository) Update(ctx context.Context, token string, id int64, in *entity.Customer) (*entity.Customer, error) {
	return r.save(ctx, http.MethodPut, customersPath+"/"+strconv.FormatInt(id, 10), token, in)
}

func (r *CustomerRepository) save(ctx context.Context, method, path, token string, in *entity.Customer) (*entity.Customer, error) {
	body, err := r.c.getJSON(ctx, call{method: method, path: path, token: token, body: newCustomerRequest(in)})
	if err != nil {
		return nil, err
	}
	if !present(body) {
		cp := *in
		return &cp, nil
	}
	out, err := decodeOne(body, toCustomer)
	if err != nil {
		return nil, r.c.decodeFailure(ctx, path, err)
	}
	return &out, nil
}

// Delete DELETE /v1/clientes/{id}.
func (r *CustomerRepository) Delete(ctx context.Context, token string, id int64) error {
	return r.c.deleteResource(ctx, customersPath+"/"+strconv.FormatInt(id, 10), token)
}
