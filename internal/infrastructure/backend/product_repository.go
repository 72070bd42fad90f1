package backend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

const productsPath = "/v1/productos"

// ProductRepository CRUD de /v1/productos.
type ProductRepository struct {
	c *Client
}

// NewProductRepository construye el repositorio.
func NewProductRepository(c *Client) *ProductRepository {
	return &ProductRepository{c: c}
}

// List GET /v1/productos?page=&size=.
func (r *ProductRepository) List(ctx context.Context, token string, page entity.PageRequest) (*entity.Page[entity.Product], error) {
	page.DefaultPage()
	body, err := r.c.getJSON(ctx, call{method: http.MethodGet, path: productsPath, query: pageQuery(page.Page, page.Size), token: token})
	if err != nil {
		return nil, err
	}
	out, err := decodePage(body, toProduct)
	if err != nil {
		return nil, r.c.decodeFailure(ctx, productsPath, err)
	}
	return out, nil
}

// Create POST /v1/productos.
func (r *ProductRepository) Create(ctx context.Context, token string, in *entity.Product) (*entity.Product, error) {
	return r.save(ctx, http.MethodPost, productsPath, token, in)
}

// Update PUT /v1/productos/{id}.
func (r *ProductRepository) Update(ctx context.Context, token string, id int64, in *entity.Product) (*entity.Product, error) {
	return r.save(ctx, http.MethodPut, productsPath+"/"+strconv.FormatInt(id, 10), token, in)
}

func (r *ProductRepository) save(ctx context.Context, method, path, token string, in *entity.Product) (*entity.Product, error) {
	body, err := r.c.getJSON(ctx, call{method: method, path: path, token: token, body: newProductRequest(in)})
	if err != nil {
		return nil, err
	}
	if !present(body) {
		cp := *in
		return &cp, nil
	}
	out, err := decodeOne(body, toProduct)
	if err != nil {
		return nil, r.c.decodeFailure(ctx, path, err)
	}
	return &out, nil
}

// Delete DELETE /v1/productos/{id}.
func (r *ProductRepository) Delete(ctx context.Context, token string, id int64) error {
	return r.c.deleteResource(ctx, productsPath+"/"+strconv.FormatInt(id, 10), token)
}
