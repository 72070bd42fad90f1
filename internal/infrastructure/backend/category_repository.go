package backend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

const categoriesPath = "/v1/categorias"

// CategoryRepository CRUD de /v1/categorias.
type CategoryRepository struct {
	c *Client
}

// NewCategoryRepository construye el repositorio.
func NewCategoryRepository(c *Client) *CategoryRepository {
	return &CategoryRepository{c: c}
}

// List GET /v1/categorias?page=&size=.
func (r *CategoryRepository) List(ctx context.Context, token string, page entity.PageRequest) (*entity.Page[entity.Category], error) {
	page.DefaultPage()
	body, err := r.c.getJSON(ctx, call{method: http.MethodGet, path: categoriesPath, query: pageQuery(page.Page, page.Size), token: token})
	if err != nil {
		return nil, err
	}
	out, err := decodePage(body, toCategory)
	if err != nil {
		return nil, r.c.decodeFailure(ctx, categoriesPath, err)
	}
	return out, nil
}

// Create POST /v1/categorias.
func (r *CategoryRepository) Create(ctx context.Context, token string, in *entity.Category) (*entity.Category, error) {
	return r.save(ctx, http.MethodPost, categoriesPath, token, in)
}

// Update PUT /v1/categorias/{id}.
func (r *CategoryRepository) Update(ctx context.Context, token string, id int64, in *entity.Category) (*entity.Category, error) {
	return r.save(ctx, http.MethodPut, categoriesPath+"/"+strconv.FormatInt(id, 10), token, in)
}

func (r *CategoryRepository) save(ctx context.Context, method, path, token string, in *entity.Category) (*entity.Category, error) {
	body, err := r.c.getJSON(ctx, call{
		method: method,
		path:   path,
		token:  token,
		body:   categoryRequest{Nombre: in.Nombre, Descripcion: in.Descripcion},
	})
	if err != nil {
		return nil, err
	}
	if !present(body) {
		cp := *in
		return &cp, nil
	}
	out, err := decodeOne(body, toCategory)
	if err != nil {
		return nil, r.c.decodeFailure(ctx, path, err)
	}
	return &out, nil
}

// Delete DELETE /v1/categorias/{id}.
func (r *CategoryRepository) Delete(ctx context.Context, token string, id int64) error {
	return r.c.deleteResource(ctx, categoriesPath+"/"+strconv.FormatInt(id, 10), token)
}
