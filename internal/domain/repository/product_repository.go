package repository

import (
	"context"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
)

// ProductRepository puerto hacia /v1/productos.
type ProductRepository interface {
	List(ctx context.Context, token string, page entity.PageRequest) (*entity.Page[entity.Product], error)
	Create(ctx context.Context, token string, in *entity.Product) (*entity.Product, error)
	Update(ctx context.Context, token string, id int64, in *entity.Product) (*entity.Product, error)
	Delete(ctx context.Context, token string, id int64) error
}
