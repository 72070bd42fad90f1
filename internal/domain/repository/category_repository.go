package repository

import (
	"context"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
)

// CategoryRepository puerto hacia /v1/categorias. Todas las llamadas llevan el token de la sesión.
type CategoryRepository interface {
	List(ctx context.Context, token string, page entity.PageRequest) (*entity.Page[entity.Category], error)
	Create(ctx context.Context, token string, in *entity.Category) (*entity.Category, error)
	Update(ctx context.Context, token string, id int64, in *entity.Category) (*entity.Category, error)
	Delete(ctx context.Context, token string, id int64) error
}
