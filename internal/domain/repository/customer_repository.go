package repository

import (
	"context"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
)

// CustomerRepository puerto hacia /v1/clientes.
type CustomerRepository interface {
	List(ctx context.Context, token string, page entity.PageRequest) (*entity.Page[entity.Customer], error)
	Create(ctx context.Context, token string, in *entity.Customer) (*entity.Customer, error)
	Update(ctx context.Context, token string, id int64, in *entity.Customer) (*entity.Customer, error)
	Delete(ctx context.Context, token string, id int64) error
}
