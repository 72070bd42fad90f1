package repository

import (
	"context"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
)

// OrderRepository puerto hacia /v1/pedidos.
type OrderRepository interface {
	List(ctx context.Context, token string, page entity.PageRequest) (*entity.Page[entity.Order], error)
	GetByID(ctx context.Context, token string, id int64) (*entity.Order, error)
	Create(ctx context.Context, token string, in *entity.NewOrder) (*entity.Order, error)
	Update(ctx context.Context, token string, id int64, in *entity.Order) (*entity.Order, error)
	UpdateStatus(ctx context.Context, token string, id int64, estado entity.OrderStatus) (*entity.Order, error)
	Delete(ctx context.Context, token string, id int64) error
}
