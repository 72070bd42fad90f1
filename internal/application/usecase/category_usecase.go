package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Inventario-admin/internal/application/auth"
	"github.com/jhoicas/Inventario-admin/internal/application/dto"
	"github.com/jhoicas/Inventario-admin/internal/domain"
	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/permission"
	"github.com/jhoicas/Inventario-admin/internal/domain/repository"
)

// CategoryUseCase página de categorías (solo ADMIN).
type CategoryUseCase struct {
	res resource[entity.Category]
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{res: resource[entity.Category]{
		repo:   repo,
		create: permission.CreateCategory,
		update: permission.UpdateCategory,
		remove: permission.DeleteCategory,
		validate: func(c *entity.Category) error {
			c.Nombre = strings.TrimSpace(c.Nombre)
			if c.Nombre == "" {
				return domain.Invalid("El nombre es requerido")
			}
			return nil
		},
		msgCreated: "Categoría creada",
		msgUpdated: "Categoría actualizada",
		msgDeleted: "Categoría eliminada",
		msgConfirm: "¿Estás seguro de que deseas eliminar esta categoría?",
	}}
}

// Load lista de categorías.
func (uc *CategoryUseCase) Load(ctx context.Context, actor auth.Actor, page entity.PageRequest) *dto.CategoriesView {
	return &dto.CategoriesView{
		Categorias: uc.res.list(ctx, actor, page),
		Acciones: permission.Allowed(actor.Role(),
			permission.CreateCategory, permission.UpdateCategory, permission.DeleteCategory),
	}
}

// Create crea la categoría y recarga.
func (uc *CategoryUseCase) Create(ctx context.Context, actor auth.Actor, page entity.PageRequest, in dto.CategoryRequest) (*dto.CategoriesView, error) {
	if err := uc.res.doCreate(ctx, actor, in.ToEntity()); err != nil {
		return nil, wrap("categorías: crear", err)
	}
	return uc.Load(ctx, actor, page), nil
}

// Update actualiza la categoría y recarga.
func (uc *CategoryUseCase) Update(ctx context.Context, actor auth.Actor, page entity.PageRequest, id int64, in dto.CategoryRequest) (*dto.CategoriesView, error) {
	if err := uc.res.doUpdate(ctx, actor, id, in.ToEntity()); err != nil {
		return nil, wrap("categorías: actualizar", err)
	}
	return uc.Load(ctx, actor, page), nil
}

// Delete elimina la categoría y recarga.
func (uc *CategoryUseCase) Delete(ctx context.Context, actor auth.Actor, page entity.PageRequest, id int64, confirm bool) (*dto.CategoriesView, error) {
	if err := uc.res.doDelete(ctx, actor, id, confirm); err != nil {
		return nil, wrap("categorías: eliminar", err)
	}
	return uc.Load(ctx, actor, page), nil
}
