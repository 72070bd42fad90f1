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

// ProductUseCase página de productos. Carga también las categorías para
// resolver nombres en la tabla y en el formulario.
type ProductUseCase struct {
	res        resource[entity.Product]
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{
		res: resource[entity.Product]{
			repo:       repo,
			create:     permission.CreateProduct,
			update:     permission.UpdateProduct,
			remove:     permission.DeleteProduct,
			validate:   validateProduct,
			msgCreated: "Producto creado",
			msgUpdated: "Producto actualizado",
			msgDeleted: "Producto eliminado",
			msgConfirm: "¿Estás seguro de que deseas eliminar este producto?",
		},
		categories: categories,
	}
}

func validateProduct(p *entity.Product) error {
	p.Nombre = strings.TrimSpace(p.Nombre)
	switch {
	case p.Nombre == "":
		return domain.Invalid("El nombre es requerido")
	case !p.Precio.IsPositive():
		return domain.Invalid("El precio debe ser mayor a 0")
	case p.Stock < 0:
		return domain.Invalid("El stock no puede ser negativo")
	case p.CategoriaID <= 0:
		return domain.Invalid("Selecciona una categoría")
	}
	return nil
}

// Load productos y categorías en paralelo; cada sección falla por separado.
func (uc *ProductUseCase) Load(ctx context.Context, actor auth.Actor, page entity.PageRequest) *dto.ProductsView {
	productsCh := make(chan dto.Section[*entity.Page[entity.Product]], 1)
	categoriesCh := make(chan dto.Section[[]entity.Category], 1)

	go func() { productsCh <- uc.res.list(ctx, actor, page) }()
	go func() { categoriesCh <- lookup(ctx, actor.Token(), uc.categories.List) }()

	view := &dto.ProductsView{
		Productos:  <-productsCh,
		Categorias: <-categoriesCh,
		Acciones: permission.Allowed(actor.Role(),
			permission.CreateProduct, permission.UpdateProduct, permission.DeleteProduct),
	}
	resolveCategories(view)
	return view
}

// resolveCategories completa Categoria en los productos que solo traen el id.
func resolveCategories(view *dto.ProductsView) {
	if view.Productos.Data == nil {
		return
	}
	byID := make(map[int64]entity.Category, len(view.Categorias.Data))
	for _, c := range view.Categorias.Data {
		byID[c.ID] = c
	}
	for i := range view.Productos.Data.Items {
		p := &view.Productos.Data.Items[i]
		if p.Categoria != nil {
			continue
		}
		if c, ok := byID[p.CategoriaID]; ok {
			cp := c
			p.Categoria = &cp
		}
	}
}

// Create crea el producto y recarga la lista.
func (uc *ProductUseCase) Create(ctx context.Context, actor auth.Actor, page entity.PageRequest, in dto.ProductRequest) (*dto.ProductsView, error) {
	if err := uc.res.doCreate(ctx, actor, in.ToEntity()); err != nil {
		return nil, wrap("productos: crear", err)
	}
	return uc.Load(ctx, actor, page), nil
}

// Update actualiza el producto y recarga la lista.
func (uc *ProductUseCase) Update(ctx context.Context, actor auth.Actor, page entity.PageRequest, id int64, in dto.ProductRequest) (*dto.ProductsView, error) {
	if err := uc.res.doUpdate(ctx, actor, id, in.ToEntity()); err != nil {
		return nil, wrap("productos: actualizar", err)
	}
	return uc.Load(ctx, actor, page), nil
}

// Delete elimina el producto (requiere confirm) y recarga la lista.
func (uc *ProductUseCase) Delete(ctx context.Context, actor auth.Actor, page entity.PageRequest, id int64, confirm bool) (*dto.ProductsView, error) {
	if err := uc.res.doDelete(ctx, actor, id, confirm); err != nil {
		return nil, wrap("productos: eliminar", err)
	}
	return uc.Load(ctx, actor, page), nil
}
