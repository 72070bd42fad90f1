package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/permission"
)

// ── Productos ────────────────────────────────────────────────────────────────

// ProductRequest formulario de producto.
type ProductRequest struct {
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	CategoriaID int64           `json:"categoriaId"`
	Marca       string          `json:"marca"`
	Modelo      string          `json:"modelo"`
	Color       string          `json:"color"`
	Estado      string          `json:"estado"`
}

// ToEntity convierte el formulario.
func (r ProductRequest) ToEntity() *entity.Product {
	return &entity.Product{
		Nombre:      r.Nombre,
		Descripcion: r.Descripcion,
		Precio:      r.Precio,
		Stock:       r.Stock,
		CategoriaID: r.CategoriaID,
		Marca:       r.Marca,
		Modelo:      r.Modelo,
		Color:       r.Color,
		Estado:      r.Estado,
	}
}

// ProductsView página de productos. Categorias resuelve nombres en la tabla.
type ProductsView struct {
	Productos  Section[*entity.Page[entity.Product]] `json:"productos"`
	Categorias Section[[]entity.Category]            `json:"categorias"`
	Acciones   map[permission.Action]bool            `json:"acciones"`
}

// ── Categorías ───────────────────────────────────────────────────────────────

// CategoryRequest formulario de categoría.
type CategoryRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

// ToEntity convierte el formulario.
func (r CategoryRequest) ToEntity() *entity.Category {
	return &entity.Category{Nombre: r.Nombre, Descripcion: r.Descripcion}
}

// CategoriesView página de categorías.
type CategoriesView struct {
	Categorias Section[*entity.Page[entity.Category]] `json:"categorias"`
	Acciones   map[permission.Action]bool             `json:"acciones"`
}

// ── Clientes ─────────────────────────────────────────────────────────────────

// CustomerRequest formulario de cliente.
type CustomerRequest struct {
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	DNI       string `json:"dni"`
	Direccion string `json:"direccion"`
}

// ToEntity convierte el formulario.
func (r CustomerRequest) ToEntity() *entity.Customer {
	return &entity.Customer{
		Nombre:    r.Nombre,
		Apellido:  r.Apellido,
		Email:     r.Email,
		Telefono:  r.Telefono,
		DNI:       r.DNI,
		Direccion: r.Direccion,
	}
}

// CustomersView página de clientes.
type CustomersView struct {
	Clientes Section[*entity.Page[entity.Customer]] `json:"clientes"`
	Acciones map[permission.Action]bool             `json:"acciones"`
}
