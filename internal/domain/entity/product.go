package entity

import "github.com/shopspring/decimal"

// Product producto del catálogo. Stock y precio los administra el backend.
type Product struct {
	ID            int64           `json:"id"`
	Nombre        string          `json:"nombre"`
	Descripcion   string          `json:"descripcion"`
	Precio        decimal.Decimal `json:"precio"`
	Stock         int             `json:"stock"`
	CategoriaID   int64           `json:"categoriaId"`
	Categoria     *Category       `json:"categoria,omitempty"`
	Marca         string          `json:"marca"`
	Modelo        string          `json:"modelo"`
	Color         string          `json:"color"`
	Estado        string          `json:"estado,omitempty"`
	FechaCreacion string          `json:"fechaCreacion,omitempty"`
}
