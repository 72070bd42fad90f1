package entity

// Page lista normalizada de cualquier endpoint paginado del backend.
// El backend responde a veces {datos:{content,...}}, {data:...} o un array
// plano; el cliente HTTP siempre entrega esta forma.
type Page[T any] struct {
	Items         []T   `json:"content"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

// PageRequest parámetros page/size del backend.
type PageRequest struct {
	Page int
	Size int
}

// DefaultPage aplica valores por defecto (page 0, size 10).
func (p *PageRequest) DefaultPage() {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = 10
	}
	if p.Size > 100 {
		p.Size = 100
	}
}
