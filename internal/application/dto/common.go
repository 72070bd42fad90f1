package dto

import (
	"github.com/jhoicas/Inventario-admin/internal/application/toast"
	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
)

// PageQuery paginación de los listados (?page=&size=).
type PageQuery struct {
	Page int `query:"page"`
	Size int `query:"size"`
}

// ToPageRequest aplica los valores por defecto del backend.
func (q PageQuery) ToPageRequest() entity.PageRequest {
	p := entity.PageRequest{Page: q.Page, Size: q.Size}
	p.DefaultPage()
	return p
}

// Section bloque de una página que se carga de forma independiente. Si Error
// no está vacío el resto de la página se renderiza igual.
type Section[T any] struct {
	Data  T      `json:"data"`
	Error string `json:"error,omitempty"`
}

// Ok indica que la sección cargó sin error.
func (s Section[T]) Ok() bool { return s.Error == "" }

// Envelope respuesta de toda ruta de la BFF: datos + notificaciones de la petición.
type Envelope struct {
	Data   any           `json:"data,omitempty"`
	Toasts []toast.Toast `json:"toasts"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Toasts  []toast.Toast `json:"toasts,omitempty"`
}

// ConfirmQuery confirmación explícita de operaciones destructivas (?confirm=true).
type ConfirmQuery struct {
	Confirm bool `query:"confirm"`
}
