package dto

import (
	"strings"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
)

// LoginRequest cuerpo de POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest cuerpo de POST /register. Role vacío → USER.
type RegisterRequest struct {
	DNI      string `json:"dni"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ToEntity convierte el formulario. Un rol desconocido queda vacío y se
// registra como USER.
func (r RegisterRequest) ToEntity() entity.Registration {
	role, _ := entity.ParseRole(r.Role)
	return entity.Registration{
		DNI:      strings.TrimSpace(r.DNI),
		Nombre:   strings.TrimSpace(r.Nombre),
		Apellido: strings.TrimSpace(r.Apellido),
		Email:    strings.TrimSpace(r.Email),
		Password: r.Password,
		Role:     role,
	}
}

// SessionView estado de la sesión para el navegador.
type SessionView struct {
	Authenticated bool         `json:"authenticated"`
	User          *entity.User `json:"user,omitempty"`
	// Redirect página por defecto tras iniciar o cerrar sesión.
	Redirect string `json:"redirect,omitempty"`
}

// ProfileView GET /me.
type ProfileView struct {
	User    *entity.User `json:"user"`
	Paginas []string     `json:"paginas"`
}
