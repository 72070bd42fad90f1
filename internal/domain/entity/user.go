package entity

import (
	"fmt"
	"strings"
)

// Role rol del usuario autenticado. Conjunto cerrado: ADMIN o USER.
type Role string

// Roles válidos.
const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Roles devuelve todos los roles válidos.
func Roles() []Role { return []Role{RoleAdmin, RoleUser} }

// ParseRole valida el rol recibido del backend o del formulario de registro.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", fmt.Errorf("rol desconocido %q", s)
}

// RoleOrDefault devuelve el rol parseado o USER si está vacío o no es válido.
func RoleOrDefault(s string) Role {
	r, err := ParseRole(s)
	if err != nil {
		return RoleUser
	}
	return r
}

// User instantánea del usuario de la sesión (no es el registro del backend).
type User struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// DisplayName deriva el nombre a mostrar de la parte local del email.
func DisplayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return "Usuario"
	}
	return local
}

// Session token + usuario derivado. Existe mientras haya token.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
