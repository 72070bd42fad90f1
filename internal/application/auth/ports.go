package auth

import (
	"context"
	"errors"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
)

// ErrNoValue la clave no existe en el almacenamiento de la sesión.
var ErrNoValue = errors.New("auth: clave no encontrada")

// Storage almacenamiento durable del cliente, con espacio de claves propio por sesión.
// Get devuelve ErrNoValue si la clave no existe.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Claves persistidas.
const (
	KeyToken    = "token"
	KeyUserRole = "userRole"
	KeyUserData = "userData"
	// KeyCart carrito en curso; pertenece al usuario autenticado y se borra
	// al entrar y al salir.
	KeyCart = "cart"
)

// Actor quien ejecuta una operación de página. *Session lo implementa.
type Actor interface {
	Token() string
	Role() entity.Role
	User() *entity.User
}

var _ Actor = (*Session)(nil)
