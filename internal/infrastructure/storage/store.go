// Package storage implementa auth.Storage: cada sesión del navegador (cookie)
// tiene su propio espacio de claves con expiración.
package storage

import (
	"context"

	"github.com/jhoicas/Inventario-admin/internal/application/auth"
)

// Store fábrica de espacios de claves por sesión.
type Store interface {
	// Session devuelve el Storage de la sesión id. No crea nada hasta el primer Set.
	Session(id string) auth.Storage
	// Destroy elimina todas las claves de la sesión.
	Destroy(ctx context.Context, id string) error
	Close() error
}
