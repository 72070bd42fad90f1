package repository

import (
	"context"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
)

// AuthRepository puerto hacia los endpoints públicos de autenticación.
type AuthRepository interface {
	Login(ctx context.Context, in entity.Credentials) (*entity.LoginResult, error)
	Register(ctx context.Context, in entity.Registration) (*entity.RegisteredUser, error)
}
