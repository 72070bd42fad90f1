package auth

import (
	"context"

	"github.com/jhoicas/Inventario-admin/internal/application/toast"
	"github.com/jhoicas/Inventario-admin/internal/domain"
	"github.com/jhoicas/Inventario-admin/internal/domain/permission"
)

// Authorize consulta la matriz de permisos antes de cualquier llamada al
// backend. Si el rol no alcanza, notifica el motivo y devuelve domain.ErrForbidden.
func Authorize(ctx context.Context, actor Actor, action permission.Action) error {
	if actor != nil && permission.CanAccess(actor.Role(), action) {
		return nil
	}
	toast.Error(ctx, permission.DenialMessage(action))
	return domain.ErrForbidden
}
