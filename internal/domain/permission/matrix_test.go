package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/permission"
)

func TestCanAccess_CoincideConLaMatriz(t *testing.T) {
	for _, action := range permission.Actions() {
		required := permission.RequiredRoles(action)
		for _, role := range entity.Roles() {
			want := false
			for _, r := range required {
				if r == role {
					want = true
				}
			}
			assert.Equal(t, want, permission.CanAccess(role, action),
				"CanAccess(%s, %s) debe reflejar la tabla", role, action)
		}
	}
}

func TestCanAccess_CasosConcretos(t *testing.T) {
	assert.True(t, permission.CanAccess(entity.RoleAdmin, permission.DeleteOrder))
	assert.True(t, permission.CanAccess(entity.RoleUser, permission.DeleteOrder))
	assert.True(t, permission.CanAccess(entity.RoleAdmin, permission.UpdateOrderStatus))
	assert.False(t, permission.CanAccess(entity.RoleUser, permission.UpdateOrderStatus))
	assert.False(t, permission.CanAccess(entity.RoleUser, permission.DeleteProduct))
	assert.True(t, permission.CanAccess(entity.RoleUser, permission.DeleteCustomer))
}

func TestCanAccess_RolOAccionDesconocidos(t *testing.T) {
	assert.False(t, permission.CanAccess("", permission.CreateOrder), "rol vacío")
	assert.False(t, permission.CanAccess("SUPERVISOR", permission.CreateOrder), "rol desconocido")
	assert.False(t, permission.CanAccess(entity.RoleAdmin, "NO_EXISTE"), "acción desconocida")
	assert.Nil(t, permission.RequiredRoles("NO_EXISTE"))
}

func TestCanView_Paginas(t *testing.T) {
	assert.True(t, permission.CanView(entity.RoleUser, permission.PageOrders))
	assert.False(t, permission.CanView(entity.RoleUser, permission.PageCategories))
	assert.False(t, permission.CanView(entity.RoleUser, permission.PageReports))
	assert.True(t, permission.CanView(entity.RoleAdmin, permission.PageReports))
}

func TestRequiredRoles_DevuelveCopia(t *testing.T) {
	roles := permission.RequiredRoles(permission.CreateOrder)
	roles[0] = "HACKER"
	assert.True(t, permission.CanAccess(entity.RoleAdmin, permission.CreateOrder),
		"modificar la copia no debe alterar la matriz")
}

func TestGuard_YAllowed(t *testing.T) {
	assert.Equal(t, "botón", permission.Guard(entity.RoleAdmin, permission.DeleteProduct, "botón", ""))
	assert.Equal(t, "", permission.Guard(entity.RoleUser, permission.DeleteProduct, "botón", ""))

	allowed := permission.Allowed(entity.RoleUser, permission.CreateOrder, permission.UpdateOrderStatus)
	assert.Equal(t, map[permission.Action]bool{
		permission.CreateOrder:       true,
		permission.UpdateOrderStatus: false,
	}, allowed)
}

func TestDenialMessage(t *testing.T) {
	assert.Equal(t, "No tienes permiso para eliminar pedidos", permission.DenialMessage(permission.DeleteOrder))
	assert.NotEmpty(t, permission.DenialMessage("NO_EXISTE"))
}
