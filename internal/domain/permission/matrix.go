// Package permission contiene la matriz estática rol → acción y rol → página.
//
// La matriz solo decide qué se muestra y qué llamadas se intentan desde el
// panel; el backend aplica sus propias reglas en cada endpoint.
package permission

import "github.com/jhoicas/Inventario-admin/internal/domain/entity"

// Action permiso con nombre que se consulta contra la matriz.
type Action string

// Acciones del panel.
const (
	CreateProduct Action = "CREATE_PRODUCT"
	UpdateProduct Action = "UPDATE_PRODUCT"
	DeleteProduct Action = "DELETE_PRODUCT"

	CreateCategory Action = "CREATE_CATEGORY"
	UpdateCategory Action = "UPDATE_CATEGORY"
	DeleteCategory Action = "DELETE_CATEGORY"

	CreateCustomer Action = "CREATE_CUSTOMER"
	UpdateCustomer Action = "UPDATE_CUSTOMER"
	DeleteCustomer Action = "DELETE_CUSTOMER"

	CreateOrder       Action = "CREATE_ORDER"
	UpdateOrder       Action = "UPDATE_ORDER"
	DeleteOrder       Action = "DELETE_ORDER"
	UpdateOrderStatus Action = "UPDATE_ORDER_STATUS"

	ViewReports  Action = "VIEW_REPORTS"
	ExportReport Action = "EXPORT_REPORT"
)

// Page página protegida del panel.
type Page string

// Páginas del panel.
const (
	PageDashboard  Page = "DASHBOARD"
	PageProducts   Page = "PRODUCTS"
	PageCategories Page = "CATEGORIES"
	PageCustomers  Page = "CUSTOMERS"
	PageOrders     Page = "ORDERS"
	PageReports    Page = "REPORTS"
)

var (
	adminOnly   = []entity.Role{entity.RoleAdmin}
	adminOrUser = []entity.Role{entity.RoleAdmin, entity.RoleUser}
)

var actions = map[Action][]entity.Role{
	CreateProduct: adminOnly,
	UpdateProduct: adminOnly,
	DeleteProduct: adminOnly,

	CreateCategory: adminOnly,
	UpdateCategory: adminOnly,
	DeleteCategory: adminOnly,

	CreateCustomer: adminOrUser,
	UpdateCustomer: adminOrUser,
	DeleteCustomer: adminOrUser,

	CreateOrder:       adminOrUser,
	UpdateOrder:       adminOnly,
	DeleteOrder:       adminOrUser,
	UpdateOrderStatus: adminOnly,

	ViewReports:  adminOnly,
	ExportReport: adminOnly,
}

var pages = map[Page][]entity.Role{
	PageDashboard:  adminOrUser,
	PageProducts:   adminOrUser,
	PageCategories: adminOnly,
	PageCustomers:  adminOrUser,
	PageOrders:     adminOrUser,
	PageReports:    adminOnly,
}

var denials = map[Action]string{
	CreateProduct:     "No tienes permiso para crear productos",
	UpdateProduct:     "No tienes permiso para editar productos",
	DeleteProduct:     "No tienes permiso para eliminar productos",
	CreateCategory:    "No tienes permiso para crear categorías",
	UpdateCategory:    "No tienes permiso para editar categorías",
	DeleteCategory:    "No tienes permiso para eliminar categorías",
	CreateCustomer:    "No tienes permiso para crear clientes",
	UpdateCustomer:    "No tienes permiso para editar clientes",
	DeleteCustomer:    "No tienes permiso para eliminar clientes",
	CreateOrder:       "No tienes permiso para crear pedidos",
	UpdateOrder:       "No tienes permiso para editar pedidos",
	DeleteOrder:       "No tienes permiso para eliminar pedidos",
	UpdateOrderStatus: "No tienes permiso para cambiar el estado de pedidos",
	ViewReports:       "Solo administradores pueden ver reportes",
	ExportReport:      "Solo administradores pueden exportar reportes",
}

// HasPermission true si role está en required. Rol vacío o lista vacía → false.
func HasPermission(role entity.Role, required []entity.Role) bool {
	if role == "" || len(required) == 0 {
		return false
	}
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}

// CanAccess true si y solo si role pertenece a la entrada de action.
// Acción o rol desconocidos devuelven false, nunca pánico.
func CanAccess(role entity.Role, action Action) bool {
	return HasPermission(role, actions[action])
}

// CanView true si role puede abrir la página.
func CanView(role entity.Role, page Page) bool {
	return HasPermission(role, pages[page])
}

// RequiredRoles roles de una acción (copia; nil si la acción no existe).
func RequiredRoles(action Action) []entity.Role {
	roles, ok := actions[action]
	if !ok {
		return nil
	}
	return append([]entity.Role(nil), roles...)
}

// PageRoles roles de una página (copia).
func PageRoles(page Page) []entity.Role {
	roles, ok := pages[page]
	if !ok {
		return nil
	}
	return append([]entity.Role(nil), roles...)
}

// Actions todas las acciones conocidas.
func Actions() []Action {
	out := make([]Action, 0, len(actions))
	for a := range actions {
		out = append(out, a)
	}
	return out
}

// DenialMessage texto del toast cuando la matriz niega una acción.
func DenialMessage(action Action) string {
	if msg, ok := denials[action]; ok {
		return msg
	}
	return "No tienes permisos para realizar esta acción"
}

// Guard devuelve content si el rol puede ejecutar action; si no, fallback.
// Es el equivalente de ocultar un botón o una sección entera.
func Guard[T any](role entity.Role, action Action, content, fallback T) T {
	if CanAccess(role, action) {
		return content
	}
	return fallback
}

// Allowed mapa acción → permitido, para que la vista oculte lo que no corresponde.
func Allowed(role entity.Role, list ...Action) map[Action]bool {
	out := make(map[Action]bool, len(list))
	for _, a := range list {
		out[a] = CanAccess(role, a)
	}
	return out
}
