package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-admin/internal/application/dto"
	"github.com/jhoicas/Inventario-admin/internal/domain/permission"
)

// Rutas de redirección del guard.
const (
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
)

// RequireAuth exige sesión iniciada. Un GET sin sesión se redirige a /login;
// el resto de métodos responde 401.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := GetSession(c)
		if s != nil && s.IsAuthenticated() {
			return c.Next()
		}
		if c.Method() == fiber.MethodGet {
			return c.Redirect(PathLogin, fiber.StatusFound)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code:    "UNAUTHENTICATED",
			Message: "Debes iniciar sesión",
			Toasts:  toasts(c),
		})
	}
}

// RequirePage exige que el rol pueda abrir la página. Debe usarse DESPUÉS de
// RequireAuth. Un GET sin permiso se redirige a /dashboard; el resto responde 403.
func RequirePage(page permission.Page) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := GetSession(c)
		if s != nil && permission.CanView(s.Role(), page) {
			return c.Next()
		}
		if c.Method() == fiber.MethodGet {
			return c.Redirect(PathDashboard, fiber.StatusFound)
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "No tienes permisos para acceder a esta página",
			Toasts:  toasts(c),
		})
	}
}

// GuestOnly redirige a /dashboard si ya hay sesión (página de login).
func GuestOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s := GetSession(c); s != nil && s.IsAuthenticated() {
			return c.Redirect(PathDashboard, fiber.StatusFound)
		}
		return c.Next()
	}
}
