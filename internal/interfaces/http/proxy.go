package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
)

// BackendProxy reenvía /v1/* al backend tal cual. Si la petición no trae
// Authorization se usa el token de la sesión del navegador.
func BackendProxy(backendURL, cookieName string) fiber.Handler {
	backendURL = strings.TrimRight(backendURL, "/")
	return func(c *fiber.Ctx) error {
		if len(c.Request().Header.Peek(fiber.HeaderAuthorization)) == 0 {
			if s := GetSession(c); s != nil && s.Token() != "" {
				c.Request().Header.Set(fiber.HeaderAuthorization, "Bearer "+s.Token())
			}
		}
		// La cookie de sesión es del BFF, no del backend.
		c.Request().Header.DelCookie(cookieName)
		if err := proxy.Do(c, backendURL+c.OriginalURL()); err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"code": "NETWORK", "message": "Error de conexión con el servidor"})
		}
		c.Response().Header.Del(fiber.HeaderServer)
		return nil
	}
}
