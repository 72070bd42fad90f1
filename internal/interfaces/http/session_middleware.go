package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-admin/internal/application/auth"
	"github.com/jhoicas/Inventario-admin/internal/application/toast"
	"github.com/jhoicas/Inventario-admin/internal/domain/repository"
	"github.com/jhoicas/Inventario-admin/pkg/logger"
)

// Locals keys de la sesión en Fiber.
const (
	LocalSession   = "session"
	LocalStorage   = "storage"
	LocalToaster   = "toaster"
	LocalSessionID = "session_id"
)

// sessionStore es el contrato mínimo que necesita el middleware.
// Lo implementan storage.Memory y storage.Redis.
type sessionStore interface {
	Session(id string) auth.Storage
	Destroy(ctx context.Context, id string) error
}

// SessionConfig cookie del navegador.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// SessionMiddleware identifica al navegador por cookie, rehidrata su sesión y
// adjunta un Toaster nuevo al contexto de la petición.
//
// Una cookie ausente o que no es un uuid genera una sesión nueva. Un Storage
// que falla deja la petición sin autenticar.
func SessionMiddleware(store sessionStore, repo repository.AuthRepository, cfg SessionConfig, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		id := c.Cookies(cfg.CookieName)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    id,
			Path:     "/",
			Expires:  time.Now().Add(cfg.TTL),
			HTTPOnly: true,
			Secure:   cfg.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})

		t := toast.New()
		ctx := toast.WithToaster(c.UserContext(), t)
		st := store.Session(id)
		sess := auth.NewSession(st, repo)
		if err := sess.Bootstrap(ctx); err != nil {
			log.Warn().Err(err).Str("path", c.Path()).Msg("sesión: no se pudo rehidratar")
		}

		c.SetUserContext(ctx)
		c.Locals(LocalSessionID, id)
		c.Locals(LocalSession, sess)
		c.Locals(LocalStorage, st)
		c.Locals(LocalToaster, t)
		return c.Next()
	}
}

// GetSession devuelve la sesión de la petición (después de SessionMiddleware).
func GetSession(c *fiber.Ctx) *auth.Session {
	s, _ := c.Locals(LocalSession).(*auth.Session)
	return s
}

// GetStorage devuelve el Storage de la sesión.
func GetStorage(c *fiber.Ctx) auth.Storage {
	st, _ := c.Locals(LocalStorage).(auth.Storage)
	return st
}

// GetSessionID devuelve el id de la cookie de sesión.
func GetSessionID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionID).(string)
	return s
}

func toasts(c *fiber.Ctx) []toast.Toast {
	t, _ := c.Locals(LocalToaster).(*toast.Toaster)
	if items := t.Drain(); items != nil {
		return items
	}
	return []toast.Toast{}
}
