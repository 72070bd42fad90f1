package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-admin/internal/application/auth"
	"github.com/jhoicas/Inventario-admin/internal/application/dto"
	"github.com/jhoicas/Inventario-admin/internal/application/toast"
	"github.com/jhoicas/Inventario-admin/internal/domain/permission"
	"github.com/jhoicas/Inventario-admin/internal/domain/repository"
)

// AuthHandler maneja login, registro, logout y perfil sobre la sesión del navegador.
type AuthHandler struct {
	store sessionStore
	repo  repository.AuthRepository
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(store sessionStore, repo repository.AuthRepository) *AuthHandler {
	return &AuthHandler{store: store, repo: repo}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.Envelope{data=dto.SessionView}
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ctx := c.UserContext()
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		toast.Error(ctx, "Email y contraseña son requeridos")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Email y contraseña son requeridos", Toasts: toasts(c)})
	}
	s := GetSession(c)
	res := s.SignIn(ctx, in.Email, in.Password)
	if !res.Success {
		// El cliente HTTP ya notificó las fallas del backend.
		if len(toast.FromContext(ctx).Items()) == 0 {
			toast.Error(ctx, res.Error)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: res.Error, Toasts: toasts(c)})
	}
	toast.Success(ctx, "Sesión iniciada correctamente")
	return respond(c, fiber.StatusOK, dto.SessionView{Authenticated: true, User: s.User(), Redirect: PathDashboard})
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "dni, nombre, apellido, email, password, role"
// @Success      201   {object}  dto.Envelope{data=entity.RegisteredUser}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ctx := c.UserContext()
	res := GetSession(c).Register(ctx, in.ToEntity())
	if !res.Success {
		if len(toast.FromContext(ctx).Items()) == 0 {
			toast.Error(ctx, res.Error)
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "REGISTER_FAILED", Message: res.Error, Toasts: toasts(c)})
	}
	toast.Success(ctx, "Registro exitoso. Revisa tu email para verificar tu cuenta.")
	return respond(c, fiber.StatusCreated, res.Data)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.SessionView}
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if err := GetSession(c).SignOut(ctx); err != nil {
		return fail(c, err)
	}
	// El carrito y cualquier otra clave de la sesión se descartan con ella.
	if err := h.store.Destroy(ctx, GetSessionID(c)); err != nil {
		return fail(c, err)
	}
	toast.Success(ctx, "Sesión cerrada")
	return respond(c, fiber.StatusOK, dto.SessionView{Redirect: PathLogin})
}

// LoginPage godoc
// @Summary      Estado de la página de login (redirige a /dashboard con sesión)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.SessionView}
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, dto.SessionView{})
}

// Session godoc
// @Summary      Estado de la sesión actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.SessionView}
// @Router       /session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	s := GetSession(c)
	return respond(c, fiber.StatusOK, dto.SessionView{Authenticated: s.IsAuthenticated(), User: s.User()})
}

// Me godoc
// @Summary      Perfil y páginas visibles del usuario
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.ProfileView}
// @Router       /me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	s := GetSession(c)
	return respond(c, fiber.StatusOK, dto.ProfileView{User: s.User(), Paginas: visiblePages(s)})
}

var navPages = []struct {
	page permission.Page
	path string
}{
	{permission.PageDashboard, "/dashboard"},
	{permission.PageProducts, "/products"},
	{permission.PageCategories, "/categories"},
	{permission.PageCustomers, "/customers"},
	{permission.PageOrders, "/orders"},
	{permission.PageReports, "/reports"},
}

// visiblePages rutas del menú lateral que el rol puede abrir.
func visiblePages(s *auth.Session) []string {
	out := make([]string, 0, len(navPages))
	for _, p := range navPages {
		if permission.CanView(s.Role(), p.page) {
			out = append(out, p.path)
		}
	}
	return out
}
