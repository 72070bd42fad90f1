package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-admin/internal/application/analytics"
	"github.com/jhoicas/Inventario-admin/internal/application/usecase"
	"github.com/jhoicas/Inventario-admin/internal/domain/permission"
	"github.com/jhoicas/Inventario-admin/internal/domain/repository"
	"github.com/jhoicas/Inventario-admin/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthRepo    repository.AuthRepository
	Sessions    sessionStore
	Session     SessionConfig
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	CustomerUC  *usecase.CustomerUseCase
	OrderUC     *usecase.OrderUseCase
	DashboardUC *analytics.DashboardUseCase
	ReportsUC   *analytics.ReportsUseCase
	BackendURL  string
	Log         *logger.Logger
}

// Router registra las rutas del panel.
func Router(app *fiber.App, deps RouterDeps) {
	// Proxy al backend; no continúa la cadena.
	app.All("/v1/*", SessionMiddleware(deps.Sessions, deps.AuthRepo, deps.Session, deps.Log), BackendProxy(deps.BackendURL, deps.Session.CookieName))

	app.Use(SessionMiddleware(deps.Sessions, deps.AuthRepo, deps.Session, deps.Log))

	// Auth (público)
	authHandler := NewAuthHandler(deps.Sessions, deps.AuthRepo)
	app.Get("/login", GuestOnly(), authHandler.LoginPage)
	app.Post("/login", authHandler.Login)
	app.Post("/register", authHandler.Register)
	app.Post("/logout", authHandler.Logout)
	app.Get("/session", authHandler.Session)

	app.Get("/", func(c *fiber.Ctx) error {
		if s := GetSession(c); s != nil && s.IsAuthenticated() {
			return c.Redirect(PathDashboard, fiber.StatusFound)
		}
		return c.Redirect(PathLogin, fiber.StatusFound)
	})

	// Rutas protegidas (requieren sesión)
	protected := app.Group("/", RequireAuth())
	protected.Get("/me", authHandler.Me)

	reportHandler := NewReportHandler(deps.DashboardUC, deps.ReportsUC)
	protected.Get("/dashboard", RequirePage(permission.PageDashboard), reportHandler.Dashboard)

	reports := protected.Group("/reports", RequirePage(permission.PageReports))
	reports.Get("/", reportHandler.Reports)
	reports.Post("/export", reportHandler.Export)

	products := protected.Group("/products", RequirePage(permission.PageProducts))
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	categories := protected.Group("/categories", RequirePage(permission.PageCategories))
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	customers := protected.Group("/customers", RequirePage(permission.PageCustomers))
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	orders := protected.Group("/orders", RequirePage(permission.PageOrders))
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/", orderHandler.List)
	orders.Get("/search", orderHandler.Search)
	orders.Get("/cart", orderHandler.Cart)
	orders.Put("/cart", orderHandler.UpdateForm)
	orders.Delete("/cart", orderHandler.Clear)
	orders.Post("/cart/items", orderHandler.AddItem)
	orders.Put("/cart/items/:index", orderHandler.UpdateItem)
	orders.Delete("/cart/items/:index", orderHandler.RemoveItem)
	orders.Post("/cart/submit", orderHandler.Submit)
	orders.Patch("/:id/estado", orderHandler.ChangeStatus)
	orders.Get("/:id/pdf", orderHandler.Receipt)
	orders.Delete("/:id", orderHandler.Delete)
}
