// Package analytics contiene los casos de uso de la página de inicio y de la
// página de reportes.
package analytics

import (
	"context"

	"github.com/jhoicas/Inventario-admin/internal/application/auth"
	"github.com/jhoicas/Inventario-admin/internal/application/dto"
	"github.com/jhoicas/Inventario-admin/internal/application/toast"
	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/permission"
	"github.com/jhoicas/Inventario-admin/internal/domain/repository"
)

// countPage basta con un elemento: solo interesa totalElements.
var countPage = entity.PageRequest{Page: 0, Size: 1}

// DashboardUseCase arma las tarjetas de conteo del inicio.
//
// Cualquier falla deja todos los conteos en cero sin notificar al usuario.
type DashboardUseCase struct {
	products    repository.ProductRepository
	categories  repository.CategoryRepository
	customers   repository.CustomerRepository
	reports     repository.ReportRepository
	stockMinimo int
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	customers repository.CustomerRepository,
	reports repository.ReportRepository,
	stockMinimo int,
) *DashboardUseCase {
	return &DashboardUseCase{
		products:    products,
		categories:  categories,
		customers:   customers,
		reports:     reports,
		stockMinimo: stockMinimo,
	}
}

// Summary ejecuta los conteos en paralelo:
//  1. productos
//  2. categorías
//  3. clientes
//  4. productos con stock bajo (solo si el rol puede ver reportes)
func (uc *DashboardUseCase) Summary(ctx context.Context, actor auth.Actor) *dto.DashboardView {
	role := actor.Role()
	view := &dto.DashboardView{
		Usuario:  actor.User(),
		Acciones: permission.Allowed(role, permission.Actions()...),
	}

	quiet := toast.Silence(ctx)
	token := actor.Token()

	productsCh := make(chan countResult, 1)
	categoriesCh := make(chan countResult, 1)
	customersCh := make(chan countResult, 1)
	lowStockCh := make(chan countResult, 1)

	go func() {
		p, err := uc.products.List(quiet, token, countPage)
		productsCh <- total(p, err)
	}()
	go func() {
		p, err := uc.categories.List(quiet, token, countPage)
		categoriesCh <- total(p, err)
	}()
	go func() {
		p, err := uc.customers.List(quiet, token, countPage)
		customersCh <- total(p, err)
	}()
	go func() {
		if !permission.CanAccess(role, permission.ViewReports) {
			lowStockCh <- countResult{}
			return
		}
		p, err := uc.reports.LowStock(quiet, token, uc.stockMinimo, countPage)
		lowStockCh <- total(p, err)
	}()

	products := <-productsCh
	categories := <-categoriesCh
	customers := <-customersCh
	lowStock := <-lowStockCh

	for _, r := range []countResult{products, categories, customers, lowStock} {
		if r.err != nil {
			return view
		}
	}
	view.TotalProductos = products.n
	view.TotalCategorias = categories.n
	view.TotalClientes = customers.n
	view.ProductosStockBajo = lowStock.n
	return view
}

type countResult struct {
	n   int64
	err error
}

func total[T any](p *entity.Page[T], err error) countResult {
	if err != nil {
		return countResult{err: err}
	}
	return countResult{n: p.TotalElements}
}
