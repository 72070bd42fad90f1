package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Inventario-admin/internal/application/auth"
	"github.com/jhoicas/Inventario-admin/internal/application/dto"
	"github.com/jhoicas/Inventario-admin/internal/application/toast"
	"github.com/jhoicas/Inventario-admin/internal/domain"
	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/permission"
	"github.com/jhoicas/Inventario-admin/internal/domain/repository"
)

const (
	dateLayout       = "2006-01-02"
	defaultRangeDays = 30
	reportPageSize   = 10
)

// Formatos de exportación aceptados.
var exportFormats = map[string]bool{"PDF": true, "EXCEL": true, "CSV": true}

// ReportsUseCase página de reportes (solo ADMIN).
type ReportsUseCase struct {
	repo        repository.ReportRepository
	stockMinimo int
	now         func() time.Time
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(repo repository.ReportRepository, stockMinimo int) *ReportsUseCase {
	return &ReportsUseCase{repo: repo, stockMinimo: stockMinimo, now: time.Now}
}

// WithClock fija el reloj (tests).
func (uc *ReportsUseCase) WithClock(now func() time.Time) *ReportsUseCase {
	uc.now = now
	return uc
}

// Range construye el rango de fechas del backend. Vacío → últimos 30 días.
// El inicio se extiende a T00:00:00 y el fin a T23:59:59.
func (uc *ReportsUseCase) Range(fechaInicio, fechaFin string) (entity.DateRange, error) {
	today := uc.now()
	if fechaFin == "" {
		fechaFin = today.Format(dateLayout)
	}
	if fechaInicio == "" {
		fechaInicio = today.AddDate(0, 0, -defaultRangeDays).Format(dateLayout)
	}
	start, err := time.Parse(dateLayout, fechaInicio)
	if err != nil {
		return entity.DateRange{}, domain.Invalid("Fecha de inicio inválida")
	}
	end, err := time.Parse(dateLayout, fechaFin)
	if err != nil {
		return entity.DateRange{}, domain.Invalid("Fecha de fin inválida")
	}
	if end.Before(start) {
		return entity.DateRange{}, domain.Invalid("La fecha de inicio debe ser anterior a la fecha de fin")
	}
	return entity.DateRange{
		FechaInicio: fechaInicio + "T00:00:00",
		FechaFin:    fechaFin + "T23:59:59",
	}, nil
}

// Load carga las ocho secciones en paralelo; basta una falla para que la
// página no se arme. Ventas por período, mejor compra y métricas se cargan aparte
// y su falta no bloquea.
func (uc *ReportsUseCase) Load(ctx context.Context, actor auth.Actor, q dto.ReportsQuery) (*dto.ReportsView, error) {
	if err := auth.Authorize(ctx, actor, permission.ViewReports); err != nil {
		return nil, err
	}
	dr, err := uc.Range(q.FechaInicio, q.FechaFin)
	if err != nil {
		toast.Error(ctx, err.Error())
		return nil, err
	}

	token := actor.Token()
	page := entity.PageRequest{Page: 0, Size: reportPageSize}
	view := &dto.ReportsView{
		Rango:    dr,
		Acciones: permission.Allowed(actor.Role(), permission.ViewReports, permission.ExportReport),
	}

	type extras struct {
		periodo     []entity.SalesByPeriod
		mejorCompra *entity.Page[entity.SalesByCustomer]
		metricas    *entity.QuickMetrics
	}
	extrasCh := make(chan extras, 1)
	go func() {
		quiet := toast.Silence(ctx)
		var ex extras
		ex.periodo, _ = uc.repo.SalesByPeriod(quiet, token, dr)
		ex.mejorCompra, _ = uc.repo.BestPurchaseCustomers(quiet, token, dr, page)
		ex.metricas, _ = uc.repo.QuickMetrics(quiet, token, dr)
		extrasCh <- ex
	}()

	// Sin WithContext: una falla no cancela a las demás, así cada una
	// notifica a lo sumo su propio error.
	var g errgroup.Group
	g.Go(func() (err error) {
		view.Dashboard, err = uc.repo.Dashboard(ctx, token, dr)
		return
	})
	g.Go(func() (err error) {
		view.VentasProducto, err = uc.repo.SalesByProduct(ctx, token, dr, page)
		return
	})
	g.Go(func() (err error) {
		view.VentasCategoria, err = uc.repo.SalesByCategory(ctx, token, dr, page)
		return
	})
	g.Go(func() (err error) {
		view.VentasCliente, err = uc.repo.SalesByCustomer(ctx, token, dr, page)
		return
	})
	g.Go(func() (err error) {
		view.ProductosTop, err = uc.repo.TopProducts(ctx, token, dr, page)
		return
	})
	g.Go(func() (err error) {
		view.StockBajo, err = uc.repo.LowStock(ctx, token, uc.stockMinimo, page)
		return
	})
	g.Go(func() (err error) {
		view.ClientesFrecuentes, err = uc.repo.FrequentCustomers(ctx, token, dr, page)
		return
	})
	g.Go(func() (err error) {
		view.ClientesTop, err = uc.repo.TopCustomers(ctx, token, dr, page)
		return
	})

	waitErr := g.Wait()
	ex := <-extrasCh
	if waitErr != nil {
		return nil, fmt.Errorf("reportes: %w", waitErr)
	}
	view.VentasPeriodo = ex.periodo
	view.MejorCompra = ex.mejorCompra
	view.Metricas = ex.metricas

	toast.Success(ctx, "Reportes cargados exitosamente")
	return view, nil
}

// Export pide al backend el archivo del reporte.
func (uc *ReportsUseCase) Export(ctx context.Context, actor auth.Actor, req dto.ExportRequest) (*entity.ExportFile, error) {
	if err := auth.Authorize(ctx, actor, permission.ExportReport); err != nil {
		return nil, err
	}
	tipo := strings.ToUpper(strings.TrimSpace(req.TipoReporte))
	formato := strings.ToUpper(strings.TrimSpace(req.Formato))
	if formato == "" {
		formato = "PDF"
	}
	var verr error
	switch {
	case tipo == "":
		verr = domain.Invalid("Selecciona el tipo de reporte")
	case !exportFormats[formato]:
		verr = domain.Invalid("Formato de exportación no soportado")
	}
	if verr != nil {
		toast.Error(ctx, verr.Error())
		return nil, verr
	}
	dr, err := uc.Range(req.FechaInicio, req.FechaFin)
	if err != nil {
		toast.Error(ctx, err.Error())
		return nil, err
	}

	toast.Info(ctx, fmt.Sprintf("Exportando %s...", strings.ToLower(tipo)))
	return uc.repo.Export(ctx, actor.Token(), entity.ExportFilter{
		TipoReporte: tipo,
		Formato:     formato,
		FechaInicio: dr.FechaInicio,
		FechaFin:    dr.FechaFin,
	})
}
