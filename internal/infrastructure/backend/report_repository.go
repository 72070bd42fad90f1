package backend

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepository)(nil)

const reportsPath = "/v1/reportes"

// ReportRepository endpoints agregados /v1/reportes/*.
type ReportRepository struct {
	c *Client
}

// NewReportRepository construye el repositorio.
func NewReportRepository(c *Client) *ReportRepository {
	return &ReportRepository{c: c}
}

func rangeQuery(r entity.DateRange) url.Values {
	q := url.Values{}
	q.Set("fechaInicio", r.FechaInicio)
	q.Set("fechaFin", r.FechaFin)
	return q
}

func rangePageQuery(r entity.DateRange, page entity.PageRequest) url.Values {
	page.DefaultPage()
	q := rangeQuery(r)
	q.Set("page", strconv.Itoa(page.Page))
	q.Set("size", strconv.Itoa(page.Size))
	return q
}

// fetchPage GET paginado genérico de reportes.
func fetchPage[W any, T any](ctx context.Context, c *Client, path, token string, q url.Values, conv func(W) (T, error)) (*entity.Page[T], error) {
	body, err := c.getJSON(ctx, call{method: http.MethodGet, path: path, query: q, token: token})
	if err != nil {
		return nil, err
	}
	out, err := decodePage(body, conv)
	if err != nil {
		return nil, c.decodeFailure(ctx, path, err)
	}
	return out, nil
}

// fetchOne GET de un objeto de reporte.
func fetchOne[T any](ctx context.Context, c *Client, path, token string, q url.Values) (*T, error) {
	body, err := c.getJSON(ctx, call{method: http.MethodGet, path: path, query: q, token: token})
	if err != nil {
		return nil, err
	}
	if !present(body) {
		return new(T), nil
	}
	out, err := decodeOne(body, identity[T])
	if err != nil {
		return nil, c.decodeFailure(ctx, path, err)
	}
	return &out, nil
}

// Dashboard GET /v1/reportes/dashboard.
func (r *ReportRepository) Dashboard(ctx context.Context, token string, dr entity.DateRange) (*entity.DashboardReport, error) {
	return fetchOne[entity.DashboardReport](ctx, r.c, reportsPath+"/dashboard", token, rangeQuery(dr))
}

// SalesByPeriod GET /v1/reportes/ventas/periodo.
func (r *ReportRepository) SalesByPeriod(ctx context.Context, token string, dr entity.DateRange) ([]entity.SalesByPeriod, error) {
	page, err := fetchPage(ctx, r.c, reportsPath+"/ventas/periodo", token, rangeQuery(dr), identity[entity.SalesByPeriod])
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// SalesByProduct GET /v1/reportes/ventas/producto ordenado por totalVendido DESC.
func (r *ReportRepository) SalesByProduct(ctx context.Context, token string, dr entity.DateRange, page entity.PageRequest) (*entity.Page[entity.SalesByProduct], error) {
	q := rangePageQuery(dr, page)
	q.Set("sortBy", "totalVendido")
	q.Set("sortDirection", "DESC")
	return fetchPage(ctx, r.c, reportsPath+"/ventas/producto", token, q, identity[entity.SalesByProduct])
}

// SalesByCategory GET /v1/reportes/ventas/categoria.
func (r *ReportRepository) SalesByCategory(ctx context.Context, token string, dr entity.DateRange, page entity.PageRequest) (*entity.Page[entity.SalesByCategory], error) {
	return fetchPage(ctx, r.c, reportsPath+"/ventas/categoria", token, rangePageQuery(dr, page), identity[entity.SalesByCategory])
}

// SalesByCustomer GET /v1/reportes/ventas/cliente.
func (r *ReportRepository) SalesByCustomer(ctx context.Context, token string, dr entity.DateRange, page entity.PageRequest) (*entity.Page[entity.SalesByCustomer], error) {
	return fetchPage(ctx, r.c, reportsPath+"/ventas/cliente", token, rangePageQuery(dr, page), identity[entity.SalesByCustomer])
}

// TopProducts GET /v1/reportes/productos/mas-vendidos.
func (r *ReportRepository) TopProducts(ctx context.Context, token string, dr entity.DateRange, page entity.PageRequest) (*entity.Page[entity.SalesByProduct], error) {
	return fetchPage(ctx, r.c, reportsPath+"/productos/mas-vendidos", token, rangePageQuery(dr, page), identity[entity.SalesByProduct])
}

// LowStock GET /v1/reportes/productos/stock-bajo?stockMinimo=.
func (r *ReportRepository) LowStock(ctx context.Context, token string, stockMinimo int, page entity.PageRequest) (*entity.Page[entity.LowStockProduct], error) {
	page.DefaultPage()
	q := pageQuery(page.Page, page.Size)
	q.Set("stockMinimo", strconv.Itoa(stockMinimo))
	return fetchPage(ctx, r.c, reportsPath+"/productos/stock-bajo", token, q, identity[entity.LowStockProduct])
}

// FrequentCustomers GET /v1/reportes/clientes/frecuentes.
func (r *ReportRepository) FrequentCustomers(ctx context.Context, token string, dr entity.DateRange, page entity.PageRequest) (*entity.Page[entity.SalesByCustomer], error) {
	return fetchPage(ctx, r.c, reportsPath+"/clientes/frecuentes", token, rangePageQuery(dr, page), identity[entity.SalesByCustomer])
}

// BestPurchaseCustomers GET /v1/reportes/clientes/mejor-compra.
func (r *ReportRepository) BestPurchaseCustomers(ctx context.Context, token string, dr entity.DateRange, page entity.PageRequest) (*entity.Page[entity.SalesByCustomer], error) {
	return fetchPage(ctx, r.c, reportsPath+"/clientes/mejor-compra", token, rangePageQuery(dr, page), identity[entity.SalesByCustomer])
}

// TopCustomers GET /v1/reportes/clientes/top.
func (r *ReportRepository) TopCustomers(ctx context.Context, token string, dr entity.DateRange, page entity.PageRequest) (*entity.Page[entity.SalesByCustomer], error) {
	return fetchPage(ctx, r.c, reportsPath+"/clientes/top", token, rangePageQuery(dr, page), identity[entity.SalesByCustomer])
}

// SearchReceipts GET /v1/reportes/boleta?dni=&estado=&fechaInicio=&fechaFin=.
// Solo se envían los criterios presentes.
func (r *ReportRepository) SearchReceipts(ctx context.Context, token string, f entity.ReceiptFilter, page entity.PageRequest) (*entity.Page[entity.Order], error) {
	page.DefaultPage()
	q := pageQuery(page.Page, page.Size)
	if f.DNI != "" {
		q.Set("dni", f.DNI)
	}
	if f.Estado != "" {
		q.Set("estado", string(f.Estado))
	}
	if f.FechaInicio != "" {
		q.Set("fechaInicio", f.FechaInicio)
	}
	if f.FechaFin != "" {
		q.Set("fechaFin", f.FechaFin)
	}
	return fetchPage(ctx, r.c, reportsPath+"/boleta", token, q, toOrder)
}

// QuickMetrics GET /v1/reportes/metricas/rapidas.
func (r *ReportRepository) QuickMetrics(ctx context.Context, token string, dr entity.DateRange) (*entity.QuickMetrics, error) {
	return fetchOne[entity.QuickMetrics](ctx, r.c, reportsPath+"/metricas/rapidas", token, rangeQuery(dr))
}

// Export POST /v1/reportes/exportar. Devuelve el archivo tal cual lo entrega el backend.
func (r *ReportRepository) Export(ctx context.Context, token string, f entity.ExportFilter) (*entity.ExportFile, error) {
	resp, err := r.c.do(ctx, call{method: http.MethodPost, path: reportsPath + "/exportar", token: token, body: f})
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("reporte_%s.%s", f.TipoReporte, exportExtension(f.Formato))
	if _, params, err := mime.ParseMediaType(resp.disposition); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	ct := resp.contentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &entity.ExportFile{FileName: name, ContentType: ct, Data: resp.body}, nil
}

func exportExtension(formato string) string {
	switch formato {
	case "EXCEL", "excel", "xlsx":
		return "xlsx"
	case "CSV", "csv":
		return "csv"
	case "JSON", "json":
		return "json"
	default:
		return "pdf"
	}
}
