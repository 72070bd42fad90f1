package dto

import (
	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/permission"
)

// DashboardView tarjetas de conteo del inicio.
type DashboardView struct {
	Usuario            *entity.User               `json:"usuario"`
	TotalProductos     int64                      `json:"totalProductos"`
	TotalCategorias    int64                      `json:"totalCategorias"`
	TotalClientes      int64                      `json:"totalClientes"`
	ProductosStockBajo int64                      `json:"productosStockBajo"`
	Acciones           map[permission.Action]bool `json:"acciones"`
}

// ReportsQuery rango opcional de GET /reports (fechas YYYY-MM-DD).
type ReportsQuery struct {
	FechaInicio string `query:"fechaInicio"`
	FechaFin    string `query:"fechaFin"`
}

// ReportsView las ocho secciones de reportes (todo o nada) más VentasPeriodo,
// MejorCompra y Metricas, que se cargan aparte y pueden faltar.
type ReportsView struct {
	Rango              entity.DateRange                     `json:"rango"`
	Dashboard          *entity.DashboardReport              `json:"dashboard"`
	VentasPeriodo      []entity.SalesByPeriod               `json:"ventasPeriodo"`
	VentasProducto     *entity.Page[entity.SalesByProduct]  `json:"ventasProducto"`
	VentasCategoria    *entity.Page[entity.SalesByCategory] `json:"ventasCategoria"`
	VentasCliente      *entity.Page[entity.SalesByCustomer] `json:"ventasCliente"`
	ProductosTop       *entity.Page[entity.SalesByProduct]  `json:"productosTop"`
	StockBajo          *entity.Page[entity.LowStockProduct] `json:"stockBajo"`
	ClientesFrecuentes *entity.Page[entity.SalesByCustomer] `json:"clientesFrecuentes"`
	ClientesTop        *entity.Page[entity.SalesByCustomer] `json:"clientesTop"`
	MejorCompra        *entity.Page[entity.SalesByCustomer] `json:"mejorCompra,omitempty"`
	Metricas           *entity.QuickMetrics                 `json:"metricas,omitempty"`
	Acciones           map[permission.Action]bool           `json:"acciones"`
}

// ExportRequest POST /reports/export.
type ExportRequest struct {
	TipoReporte string `json:"tipoReporte"`
	Formato     string `json:"formato"`
	FechaInicio string `json:"fechaInicio"`
	FechaFin    string `json:"fechaFin"`
}
