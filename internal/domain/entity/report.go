package entity

import "github.com/shopspring/decimal"

// DateRange rango de fechas de los reportes (formato ISO local del backend).
type DateRange struct {
	FechaInicio string `json:"fechaInicio"`
	FechaFin    string `json:"fechaFin"`
}

// DashboardReport resumen agregado de /v1/reportes/dashboard.
type DashboardReport struct {
	TotalVentas        decimal.Decimal `json:"totalVentas"`
	TotalPedidos       int64           `json:"totalPedidos"`
	TicketPromedio     decimal.Decimal `json:"ticketPromedio"`
	TotalClientes      int64           `json:"totalClientes"`
	TotalProductos     int64           `json:"totalProductos"`
	ProductosStockBajo int64           `json:"productosStockBajo"`
	PedidosPendientes  int64           `json:"pedidosPendientes"`
}

// SalesByPeriod ventas agregadas por fecha.
type SalesByPeriod struct {
	Periodo       string          `json:"periodo"`
	TotalVentas   decimal.Decimal `json:"totalVentas"`
	CantidadVenta int64           `json:"cantidadPedidos"`
}

// SalesByProduct ventas de un producto en el rango.
type SalesByProduct struct {
	ProductoID     int64           `json:"productoId"`
	NombreProducto string          `json:"nombreProducto"`
	CantidadVenta  int64           `json:"cantidadVendida"`
	TotalVendido   decimal.Decimal `json:"totalVendido"`
}

// SalesByCategory ventas agregadas por categoría.
type SalesByCategory struct {
	CategoriaID     int64           `json:"categoriaId"`
	NombreCategoria string          `json:"nombreCategoria"`
	CantidadVenta   int64           `json:"cantidadVendida"`
	TotalVendido    decimal.Decimal `json:"totalVendido"`
}

// SalesByCustomer compras agregadas por cliente (también frecuentes/top/mejor compra).
type SalesByCustomer struct {
	ClienteID     int64           `json:"clienteId"`
	NombreCliente string          `json:"nombreCliente"`
	DNI           string          `json:"dni,omitempty"`
	TotalPedidos  int64           `json:"totalPedidos"`
	TotalComprado decimal.Decimal `json:"totalComprado"`
}

// LowStockProduct producto bajo el umbral de stock.
type LowStockProduct struct {
	ProductoID     int64  `json:"productoId"`
	NombreProducto string `json:"nombreProducto"`
	Stock          int    `json:"stock"`
	Categoria      string `json:"categoria,omitempty"`
}

// QuickMetrics /v1/reportes/metricas/rapidas.
type QuickMetrics struct {
	VentasHoy        decimal.Decimal `json:"ventasHoy"`
	PedidosHoy       int64           `json:"pedidosHoy"`
	VentasPeriodo    decimal.Decimal `json:"ventasPeriodo"`
	PedidosPeriodo   int64           `json:"pedidosPeriodo"`
	ClientesNuevos   int64           `json:"clientesNuevos"`
	ProductoEstrella string          `json:"productoEstrella,omitempty"`
}

// ReceiptFilter búsqueda de boletas por DNI/estado/fechas.
type ReceiptFilter struct {
	DNI         string
	Estado      OrderStatus
	FechaInicio string
	FechaFin    string
}

// Empty indica que no hay ningún criterio de búsqueda.
func (f ReceiptFilter) Empty() bool {
	return f.DNI == "" && f.FechaInicio == "" && f.FechaFin == ""
}

// ExportFilter cuerpo de POST /v1/reportes/exportar.
type ExportFilter struct {
	TipoReporte string `json:"tipoReporte"`
	Formato     string `json:"formato"`
	FechaInicio string `json:"fechaInicio"`
	FechaFin    string `json:"fechaFin"`
}

// ExportFile archivo devuelto por el backend al exportar un reporte.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}
