package repository

import (
	"context"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
)

// ReportRepository puerto de solo lectura hacia /v1/reportes/*.
type ReportRepository interface {
	Dashboard(ctx context.Context, token string, r entity.DateRange) (*entity.DashboardReport, error)
	SalesByPeriod(ctx context.Context, token string, r entity.DateRange) ([]entity.SalesByPeriod, error)
	SalesByProduct(ctx context.Context, token string, r entity.DateRange, page entity.PageRequest) (*entity.Page[entity.SalesByProduct], error)
	SalesByCategory(ctx context.Context, token string, r entity.DateRange, page entity.PageRequest) (*entity.Page[entity.SalesByCategory], error)
	SalesByCustomer(ctx context.Context, token string, r entity.DateRange, page entity.PageRequest) (*entity.Page[entity.SalesByCustomer], error)
	TopProducts(ctx context.Context, token string, r entity.DateRange, page entity.PageRequest) (*entity.Page[entity.SalesByProduct], error)
	LowStock(ctx context.Context, token string, stockMinimo int, page entity.PageRequest) (*entity.Page[entity.LowStockProduct], error)
	FrequentCustomers(ctx context.Context, token string, r entity.DateRange, page entity.PageRequest) (*entity.Page[entity.SalesByCustomer], error)
	BestPurchaseCustomers(ctx context.Context, token string, r entity.DateRange, page entity.PageRequest) (*entity.Page[entity.SalesByCustomer], error)
	TopCustomers(ctx context.Context, token string, r entity.DateRange, page entity.PageRequest) (*entity.Page[entity.SalesByCustomer], error)
	SearchReceipts(ctx context.Context, token string, f entity.ReceiptFilter, page entity.PageRequest) (*entity.Page[entity.Order], error)
	QuickMetrics(ctx context.Context, token string, r entity.DateRange) (*entity.QuickMetrics, error)
	Export(ctx context.Context, token string, f entity.ExportFilter) (*entity.ExportFile, error)
}
