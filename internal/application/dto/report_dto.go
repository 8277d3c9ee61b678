package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// ReportQuery parámetros de GET /api/reports*.
// BranchID solo lo puede usar OWNER; vacío = sucursal propia (OWNER: todas).
type ReportQuery struct {
	StartDate string `query:"start_date"` // RFC3339 o YYYY-MM-DD; por defecto hace 30 días
	EndDate   string `query:"end_date"`   // RFC3339 o YYYY-MM-DD; por defecto ahora
	Period    string `query:"period" validate:"omitempty,oneof=day week month"`
	BranchID  string `query:"branch_id" validate:"omitempty,uuid"`
}

// RangeDTO rango efectivamente usado. invalid=true si se reemplazaron fechas ilegibles.
type RangeDTO struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Invalid bool      `json:"invalid,omitempty"`
}

// ── Serie temporal ────────────────────────────────────────────────────────────

// ReportRowDTO fila por bucket.
type ReportRowDTO struct {
	Date                string          `json:"date"`
	SaleCount           int64           `json:"sale_count"`
	PurchaseCount       int64           `json:"purchase_count"`
	NewCustomerCount    int64           `json:"new_customer_count"`
	SalesRevenue        decimal.Decimal `json:"sales_revenue"`
	PurchaseAmount      decimal.Decimal `json:"purchase_amount"`
	ActiveCustomerCount int64           `json:"active_customer_count"`
}

// ReportsResponse respuesta de GET /api/reports.
type ReportsResponse struct {
	Period string         `json:"period"`
	Range  RangeDTO       `json:"range"`
	Rows   []ReportRowDTO `json:"rows"`
}

// ── Ventas detalladas ─────────────────────────────────────────────────────────

// SalesRowDTO ventas pagadas por bucket.
type SalesRowDTO struct {
	Date              string          `json:"date"`
	Transactions      int64           `json:"transactions"`
	Revenue           decimal.Decimal `json:"revenue"`
	UnitsSold         int64           `json:"units_sold"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	UniqueCustomers   int64           `json:"unique_customers"`
}

// SalesSummaryDTO totales del período.
type SalesSummaryDTO struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TransactionCount  int64           `json:"transaction_count"`
	UnitsSold         int64           `json:"units_sold"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	UniqueCustomers   int64           `json:"unique_customers"`
	RepeatCustomers   int64           `json:"repeat_customers"`
}

// SalesReportResponse respuesta de GET /api/reports/sales.
type SalesReportResponse struct {
	Period  string          `json:"period"`
	Range   RangeDTO        `json:"range"`
	Rows    []SalesRowDTO   `json:"rows"`
	Summary SalesSummaryDTO `json:"summary"`
}

// ── Por cliente ───────────────────────────────────────────────────────────────

// CustomerReportRowDTO métricas por cliente.
type CustomerReportRowDTO struct {
	CustomerID        string          `json:"customer_id"`
	Name              string          `json:"name,omitempty"`
	Email             string          `json:"email,omitempty"`
	Orders            int64           `json:"orders"`
	Revenue           decimal.Decimal `json:"revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	FirstOrderAt      time.Time       `json:"first_order_at"`
	LastOrderAt       time.Time       `json:"last_order_at"`
}

// CustomerReportSummaryDTO totales por cliente.
type CustomerReportSummaryDTO struct {
	TotalCustomers    int64           `json:"total_customers"`
	NewCustomers      int64           `json:"new_customers"`
	RepeatCustomers   int64           `json:"repeat_customers"`
	TotalOrders       int64           `json:"total_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// CustomerReportResponse respuesta de GET /api/reports/customers.
type CustomerReportResponse struct {
	Range   RangeDTO                 `json:"range"`
	Rows    []CustomerReportRowDTO   `json:"rows"`
	Summary CustomerReportSummaryDTO `json:"summary"`
}

// ── Por producto ──────────────────────────────────────────────────────────────

// ProductReportRowDTO ventas por producto.
type ProductReportRowDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name,omitempty"`
	UnitsSold    int64           `json:"units_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Orders       int64           `json:"orders"`
	AveragePrice decimal.Decimal `json:"average_price"`
}

// ProductReportSummaryDTO totales por producto.
type ProductReportSummaryDTO struct {
	ProductsSold       int64           `json:"products_sold"`
	TotalUnits         int64           `json:"total_units"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalOrders        int64           `json:"total_orders"`
	AverageOrderValue  decimal.Decimal `json:"average_order_value"`
	UnreadableInvoices int64           `json:"unreadable_invoices,omitempty"`
}

// ProductReportResponse respuesta de GET /api/reports/products.
type ProductReportResponse struct {
	Range   RangeDTO                `json:"range"`
	Rows    []ProductReportRowDTO   `json:"rows"`
	Summary ProductReportSummaryDTO `json:"summary"`
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

// DashboardSummaryDTO resumen del día y del mes en curso.
type DashboardSummaryDTO struct {
	TodaySales    decimal.Decimal       `json:"today_sales"`
	TodayOrders   int64                 `json:"today_orders"`
	MonthlySales  decimal.Decimal       `json:"monthly_sales"`
	MonthlyOrders int64                 `json:"monthly_orders"`
	TopProducts   []ProductReportRowDTO `json:"top_products"`
	DateLabel     string                `json:"date_label"` // ej: "Febrero 2026"
}
