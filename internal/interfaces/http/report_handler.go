package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/analytics"
)

// ReportHandler expone los reportes de negocio y el resumen del dashboard.
//
// Query común: start_date, end_date (RFC3339 o YYYY-MM-DD), period (day|week|month),
// branch_id (solo OWNER). Fechas ilegibles → rango por defecto con range.invalid=true.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Get GET /api/reports
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.GetReports(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// Sales GET /api/reports/sales
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.GetDetailedSales(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// Customers GET /api/reports/customers
func (h *ReportHandler) Customers(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.GetCustomerReport(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// Products GET /api/reports/products
func (h *ReportHandler) Products(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.GetProductReport(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// Dashboard GET /api/reports/dashboard
//
// Respuesta: DashboardSummaryDTO (today_sales, today_orders, monthly_sales,
// monthly_orders, top_products[5], date_label). Las fechas las calcula el servidor.
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.Context(), GetActor(c))
	return respond(c, fiber.StatusOK, out, err)
}
