package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain/authz"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/report"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// ReportConfig zona horaria de los buckets y ventana por defecto.
type ReportConfig struct {
	Location    *time.Location
	DefaultDays int
}

// ReportUseCase reportes de ventas, compras, clientes y productos.
//
// Todas las variantes comparten el mismo flujo:
//  1. autorizar report:read (y report:cross_branch si se pide otra sucursal);
//  2. validar el período y normalizar el rango (fechas ilegibles → rango por defecto);
//  3. leer facturas y clientes del rango en paralelo;
//  4. agregar con el motor puro de internal/domain/report.
type ReportUseCase struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	cfg       ReportConfig
	now       func() time.Time
	log       zerolog.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repos repository.Repos, cfg ReportConfig, log zerolog.Logger) *ReportUseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.DefaultDays <= 0 {
		cfg.DefaultDays = report.DefaultRangeDays
	}
	return &ReportUseCase{
		invoices:  repos.Invoices,
		customers: repos.Customers,
		products:  repos.Products,
		cfg:       cfg,
		now:       time.Now,
		log:       log,
	}
}

// query parámetros ya resueltos de una solicitud de reporte.
type query struct {
	branchID string // vacío = todas las sucursales (solo OWNER)
	period   report.Period
	rng      report.Range
}

func (uc *ReportUseCase) resolve(actor authz.Actor, raw map[string]any) (query, error) {
	if err := actor.Can(authz.ReportRead, nil).Err(); err != nil {
		return query{}, err
	}
	in, err := validation.ReportQuery(raw)
	if err != nil {
		return query{}, err
	}
	q := query{branchID: actor.BranchID}
	if actor.Role == entity.RoleOwner {
		q.branchID = in.BranchID
	} else if in.BranchID != "" && in.BranchID != actor.BranchID {
		if err := actor.Can(authz.ReportCrossBranch, nil).Err(); err != nil {
			return query{}, err
		}
	}
	q.period, _ = report.ParsePeriod(in.Period)
	q.rng = report.NormalizeRange(in.StartDate, in.EndDate, uc.now(), uc.cfg.Location, uc.cfg.DefaultDays)
	if q.rng.Invalid {
		uc.log.Warn().
			Str("start_date", in.StartDate).
			Str("end_date", in.EndDate).
			Msg("rango de reporte inválido, se usa el rango por defecto")
	}
	return q, nil
}

// load lee en paralelo las facturas del rango y, si withCustomers, los clientes creados en él.
func (uc *ReportUseCase) load(ctx context.Context, q query, withCustomers bool) ([]*entity.Invoice, []*entity.Customer, error) {
	var invoices []*entity.Invoice
	var customers []*entity.Customer
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := uc.invoices.ListInRange(gctx, q.branchID, q.rng.Start, q.rng.End)
		if err != nil {
			return fmt.Errorf("reportes: facturas: %w", err)
		}
		invoices = list
		return nil
	})
	if withCustomers {
		g.Go(func() error {
			list, err := uc.customers.ListCreatedInRange(gctx, q.branchID, q.rng.Start, q.rng.End)
			if err != nil {
				return fmt.Errorf("reportes: clientes: %w", err)
			}
			customers = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return invoices, customers, nil
}

// GetReports serie temporal de ventas, compras y clientes por bucket.
func (uc *ReportUseCase) GetReports(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.ReportsResponse, error) {
	q, err := uc.resolve(actor, raw)
	if err != nil {
		return nil, err
	}
	invoices, customers, err := uc.load(ctx, q, true)
	if err != nil {
		return nil, err
	}
	rows := report.Aggregate(invoices, customers, q.period, uc.cfg.Location)
	out := make([]dto.ReportRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ReportRowDTO{
			Date:                r.Date,
			SaleCount:           r.SaleCount,
			PurchaseCount:       r.PurchaseCount,
			NewCustomerCount:    r.NewCustomerCount,
			SalesRevenue:        r.SalesRevenue.Round(2),
			PurchaseAmount:      r.PurchaseAmount.Round(2),
			ActiveCustomerCount: r.ActiveCustomerCount,
		})
	}
	return &dto.ReportsResponse{Period: string(q.period), Range: toRangeDTO(q.rng), Rows: out}, nil
}

// GetDetailedSales ventas pagadas por bucket con resumen del período.
func (uc *ReportUseCase) GetDetailedSales(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.SalesReportResponse, error) {
	q, err := uc.resolve(actor, raw)
	if err != nil {
		return nil, err
	}
	invoices, _, err := uc.load(ctx, q, false)
	if err != nil {
		return nil, err
	}
	sr := report.DetailedSales(invoices, q.period, uc.cfg.Location)
	rows := make([]dto.SalesRowDTO, 0, len(sr.Rows))
	for _, r := range sr.Rows {
		rows = append(rows, dto.SalesRowDTO{
			Date:              r.Date,
			Transactions:      r.Transactions,
			Revenue:           r.Revenue.Round(2),
			UnitsSold:         r.UnitsSold,
			AverageOrderValue: r.AverageOrderValue,
			UniqueCustomers:   r.UniqueCustomers,
		})
	}
	s := sr.Summary
	return &dto.SalesReportResponse{
		Period: string(q.period),
		Range:  toRangeDTO(q.rng),
		Rows:   rows,
		Summary: dto.SalesSummaryDTO{
			TotalRevenue:      s.TotalRevenue.Round(2),
			TransactionCount:  s.TransactionCount,
			UnitsSold:         s.UnitsSold,
			AverageOrderValue: s.AverageOrderValue,
			UniqueCustomers:   s.UniqueCustomers,
			RepeatCustomers:   s.RepeatCustomers,
		},
	}, nil
}

// GetCustomerReport ventas pagadas agrupadas por cliente.
func (uc *ReportUseCase) GetCustomerReport(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.CustomerReportResponse, error) {
	q, err := uc.resolve(actor, raw)
	if err != nil {
		return nil, err
	}
	invoices, newCustomers, err := uc.load(ctx, q, true)
	if err != nil {
		return nil, err
	}
	directory, err := uc.customers.ListByIDs(ctx, customerIDs(invoices))
	if err != nil {
		return nil, fmt.Errorf("reportes: directorio de clientes: %w", err)
	}
	cr := report.ByCustomer(invoices, directory, newCustomers)
	rows := make([]dto.CustomerReportRowDTO, 0, len(cr.Rows))
	for _, r := range cr.Rows {
		rows = append(rows, dto.CustomerReportRowDTO{
			CustomerID:        r.CustomerID,
			Name:              r.Name,
			Email:             r.Email,
			Orders:            r.Orders,
			Revenue:           r.Revenue.Round(2),
			AverageOrderValue: r.AverageOrderValue,
			FirstOrderAt:      r.FirstOrderAt,
			LastOrderAt:       r.LastOrderAt,
		})
	}
	s := cr.Summary
	return &dto.CustomerReportResponse{
		Range: toRangeDTO(q.rng),
		Rows:  rows,
		Summary: dto.CustomerReportSummaryDTO{
			TotalCustomers:    s.TotalCustomers,
			NewCustomers:      s.NewCustomers,
			RepeatCustomers:   s.RepeatCustomers,
			TotalOrders:       s.TotalOrders,
			TotalRevenue:      s.TotalRevenue.Round(2),
			AverageOrderValue: s.AverageOrderValue,
		},
	}, nil
}

// GetProductReport ventas pagadas desglosadas por producto.
func (uc *ReportUseCase) GetProductReport(ctx context.Context, actor authz.Actor, raw map[string]any) (*dto.ProductReportResponse, error) {
	q, err := uc.resolve(actor, raw)
	if err != nil {
		return nil, err
	}
	invoices, _, err := uc.load(ctx, q, false)
	if err != nil {
		return nil, err
	}
	pr, err := uc.byProduct(ctx, invoices)
	if err != nil {
		return nil, err
	}
	return &dto.ProductReportResponse{
		Range:   toRangeDTO(q.rng),
		Rows:    toProductRows(pr.Rows),
		Summary: toProductSummary(pr.Summary),
	}, nil
}

func (uc *ReportUseCase) byProduct(ctx context.Context, invoices []*entity.Invoice) (report.ProductReport, error) {
	products, err := uc.products.ListByIDs(ctx, productIDs(invoices))
	if err != nil {
		return report.ProductReport{}, fmt.Errorf("reportes: productos: %w", err)
	}
	pr := report.ByProduct(invoices, products)
	if pr.Summary.UnreadableInvoices > 0 {
		uc.log.Warn().Int64("invoices", pr.Summary.UnreadableInvoices).Msg("facturas con ítems ilegibles excluidas del reporte por producto")
	}
	return pr, nil
}

func toRangeDTO(r report.Range) dto.RangeDTO {
	return dto.RangeDTO{Start: r.Start, End: r.End, Invalid: r.Invalid}
}

func toProductRows(rows []report.ProductRow) []dto.ProductReportRowDTO {
	out := make([]dto.ProductReportRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductReportRowDTO{
			ProductID:    r.ProductID,
			Name:         r.Name,
			UnitsSold:    r.UnitsSold,
			Revenue:      r.Revenue.Round(2),
			Orders:       r.Orders,
			AveragePrice: r.AveragePrice,
		})
	}
	return out
}

func toProductSummary(s report.ProductSummary) dto.ProductReportSummaryDTO {
	return dto.ProductReportSummaryDTO{
		ProductsSold:       s.ProductsSold,
		TotalUnits:         s.TotalUnits,
		TotalRevenue:       s.TotalRevenue.Round(2),
		TotalOrders:        s.TotalOrders,
		AverageOrderValue:  s.AverageOrderValue,
		UnreadableInvoices: s.UnreadableInvoices,
	}
}

func customerIDs(invoices []*entity.Invoice) []string {
	seen := map[string]struct{}{}
	ids := []string{}
	for _, inv := range invoices {
		if inv.CustomerID == "" {
			continue
		}
		if _, ok := seen[inv.CustomerID]; !ok {
			seen[inv.CustomerID] = struct{}{}
			ids = append(ids, inv.CustomerID)
		}
	}
	return ids
}

func productIDs(invoices []*entity.Invoice) []string {
	seen := map[string]struct{}{}
	ids := []string{}
	for _, inv := range invoices {
		for _, id := range inv.Items.ProductIDs() {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	return ids
}
