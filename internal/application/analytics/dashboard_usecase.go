// Package analytics contiene los casos de uso de reportes de negocio y el
// resumen del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/authz"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/report"
)

const dashboardTopProducts = 5 // productos en el widget del dashboard

// GetDashboard resumen de ventas pagadas de hoy y del mes en curso en la sucursal del actor.
//
// Dos lecturas en paralelo:
//  1. facturas de hoy  → TodaySales + TodayOrders
//  2. facturas del mes → MonthlySales + MonthlyOrders + TopProducts
func (uc *ReportUseCase) GetDashboard(ctx context.Context, actor authz.Actor) (*dto.DashboardSummaryDTO, error) {
	if err := actor.Can(authz.ReportRead, nil).Err(); err != nil {
		return nil, err
	}
	now := uc.now().In(uc.cfg.Location)

	// Hoy: 00:00:00 – ahora. Mes: día 1 a las 00:00 – ahora.
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var today, month []*entity.Invoice
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := uc.invoices.ListInRange(gctx, actor.BranchID, todayStart, now)
		if err != nil {
			return fmt.Errorf("dashboard: ventas de hoy: %w", err)
		}
		today = list
		return nil
	})
	g.Go(func() error {
		list, err := uc.invoices.ListInRange(gctx, actor.BranchID, monthStart, now)
		if err != nil {
			return fmt.Errorf("dashboard: ventas del mes: %w", err)
		}
		month = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	todaySum := report.DetailedSales(today, report.PeriodDay, uc.cfg.Location).Summary
	monthSum := report.DetailedSales(month, report.PeriodMonth, uc.cfg.Location).Summary
	pr, err := uc.byProduct(ctx, month)
	if err != nil {
		return nil, err
	}
	top := pr.Rows
	if len(top) > dashboardTopProducts {
		top = top[:dashboardTopProducts]
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:    todaySum.TotalRevenue.Round(2),
		TodayOrders:   todaySum.TransactionCount,
		MonthlySales:  monthSum.TotalRevenue.Round(2),
		MonthlyOrders: monthSum.TransactionCount,
		TopProducts:   toProductRows(top),
		DateLabel:     monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
