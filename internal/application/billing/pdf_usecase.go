package billing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/authz"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// PDFUseCase genera la representación en PDF de una factura.
type PDFUseCase struct {
	repos     repository.Repos
	generator InvoicePDFGenerator
	log       zerolog.Logger
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(repos repository.Repos, generator InvoicePDFGenerator, log zerolog.Logger) *PDFUseCase {
	return &PDFUseCase{repos: repos, generator: generator, log: log}
}

// DownloadInvoicePDF recupera la factura con su sucursal, cliente y nombres de
// producto y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)     si todo sale bien.
//   - domain.ErrInvoiceNotFound     si la factura no existe o es de otra sucursal.
//   - domain.ErrValidation          si los ítems almacenados son ilegibles.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, actor authz.Actor, raw map[string]any) (pdfBytes []byte, filename string, err error) {
	if err := actor.Can(authz.InvoiceRead, nil).Err(); err != nil {
		return nil, "", err
	}
	id, err := validation.ID(raw)
	if err != nil {
		return nil, "", err
	}

	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	inv, err := loadInvoice(ctx, uc.repos.Invoices.GetByID, actor, id)
	if err != nil {
		return nil, "", err
	}
	if inv.ItemsUnreadable {
		return nil, "", domain.ErrValidation.WithMessage("la factura %s tiene ítems ilegibles", inv.ID)
	}

	// ── 2. Cargar sucursal ────────────────────────────────────────────────────
	branch, err := uc.repos.Branches.GetByID(ctx, inv.BranchID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener sucursal: %w", err)
	}
	if branch == nil {
		return nil, "", domain.ErrBranchNotFound
	}

	// ── 3. Cargar cliente (puede estar eliminado) ─────────────────────────────
	var customer *entity.Customer
	if inv.CustomerID != "" {
		found, err := uc.repos.Customers.ListByIDs(ctx, []string{inv.CustomerID})
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
		}
		if len(found) > 0 {
			customer = found[0]
		}
	}

	// ── 4. Enriquecer líneas con el nombre del producto ───────────────────────
	products, err := uc.repos.Products.ListByIDs(ctx, inv.Items.ProductIDs())
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener productos: %w", err)
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	lines := make([]InvoiceLine, 0, len(inv.Items))
	for _, it := range inv.Items {
		name, ok := names[it.ProductID]
		if !ok {
			name = "Producto " + it.ProductID
		}
		lines = append(lines, InvoiceLine{
			ProductName: name,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Subtotal:    it.Subtotal(),
		})
	}

	// ── 5. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, InvoiceDocument{
		Invoice:  inv,
		Branch:   branch,
		Customer: customer,
		Lines:    lines,
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	uc.log.Debug().Str("invoice_id", inv.ID).Int("bytes", len(pdfBytes)).Msg("pdf de factura generado")

	return pdfBytes, FileName(inv), nil
}

// FileName nombre del archivo descargable: factura_<tipo>_<8 primeros del id>.pdf
func FileName(inv *entity.Invoice) string {
	short := inv.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("factura_%s_%s.pdf", inv.Type, short)
}
