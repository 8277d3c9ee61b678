package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/billing"
)

// InvoiceHandler maneja las peticiones HTTP de facturas.
type InvoiceHandler struct {
	uc  *billing.InvoiceUseCase
	pdf *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// Create POST /api/invoices
//
// Body: {"customer_id", "type": "sale|purchase", "status"?, "staff_id"?,
// "items": [{"product_id", "quantity"}], "expires_at"?}. El precio sale del producto.
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.Create(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusCreated, out, err)
}

// Update PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.Update(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// Delete DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	raw := input(c)
	if err := h.uc.Delete(c.Context(), GetActor(c), raw); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List GET /api/invoices?status=&type=&limit=&offset=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.GetAll(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// GetByID GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.Get(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// DownloadPDF GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	raw := input(c)
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.Context(), GetActor(c), raw)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
