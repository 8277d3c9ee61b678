package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP de productos y ajustes de stock.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.Create(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusCreated, out, err)
}

// Update PUT /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.Update(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// GetByID GET /api/products/:id
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.Get(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// List GET /api/products?limit=20&offset=0
func (h *ProductHandler) List(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.List(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// Delete DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	raw := input(c)
	if err := h.uc.Delete(c.Context(), GetActor(c), raw); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdjustStock POST /api/products/:id/stock
//
// Body: {"delta": -2, "reason": "venta mostrador"}. Delta negativo = salida.
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	raw := input(c)
	raw["product_id"] = c.Params("id")
	out, err := h.uc.AdjustStock(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusCreated, out, err)
}

// Movements GET /api/products/:id/movements
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.Movements(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}
