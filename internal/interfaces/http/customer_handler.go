package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/usecase"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.Create(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusCreated, out, err)
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.Update(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.Get(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// List GET /api/customers?limit=20&offset=0
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.List(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// Delete DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	raw := input(c)
	if err := h.uc.Delete(c.Context(), GetActor(c), raw); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
