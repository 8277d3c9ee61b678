package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/usecase"
)

// BranchHandler maneja las peticiones HTTP de sucursales.
type BranchHandler struct {
	uc *usecase.BranchUseCase
}

// NewBranchHandler construye el handler.
func NewBranchHandler(uc *usecase.BranchUseCase) *BranchHandler {
	return &BranchHandler{uc: uc}
}

// Create POST /api/branches
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.Create(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusCreated, out, err)
}

// Update PUT /api/branches/:id
func (h *BranchHandler) Update(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.Update(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// GetByID GET /api/branches/:id
func (h *BranchHandler) GetByID(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.Get(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// List GET /api/branches?limit=20&offset=0
func (h *BranchHandler) List(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.List(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// Delete DELETE /api/branches/:id
func (h *BranchHandler) Delete(c *fiber.Ctx) error {
	raw := input(c)
	if err := h.uc.Delete(c.Context(), GetActor(c), raw); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
