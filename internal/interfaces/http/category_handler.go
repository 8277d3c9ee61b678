package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/usecase"
)

type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create POST /api/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.Create(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusCreated, out, err)
}

// Update PUT /api/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.Update(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// GetByID GET /api/categories/:id
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.Get(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// List GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	raw := input(c)
	out, err := h.uc.List(c.Context(), GetActor(c), raw)
	return respond(c, fiber.StatusOK, out, err)
}

// Delete DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	raw := input(c)
	if err := h.uc.Delete(c.Context(), GetActor(c), raw); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
