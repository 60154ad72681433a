package handlers

import (
	"gestionmax.fr/hub/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service services.ICategoryService
}

func NewCategoryHandler(service services.ICategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// ListCategories GET /api/categories-programme
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant de catégorie invalide")
	}
	category, err := h.service.GetCategoryByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// CreateCategory POST /api/categories-programme ; 409 si le code existe déjà.
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var input services.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "corps de requête invalide")
	}
	category, err := h.service.CreateCategory(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant de catégorie invalide")
	}
	var input services.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "corps de requête invalide")
	}
	category, err := h.service.UpdateCategory(c.UserContext(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}
