package handlers

import (
	"gestionmax.fr/hub/pkg/queryparams"
	"gestionmax.fr/hub/services"

	"github.com/gofiber/fiber/v2"
)

// ReclamationHandler API des réclamations.
type ReclamationHandler struct {
	service services.IReclamationService
}

func NewReclamationHandler(service services.IReclamationService) *ReclamationHandler {
	return &ReclamationHandler{service: service}
}

// List GET /api/reclamations?page=&perPage=&sortBy=&orderBy=&q=&statut=
func (h *ReclamationHandler) List(c *fiber.Ctx) error {
	params := queryparams.DefaultListParams("created_at")
	if err := c.QueryParser(&params); err != nil {
		return badRequest(c, "paramètres de liste invalides")
	}
	result, err := h.service.ListReclamations(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *ReclamationHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant invalide")
	}
	item, err := h.service.GetReclamationByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func (h *ReclamationHandler) Create(c *fiber.Ctx) error {
	var input services.ReclamationInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "corps de requête invalide")
	}
	item, err := h.service.CreateReclamation(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *ReclamationHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant invalide")
	}
	var input services.ReclamationInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "corps de requête invalide")
	}
	item, err := h.service.UpdateReclamation(c.UserContext(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func (h *ReclamationHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant invalide")
	}
	if err := h.service.DeleteReclamation(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "id": id})
}
