package handlers

import (
	"gestionmax.fr/hub/pkg/queryparams"
	"gestionmax.fr/hub/services"

	"github.com/gofiber/fiber/v2"
)

// ActionCorrectiveHandler API des actions correctives.
type ActionCorrectiveHandler struct {
	service services.IActionCorrectiveService
}

func NewActionCorrectiveHandler(service services.IActionCorrectiveService) *ActionCorrectiveHandler {
	return &ActionCorrectiveHandler{service: service}
}

// List GET /api/actions-correctives?page=&perPage=&sortBy=&orderBy=&q=&statut=
func (h *ActionCorrectiveHandler) List(c *fiber.Ctx) error {
	params := queryparams.DefaultListParams("created_at")
	if err := c.QueryParser(&params); err != nil {
		return badRequest(c, "paramètres de liste invalides")
	}
	result, err := h.service.ListActions(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *ActionCorrectiveHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant invalide")
	}
	item, err := h.service.GetActionByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func (h *ActionCorrectiveHandler) Create(c *fiber.Ctx) error {
	var input services.ActionCorrectiveInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "corps de requête invalide")
	}
	item, err := h.service.CreateAction(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *ActionCorrectiveHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant invalide")
	}
	var input services.ActionCorrectiveInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "corps de requête invalide")
	}
	item, err := h.service.UpdateAction(c.UserContext(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func (h *ActionCorrectiveHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant invalide")
	}
	if err := h.service.DeleteAction(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "id": id})
}
