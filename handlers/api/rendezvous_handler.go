package handlers

import (
	"gestionmax.fr/hub/pkg/queryparams"
	"gestionmax.fr/hub/services"

	"github.com/gofiber/fiber/v2"
)

// RendezvousHandler API des rendez-vous.
type RendezvousHandler struct {
	service services.IRendezvousService
}

func NewRendezvousHandler(service services.IRendezvousService) *RendezvousHandler {
	return &RendezvousHandler{service: service}
}

// List GET /api/rendezvous?page=&perPage=&sortBy=&orderBy=&q=&statut=
func (h *RendezvousHandler) List(c *fiber.Ctx) error {
	params := queryparams.DefaultListParams("date_rdv")
	if err := c.QueryParser(&params); err != nil {
		return badRequest(c, "paramètres de liste invalides")
	}
	result, err := h.service.ListRendezvous(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *RendezvousHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant invalide")
	}
	item, err := h.service.GetRendezvousByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func (h *RendezvousHandler) Create(c *fiber.Ctx) error {
	var input services.RendezvousInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "corps de requête invalide")
	}
	item, err := h.service.CreateRendezvous(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *RendezvousHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant invalide")
	}
	var input services.RendezvousInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "corps de requête invalide")
	}
	item, err := h.service.UpdateRendezvous(c.UserContext(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func (h *RendezvousHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant invalide")
	}
	if err := h.service.DeleteRendezvous(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "id": id})
}
