package handlers

import (
	"gestionmax.fr/hub/pkg/queryparams"
	"gestionmax.fr/hub/services"

	"github.com/gofiber/fiber/v2"
)

// CompetenceHandler API des compétences formateurs.
type CompetenceHandler struct {
	service services.ICompetenceService
}

func NewCompetenceHandler(service services.ICompetenceService) *CompetenceHandler {
	return &CompetenceHandler{service: service}
}

// List GET /api/competences?page=&perPage=&sortBy=&orderBy=&q=&statut=
func (h *CompetenceHandler) List(c *fiber.Ctx) error {
	params := queryparams.DefaultListParams("created_at")
	if err := c.QueryParser(&params); err != nil {
		return badRequest(c, "paramètres de liste invalides")
	}
	result, err := h.service.ListCompetences(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *CompetenceHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant invalide")
	}
	item, err := h.service.GetCompetenceByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func (h *CompetenceHandler) Create(c *fiber.Ctx) error {
	var input services.CompetenceInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "corps de requête invalide")
	}
	item, err := h.service.CreateCompetence(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *CompetenceHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant invalide")
	}
	var input services.CompetenceInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "corps de requête invalide")
	}
	item, err := h.service.UpdateCompetence(c.UserContext(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func (h *CompetenceHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant invalide")
	}
	if err := h.service.DeleteCompetence(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "id": id})
}
