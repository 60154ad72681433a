package handlers

import (
	"strings"

	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/models"
	"gestionmax.fr/hub/pkg/metrics"
	"gestionmax.fr/hub/repositories"
	"gestionmax.fr/hub/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProgramHandler API des programmes de formation.
type ProgramHandler struct {
	service         services.IProgramService
	metrics         *metrics.Metrics
	fallbackEnabled bool
}

func NewProgramHandler(service services.IProgramService, m *metrics.Metrics, fallbackEnabled bool) *ProgramHandler {
	return &ProgramHandler{service: service, metrics: m, fallbackEnabled: fallbackEnabled}
}

// ListPrograms GET /api/programmes-formation?categorieId=&actif=&visible=&q=&type=
// visible vaut true par défaut ; visible=all (ou tous) désactive le filtre.
func (h *ProgramHandler) ListPrograms(c *fiber.Ctx) error {
	filter, msg := parseProgramFilter(c)
	if msg != "" {
		return badRequest(c, msg)
	}

	programs, err := h.service.ListPrograms(c.UserContext(), filter)
	if err != nil {
		if h.fallbackEnabled && StatusFor(err) == fiber.StatusInternalServerError {
			configslog.Log.Warn("Liste des programmes indisponible, données de démonstration renvoyées (degraded)", zap.Error(err))
			h.metrics.RecordFallback("programmes-formation")
			c.Set(HeaderDataSource, DataSourceFallback)
			return c.JSON(services.SamplePrograms())
		}
		return respondError(c, err)
	}
	return c.JSON(programs)
}

// GetProgram GET /api/programmes-formation/:id
func (h *ProgramHandler) GetProgram(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant de programme invalide")
	}
	program, err := h.service.GetProgramByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(program)
}

// RenderSheet GET /api/programmes-formation/:id/fiche (HTML)
func (h *ProgramHandler) RenderSheet(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant de programme invalide")
	}
	program, err := h.service.GetProgramByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Render("programmes/fiche", fiber.Map{
		"Title":     program.Titre,
		"Programme": program,
		"Categorie": program.Categorie,
	})
}

// CreateProgram POST /api/programmes-formation
func (h *ProgramHandler) CreateProgram(c *fiber.Ctx) error {
	var input services.ProgramInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "corps de requête invalide")
	}
	program, err := h.service.CreateProgram(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(program)
}

// UpdateProgram PUT /api/programmes-formation/:id ou PUT /api/programmes-formation avec l'id dans le corps.
func (h *ProgramHandler) UpdateProgram(c *fiber.Ctx) error {
	var req services.UpdateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "corps de requête invalide")
	}
	id := req.ID
	if c.Params("id") != "" {
		var ok bool
		if id, ok = parseID(c); !ok {
			return badRequest(c, "identifiant de programme invalide")
		}
	}
	if id == 0 {
		return badRequest(c, "identifiant de programme manquant")
	}

	program, err := h.service.UpdateProgram(c.UserContext(), id, req.ProgramInput)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(program)
}

// DeleteProgram DELETE /api/programmes-formation/:id ou ?id= ; désactivation, pas de suppression physique.
func (h *ProgramHandler) DeleteProgram(c *fiber.Ctx) error {
	var id uint
	if c.Params("id") != "" {
		var ok bool
		if id, ok = parseID(c); !ok {
			return badRequest(c, "identifiant de programme invalide")
		}
	} else {
		q, ok := parseUintQuery(c, "id")
		if !ok || q == nil {
			return badRequest(c, "identifiant de programme manquant")
		}
		id = *q
	}

	if err := h.service.DeleteProgram(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Programme désactivé",
		"id":      id,
	})
}

// DuplicateProgram POST /api/programmes-formation/:id/dupliquer
func (h *ProgramHandler) DuplicateProgram(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant de programme invalide")
	}
	var req services.DuplicateProgramRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "corps de requête invalide")
		}
	}
	program, err := h.service.DuplicateProgram(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(program)
}

// ListVariants GET /api/programmes-formation/:id/variantes
func (h *ProgramHandler) ListVariants(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "identifiant de programme invalide")
	}
	variants, err := h.service.ListVariants(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(variants)
}

func parseProgramFilter(c *fiber.Ctx) (repositories.ProgramFilter, string) {
	var filter repositories.ProgramFilter

	catID, ok := parseUintQuery(c, "categorieId")
	if !ok {
		return filter, "categorieId invalide"
	}
	filter.CategorieID = catID

	if raw := c.Query("actif"); raw != "" {
		v, ok := parseBool(raw)
		if !ok {
			return filter, "actif doit valoir true ou false"
		}
		filter.Actif = &v
	}

	switch raw := strings.ToLower(c.Query("visible")); raw {
	case "all", "tous":
	case "":
		visible := true
		filter.Visible = &visible
	default:
		v, ok := parseBool(raw)
		if !ok {
			return filter, "visible doit valoir true, false ou all"
		}
		filter.Visible = &v
	}

	if t := models.ProgramType(c.Query("type")); t != "" {
		if !t.Valid() {
			return filter, "type doit valoir catalogue ou sur-mesure"
		}
		filter.Type = t
	}
	filter.Query = strings.TrimSpace(c.Query("q"))
	return filter, ""
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "true", "1", "oui":
		return true, true
	case "false", "0", "non":
		return false, true
	}
	return false, false
}
