package handlers

import (
	"gestionmax.fr/hub/pkg/metrics"
	"gestionmax.fr/hub/services"

	"github.com/gofiber/fiber/v2"
)

// ProgramHTMLHandler fiches programmes HTML statiques.
type ProgramHTMLHandler struct {
	service services.IProgramHTMLService
	metrics *metrics.Metrics
}

func NewProgramHTMLHandler(service services.IProgramHTMLService, m *metrics.Metrics) *ProgramHTMLHandler {
	return &ProgramHTMLHandler{service: service, metrics: m}
}

// Archive POST /api/programmes-html/archive {path, programmeId?} -> {path}
func (h *ProgramHTMLHandler) Archive(c *fiber.Ctx) error {
	var req services.ArchiveSheetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "corps de requête invalide")
	}
	path, err := h.service.ArchiveSheet(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"path": path})
}

// Groups GET /api/programmes-html/par-categorie/groupes
func (h *ProgramHTMLHandler) Groups(c *fiber.Ctx) error {
	groups, err := h.service.GroupsByCategory(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	if groups.Degraded {
		h.metrics.RecordFallback("programmes-html-groupes")
		c.Set(HeaderDataSource, DataSourceFallback)
	}
	return c.JSON(groups)
}

// Metadata GET /api/programmes-html/metadata?path=
func (h *ProgramHTMLHandler) Metadata(c *fiber.Ctx) error {
	meta, err := h.service.SheetMetadata(c.UserContext(), c.Query("path"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(meta)
}

// Import POST /api/programmes-html/import {path, categorieId?, code?}
func (h *ProgramHTMLHandler) Import(c *fiber.Ctx) error {
	var req services.ImportSheetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "corps de requête invalide")
	}
	program, err := h.service.ImportSheet(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(program)
}
