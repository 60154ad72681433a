package routes

import (
	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes /api/*
func registerAPIRoutes(app *fiber.App, deps Dependencies) {
	api := app.Group("/api")

	if h := deps.Programs; h != nil {
		programs := api.Group("/programmes-formation")
		programs.Get("/", h.ListPrograms)
		programs.Post("/", h.CreateProgram)
		programs.Put("/", h.UpdateProgram)
		programs.Delete("/", h.DeleteProgram)
		programs.Get("/:id", h.GetProgram)
		programs.Put("/:id", h.UpdateProgram)
		programs.Delete("/:id", h.DeleteProgram)
		programs.Get("/:id/fiche", h.RenderSheet)
		programs.Post("/:id/dupliquer", h.DuplicateProgram)
		programs.Get("/:id/variantes", h.ListVariants)
	}

	if h := deps.Categories; h != nil {
		categories := api.Group("/categories-programme")
		categories.Get("/", h.ListCategories)
		categories.Post("/", h.CreateCategory)
		categories.Get("/:id", h.GetCategory)
		categories.Put("/:id", h.UpdateCategory)
	}

	if h := deps.ProgramHTML; h != nil {
		sheets := api.Group("/programmes-html")
		sheets.Post("/archive", h.Archive)
		sheets.Get("/par-categorie/groupes", h.Groups)
		sheets.Get("/metadata", h.Metadata)
		sheets.Post("/import", h.Import)
	}

	type crud interface {
		List(*fiber.Ctx) error
		Get(*fiber.Ctx) error
		Create(*fiber.Ctx) error
		Update(*fiber.Ctx) error
		Delete(*fiber.Ctx) error
	}
	resources := []struct {
		prefix  string
		handler crud
		enabled bool
	}{
		{"/rendezvous", deps.Rendezvous, deps.Rendezvous != nil},
		{"/reclamations", deps.Reclamation, deps.Reclamation != nil},
		{"/actions-correctives", deps.Actions, deps.Actions != nil},
		{"/competences", deps.Competences, deps.Competences != nil},
	}
	for _, r := range resources {
		if !r.enabled {
			continue
		}
		g := api.Group(r.prefix)
		g.Get("/", r.handler.List)
		g.Post("/", r.handler.Create)
		g.Get("/:id", r.handler.Get)
		g.Put("/:id", r.handler.Update)
		g.Delete("/:id", r.handler.Delete)
	}
}
