package routes

import (
	"time"

	"github.com/gofiber/template/html/v2"
)

// NewViewEngine moteur de templates des pages HTML (fiche programme).
func NewViewEngine(dir string) *html.Engine {
	engine := html.New(dir, ".html")
	engine.AddFunc("dateFR", func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("02/01/2006")
	})
	return engine
}
