package handlers

import (
	"errors"
	"strconv"

	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HeaderDataSource signale une réponse construite sur les données de démonstration.
const (
	HeaderDataSource   = "X-Data-Source"
	DataSourceFallback = "fallback"
)

const internalErrorMessage = "erreur interne du serveur"

// StatusFor traduit une erreur de service en code HTTP.
func StatusFor(err error) int {
	switch services.Kind(err) {
	case services.ErrValidation:
		return fiber.StatusBadRequest
	case services.ErrNotFound:
		return fiber.StatusNotFound
	case services.ErrConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError écrit {error, details?}. Le détail des erreurs de stockage reste dans les logs.
func respondError(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	if status == fiber.StatusInternalServerError {
		configslog.Log.Error("Erreur de traitement",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(status).JSON(fiber.Map{"error": internalErrorMessage})
	}

	body := fiber.Map{"error": err.Error()}
	var verr *services.ValidationError
	if errors.As(err, &verr) && len(verr.Details) > 0 {
		body["details"] = verr.Details
	}
	return c.Status(status).JSON(body)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

// parseID lit :id (entier strictement positif).
func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// parseUintQuery lit un paramètre de requête entier positif optionnel.
func parseUintQuery(c *fiber.Ctx, key string) (*uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return nil, false
	}
	id := uint(v)
	return &id, true
}

// ErrorHandler gestionnaire d'erreurs fiber : toute erreur remontée par un handler
// ou un middleware devient {error}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := internalErrorMessage

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			message = fe.Message
		}
	}
	if code >= fiber.StatusInternalServerError {
		configslog.Log.Error("Erreur non gérée",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}

// NotFound dernier handler de la chaîne : route inconnue.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "ressource introuvable"})
}
