package seeders

import (
	"errors"
	"fmt"

	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/models"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type categorySeed struct {
	Code        string
	Titre       string
	Description string
}

// DefaultCategories catégories du catalogue créées au premier démarrage.
var DefaultCategories = []categorySeed{
	{Code: "BUR", Titre: "Bureautique", Description: "Word, Excel, PowerPoint et outils collaboratifs"},
	{Code: "WEB", Titre: "Web & WordPress", Description: "Création et gestion de sites WordPress"},
	{Code: "MKT", Titre: "Marketing digital", Description: "Réseaux sociaux, référencement et communication en ligne"},
	{Code: "ANG", Titre: "Anglais", Description: "Anglais professionnel tous niveaux"},
	{Code: "IA", Titre: "Intelligence artificielle", Description: "Usages professionnels des outils d'IA générative"},
}

// SeedCategories insère les catégories manquantes (repérées par leur code).
func SeedCategories(db *gorm.DB) error {
	var errs error
	var createdCount int

	configslog.SLog.Info("Seed des catégories de programmes...")

	for i, seed := range DefaultCategories {
		var existing models.Category
		err := db.Where("code = ?", seed.Code).First(&existing).Error
		if err == nil {
			configslog.SLog.Debugf("Catégorie '%s' déjà présente, ignorée.", seed.Code)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Lecture de la catégorie en erreur", zap.String("code", seed.Code), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("catégorie %s: %w", seed.Code, err))
			continue
		}

		code := seed.Code
		category := models.Category{
			Code:        &code,
			Titre:       seed.Titre,
			Description: seed.Description,
			Ordre:       i + 1,
		}
		if err := db.Create(&category).Error; err != nil {
			configslog.Log.Error("Création de la catégorie impossible", zap.String("code", seed.Code), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("catégorie %s: %w", seed.Code, err))
			continue
		}
		createdCount++
	}

	if createdCount > 0 {
		configslog.SLog.Infof("%d catégorie(s) créée(s).", createdCount)
	} else if errs == nil {
		configslog.SLog.Info("Toutes les catégories existent déjà.")
	}
	return errs
}
