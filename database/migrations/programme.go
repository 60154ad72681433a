package migrations

import (
	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateCategoriesTable doit passer avant MigrateProgrammesTable (clé étrangère categorie_id).
func MigrateCategoriesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migration de la table categories_programme...")
	if err := db.AutoMigrate(&models.Category{}); err != nil {
		configslog.Log.Error("Échec de la migration de la table categories_programme", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Table categories_programme migrée")
	return nil
}

func MigrateProgrammesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migration de la table programmes_formation...")
	if err := db.AutoMigrate(&models.Program{}); err != nil {
		configslog.Log.Error("Échec de la migration de la table programmes_formation", zap.Error(err))
		return err
	}
	if err := backfillProgrammeRecherche(db); err != nil {
		configslog.Log.Error("Remplissage de la colonne recherche en échec", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Table programmes_formation migrée")
	return nil
}

// backfillProgrammeRecherche remplit la colonne recherche des lignes antérieures à son ajout.
func backfillProgrammeRecherche(db *gorm.DB) error {
	var batch []models.Program
	var filled int
	err := db.Model(&models.Program{}).
		Select("id", "code", "titre", "description").
		Where("recherche IS NULL OR recherche = ?", "").
		FindInBatches(&batch, 200, func(tx *gorm.DB, _ int) error {
			for i := range batch {
				p := &batch[i]
				if err := db.Model(&models.Program{}).Where("id = ?", p.ID).UpdateColumn("recherche", p.SearchText()).Error; err != nil {
					return err
				}
				filled++
			}
			return nil
		}).Error
	if err != nil {
		return err
	}
	if filled > 0 {
		configslog.SLog.Infof("Colonne recherche remplie pour %d programme(s)", filled)
	}
	return nil
}
