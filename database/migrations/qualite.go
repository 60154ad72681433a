package migrations

import (
	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateQualiteTables crée les tables du suivi qualité : réclamations, actions correctives, compétences.
func MigrateQualiteTables(db *gorm.DB) error {
	configslog.SLog.Info("Migration des tables reclamations, actions_correctives & competences...")
	err := db.AutoMigrate(&models.Reclamation{}, &models.ActionCorrective{}, &models.Competence{})
	if err != nil {
		configslog.Log.Error("Échec de la migration des tables qualité", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Tables qualité migrées")
	return nil
}
