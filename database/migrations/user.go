package migrations

import (
	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateUsersTable(db *gorm.DB) error {
	configslog.SLog.Info("Migration de la table users...")
	if err := db.AutoMigrate(&models.User{}); err != nil {
		configslog.Log.Error("Échec de la migration de la table users", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Table users migrée")
	return nil
}
