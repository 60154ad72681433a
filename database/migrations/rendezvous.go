package migrations

import (
	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateRendezvousTable(db *gorm.DB) error {
	configslog.SLog.Info("Migration de la table rendezvous...")
	if err := db.AutoMigrate(&models.Rendezvous{}); err != nil {
		configslog.Log.Error("Échec de la migration de la table rendezvous", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Table rendezvous migrée")
	return nil
}
