package database

import (
	"errors"

	"gestionmax.fr/hub/configs"
	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/database/migrations"
	"gestionmax.fr/hub/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize exécute migrations et/ou seeders dans une seule transaction.
func Initialize(db *gorm.DB, admin configs.AdminConfig, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("Ni migrate ni seed demandé, aucune opération.")
		return nil
	}
	if db == nil {
		return errors.New("connexion à la base absente")
	}

	configslog.SLog.Info("Initialisation de la base de données...")

	err := db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			configslog.SLog.Info("Exécution des migrations...")
			if err := RunMigrationsInOrder(tx); err != nil {
				configslog.Log.Error("Migration en échec", zap.Error(err))
				return err
			}
			configslog.SLog.Info("Migrations terminées.")
		} else {
			configslog.SLog.Info("Étape de migration ignorée.")
		}

		if seed {
			configslog.SLog.Info("Exécution des seeders...")
			if err := CheckAndRunSeeders(tx, admin); err != nil {
				configslog.Log.Error("Seed en échec", zap.Error(err))
				return err
			}
			configslog.SLog.Info("Seeders terminés.")
		} else {
			configslog.SLog.Info("Étape de seed ignorée.")
		}
		return nil
	})
	if err != nil {
		configslog.Log.Error("Initialisation annulée (rollback)", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Initialisation de la base de données terminée")
	return nil
}

// RunMigrationsInOrder respecte l'ordre des clés étrangères.
func RunMigrationsInOrder(db *gorm.DB) error {
	steps := []struct {
		name string
		run  func(*gorm.DB) error
	}{
		{"users", migrations.MigrateUsersTable},
		{"categories_programme", migrations.MigrateCategoriesTable},
		{"programmes_formation", migrations.MigrateProgrammesTable},
		{"rendezvous", migrations.MigrateRendezvousTable},
		{"qualité", migrations.MigrateQualiteTables},
	}
	for _, step := range steps {
		configslog.SLog.Infof(" -> migration %s...", step.name)
		if err := step.run(db); err != nil {
			return err
		}
	}
	configslog.SLog.Info("Toutes les migrations ont été exécutées.")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB, admin configs.AdminConfig) error {
	configslog.SLog.Info(" -> compte administrateur...")
	if err := seeders.SeedSystemUser(db, admin); err != nil {
		return err
	}

	configslog.SLog.Info(" -> catégories de programmes...")
	if err := seeders.SeedCategories(db); err != nil {
		return err
	}

	configslog.SLog.Info("Tous les seeders ont été exécutés.")
	return nil
}
