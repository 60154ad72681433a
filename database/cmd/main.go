package main

import (
	"os"

	"gestionmax.fr/hub/configs"
	"gestionmax.fr/hub/configs/configsdatabase"
	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "hub-db",
	Short:         "Outils base de données du GestionMax Formation Hub",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Crée ou met à jour les tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(true, false)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insère le compte administrateur et les catégories par défaut",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(false, true)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Migrations puis seeders, dans une seule transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(true, true)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "fichier .env à charger")
	rootCmd.AddCommand(migrateCmd, seedCmd, initCmd)
}

func run(migrate, seed bool) error {
	cfg, err := configs.Load(envFile)
	if err != nil {
		return err
	}
	configslog.InitLogger(cfg.Env, cfg.LogLevel)
	defer configslog.SyncLogger()

	db, err := configsdatabase.Open(cfg.Database)
	if err != nil {
		configslog.Log.Error("Connexion à la base impossible", zap.Error(err))
		return err
	}
	defer configsdatabase.Close(db)

	return database.Initialize(db, cfg.Admin, migrate, seed)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		configslog.SLog.Errorf("hub-db: %v", err)
		os.Exit(1)
	}
}
