package configsdatabase

import (
	"fmt"
	"strings"
	"time"

	"gestionmax.fr/hub/configs"
	"gestionmax.fr/hub/configs/configslog"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open ouvre le pool de connexions décrit par cfg.
// L'appelant (racine de composition) possède le handle et doit appeler Close à l'arrêt.
func Open(cfg configs.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(cfg.LogLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		configslog.Log.Error("Connexion à la base de données impossible", zap.String("type", cfg.Type), zap.Error(err))
		return nil, fmt.Errorf("ouverture %s: %w", cfg.Type, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("récupération du pool sql: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	configslog.SLog.Infof("Base de données connectée (%s)", cfg.Type)
	return db, nil
}

// Dialector choisit le driver gorm selon cfg.Type.
func Dialector(cfg configs.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Type {
	case "postgres", "":
		return postgres.Open(DSN(cfg)), nil
	case "mysql":
		return mysql.Open(DSN(cfg)), nil
	case "sqlite":
		return sqlite.Open(DSN(cfg)), nil
	default:
		return nil, fmt.Errorf("type de base de données non supporté: %s", cfg.Type)
	}
}

// DSN construit la chaîne de connexion quand DB_DSN n'est pas fourni.
func DSN(cfg configs.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	switch cfg.Type {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
	case "sqlite":
		name := cfg.Name
		if name == "" {
			name = "gestionmax"
		}
		if !strings.HasSuffix(name, ".db") {
			name += ".db"
		}
		return name
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.TimeZone)
	}
}

// Close ferme le pool sous-jacent.
func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Pool sql introuvable à la fermeture", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Fermeture de la base de données en erreur", zap.Error(err))
		return
	}
	configslog.SLog.Info("Connexion à la base de données fermée")
}

// zapWriter adapte le logger global à l'interface logger.Writer de gorm.
type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	configslog.SLog.Debugf(format, args...)
}

func newGormLogger(level string) logger.Interface {
	lvl := logger.Warn
	switch strings.ToLower(level) {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info", "debug":
		lvl = logger.Info
	}
	return logger.New(zapWriter{}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
