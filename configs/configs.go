package configs

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gestionmax.fr/hub/configs/configslog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config regroupe toute la configuration de l'application.
type Config struct {
	AppName  string
	Env      string
	Port     string
	LogLevel string

	Database DatabaseConfig
	HTML     HTMLConfig
	Admin    AdminConfig

	AutoMigrate        bool
	FallbackEnabled    bool
	CORSAllowedOrigins string
	ShutdownTimeout    time.Duration
}

// DatabaseConfig décrit la connexion au store relationnel.
type DatabaseConfig struct {
	Type         string // postgres, mysql ou sqlite
	DSN          string // prioritaire sur les champs détaillés
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	TimeZone     string
	MaxOpenConns int
	MaxIdleConns int
	LogLevel     string
}

// HTMLConfig indique où vivent les fiches programmes HTML statiques.
type HTMLConfig struct {
	TemplatesDir string
	ArchiveDir   string // relatif à TemplatesDir
}

// AdminConfig sert au seeder du compte administrateur.
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

// IsProduction indique si l'environnement est la production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ArchivePath renvoie le chemin absolu (ou relatif au cwd) du dossier d'archives.
func (c *Config) ArchivePath() string {
	if filepath.IsAbs(c.HTML.ArchiveDir) {
		return c.HTML.ArchiveDir
	}
	return filepath.Join(c.HTML.TemplatesDir, c.HTML.ArchiveDir)
}

// Load lit un éventuel fichier .env puis résout la configuration via viper (variables d'environnement + défauts).
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			configslog.Log.Debug("Fichier .env introuvable, variables d'environnement utilisées", zap.String("file", f))
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		AppName:  v.GetString("APP_NAME"),
		Env:      strings.ToLower(v.GetString("APP_ENV")),
		Port:     v.GetString("APP_PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),
		Database: DatabaseConfig{
			Type:         strings.ToLower(v.GetString("DB_TYPE")),
			DSN:          v.GetString("DB_DSN"),
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			TimeZone:     v.GetString("DB_TIMEZONE"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			LogLevel:     v.GetString("DB_LOG_LEVEL"),
		},
		HTML: HTMLConfig{
			TemplatesDir: v.GetString("HTML_TEMPLATES_DIR"),
			ArchiveDir:   v.GetString("HTML_ARCHIVE_DIR"),
		},
		Admin: AdminConfig{
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
			Name:     v.GetString("ADMIN_NAME"),
		},
		AutoMigrate:        v.GetBool("DB_AUTO_MIGRATE"),
		FallbackEnabled:    v.GetBool("API_FALLBACK_ENABLED"),
		CORSAllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "GestionMax Formation Hub")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "3000")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_TYPE", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "gestionmax")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Europe/Paris")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("DB_AUTO_MIGRATE", false)

	v.SetDefault("HTML_TEMPLATES_DIR", "public/programmes-html")
	v.SetDefault("HTML_ARCHIVE_DIR", "archives")

	v.SetDefault("ADMIN_EMAIL", "admin@gestionmax.fr")
	v.SetDefault("ADMIN_NAME", "Administrateur")

	v.SetDefault("API_FALLBACK_ENABLED", true)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// Validate contrôle les combinaisons de configuration incohérentes.
func (c *Config) Validate() error {
	switch c.Database.Type {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("DB_TYPE inconnu: %q (postgres, mysql ou sqlite attendu)", c.Database.Type)
	}
	if c.Port == "" {
		return fmt.Errorf("APP_PORT est obligatoire")
	}
	if c.IsProduction() && c.Database.Type != "sqlite" && c.Database.DSN == "" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD ou DB_DSN est obligatoire en production")
	}
	if c.HTML.TemplatesDir == "" {
		return fmt.Errorf("HTML_TEMPLATES_DIR est obligatoire")
	}
	return nil
}
