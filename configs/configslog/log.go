package configslog

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log sert aux logs structurés, SLog aux logs de style printf.
// Ce sont des loggers no-op tant que InitLogger n'a pas été appelé (les tests restent silencieux).
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// InitLogger configure les loggers globaux selon l'environnement.
// production : encodeur JSON ; autres environnements : encodeur console coloré.
func InitLogger(env, level string) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		logger = zap.Must(zap.NewProduction())
		logger.Error("Configuration du logger invalide, logger par défaut utilisé", zap.Error(err))
	}
	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger vide les tampons du logger.
func SyncLogger() {
	_ = Log.Sync()
}

// ParseLevel convertit un niveau textuel (debug, info, warn, error) ; info par défaut.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
