package main

import (
	"github.com/workzen-dev/workzen/db"
	"github.com/workzen-dev/workzen/internal/auth"
	"github.com/workzen-dev/workzen/internal/config"
	"github.com/workzen-dev/workzen/internal/logger"
	"github.com/workzen-dev/workzen/internal/router"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	zapLogger := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	defer zapLogger.Sync()
	zap.ReplaceGlobals(zapLogger)

	if err := auth.InitJWTSecret(); err != nil {
		zapLogger.Fatal("failed to initialize JWT secret", zap.Error(err))
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.MigrateDatabase(); err != nil {
		zapLogger.Fatal("failed to migrate database", zap.Error(err))
	}

	r := router.NewRouter(zapLogger)

	zapLogger.Info("starting server", zap.String("port", cfg.Port))

	if err := r.Run(":" + cfg.Port); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
}
