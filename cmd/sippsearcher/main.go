package main

import (
	"github.com/joho/godotenv"
	"github.com/sippsearcher/sippsearcher-backend/internal/app"
	"github.com/sippsearcher/sippsearcher-backend/internal/config"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is fine, settings fall back to the environment.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	log := mustLogger(cfg.Env)
	defer log.Sync()

	application := app.NewApp(log, *cfg)

	log.Info("starting server",
		zap.String("addr", cfg.HTTPServer.Address),
		zap.String("env", cfg.Env),
	)

	application.MustRun()
}

func mustLogger(env string) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)

	if env == config.EnvProd {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}

	if err != nil {
		panic("failed to build logger: " + err.Error())
	}

	return log
}
