package main

import (
	"errors"
	stdLog "log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/library-resource/library/app"
	"github.com/Astemirdum/library-resource/library/config"
)

// @title        Library API
// @version      1.0
// @description  CRUD resource for libraries.
// @BasePath     /api/v1
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdLog.Fatal("load envs from .env ", err)
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal("run ", err)
	}
}
