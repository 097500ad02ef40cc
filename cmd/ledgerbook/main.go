package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"

	"github.com/fsdevblog/ledgerbook/internal/app"
	"github.com/fsdevblog/ledgerbook/internal/config"
	"github.com/fsdevblog/ledgerbook/internal/logger"
)

func main() {
	// .env is optional, real environments set variables directly.
	_ = godotenv.Load()

	conf := config.MustLoadConfig()
	l := logger.New(os.Stdout)

	if err := app.New(conf, l).Run(); err != nil {
		if errors.Is(err, context.Canceled) {
			l.Info("graceful shutdown")
			os.Exit(0)
		}
		panic(err)
	}
}
