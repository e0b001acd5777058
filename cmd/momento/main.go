package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/momento-app/momento/internal/buildinfo"
	"github.com/momento-app/momento/internal/client/cli"
	"github.com/momento-app/momento/internal/client/config"
	"github.com/momento-app/momento/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
